package dto

import (
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// StudentRegisterRequest is the student sign up payload.
type StudentRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// VendorRegisterRequest is the vendor sign up payload.
type VendorRegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	StallName    string `json:"stallName" binding:"required"`
	Description  string `json:"description"`
	Phone        string `json:"phone"`
	OpeningHours string `json:"openingHours"`
	ClosingHours string `json:"closingHours"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentResponse is the public student profile.
type StudentResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	DepartmentCode string    `json:"departmentCode"`
	AdmissionYear  string    `json:"admissionYear"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login endpoints.
type AuthResponse struct {
	Role    model.Role       `json:"role"`
	Token   string           `json:"token"`
	Student *StudentResponse `json:"student,omitempty"`
	Vendor  *VendorResponse  `json:"vendor,omitempty"`
}

// NewStudentResponse converts a student into its public shape.
func NewStudentResponse(s *model.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		DepartmentCode: s.DepartmentCode,
		AdmissionYear:  s.AdmissionYear,
		CreatedAt:      s.CreatedAt,
	}
}
