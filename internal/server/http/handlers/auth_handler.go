package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/server/http/middleware"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// AuthHandler processes registration and login of students and vendors.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// RegisterStudent handles POST /api/auth/student/register.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.StudentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide all required fields")
		return
	}

	student, token, err := h.facade.RegisterStudent(c.Request.Context(), usecase.StudentRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondStudent(c, http.StatusCreated, student, token)
}

// LoginStudent handles POST /api/auth/student/login.
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide email and password")
		return
	}

	student, token, err := h.facade.LoginStudent(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondStudent(c, http.StatusOK, student, token)
}

// RegisterVendor handles POST /api/auth/vendor/register.
func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req dto.VendorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide all required fields")
		return
	}

	vendor, token, err := h.facade.RegisterVendor(c.Request.Context(), usecase.VendorRegistration{
		Email:        req.Email,
		Password:     req.Password,
		StallName:    req.StallName,
		Description:  req.Description,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
		ClosingHours: req.ClosingHours,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondVendor(c, http.StatusCreated, vendor, token)
}

// LoginVendor handles POST /api/auth/vendor/login.
func (h *AuthHandler) LoginVendor(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide email and password")
		return
	}

	vendor, token, err := h.facade.LoginVendor(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondVendor(c, http.StatusOK, vendor, token)
}

func (h *AuthHandler) respondStudent(c *gin.Context, status int, student *model.Student, token string) {
	profile := dto.NewStudentResponse(student)
	middleware.SetAuthCookie(c, token)
	c.JSON(status, dto.AuthResponse{Role: model.RoleStudent, Token: token, Student: &profile})
}

func (h *AuthHandler) respondVendor(c *gin.Context, status int, vendor *model.Vendor, token string) {
	profile := dto.NewVendorResponse(vendor)
	middleware.SetAuthCookie(c, token)
	c.JSON(status, dto.AuthResponse{Role: model.RoleVendor, Token: token, Vendor: &profile})
}
