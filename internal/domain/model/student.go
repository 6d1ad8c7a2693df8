package model

import (
	"regexp"
	"time"
)

var studentEmailPattern = regexp.MustCompile(`^u(\d{2})(0[1-9]|1[0-3])(\d{2,3})@student\.cuet\.ac\.bd$`)

// Student is a customer registered with a university address.
type Student struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	DepartmentCode string
	AdmissionYear  string
	CreatedAt      time.Time
}

// ParseStudentEmail extracts admission year and department code from a student email.
func ParseStudentEmail(email string) (admissionYear, departmentCode string, ok bool) {
	m := studentEmailPattern.FindStringSubmatch(email)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
