package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
	pkgAuth "github.com/polkiloo/campusfood/internal/pkg/auth"
)

// AuthUseCase handles student and vendor accounts and token management.
type AuthUseCase struct {
	students repository.StudentRepository
	vendors  repository.VendorRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	students repository.StudentRepository,
	vendors repository.VendorRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
) *AuthUseCase {
	return &AuthUseCase{students: students, vendors: vendors, hasher: hasher, tokens: strategy}
}

// StudentRegistration carries sign up data of a student.
type StudentRegistration struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// VendorRegistration carries sign up data of a vendor.
type VendorRegistration struct {
	Email        string
	Password     string
	StallName    string
	Description  string
	Phone        string
	OpeningHours string
	ClosingHours string
}

// RegisterStudent creates a student account. The email must be a university address;
// admission year and department code are taken from it.
func (u *AuthUseCase) RegisterStudent(ctx context.Context, in StudentRegistration) (*model.Student, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, "", domainErrors.Validation("name is required")
	}
	year, dept, ok := model.ParseStudentEmail(email)
	if !ok {
		return nil, "", domainErrors.ErrInvalidStudentEmail
	}
	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	student, err := u.students.Create(ctx, &model.Student{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Phone:          strings.TrimSpace(in.Phone),
		DepartmentCode: dept,
		AdmissionYear:  year,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.Principal{ID: student.ID, Role: model.RoleStudent})
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// LoginStudent validates student credentials and returns auth token.
func (u *AuthUseCase) LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	student, err := u.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(student.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(model.Principal{ID: student.ID, Role: model.RoleStudent})
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// RegisterVendor creates a vendor account with default opening hours when none are given.
func (u *AuthUseCase) RegisterVendor(ctx context.Context, in VendorRegistration) (*model.Vendor, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	stall := strings.TrimSpace(in.StallName)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", domainErrors.Validation("valid email is required")
	}
	if stall == "" {
		return nil, "", domainErrors.Validation("stall name is required")
	}
	opening := defaultString(in.OpeningHours, model.DefaultOpeningHours)
	closing := defaultString(in.ClosingHours, model.DefaultClosingHours)
	if !model.ValidHours(opening) || !model.ValidHours(closing) {
		return nil, "", domainErrors.ErrInvalidHours
	}
	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	vendor, err := u.vendors.Create(ctx, &model.Vendor{
		Email:        email,
		PasswordHash: hash,
		StallName:    stall,
		Description:  strings.TrimSpace(in.Description),
		Phone:        strings.TrimSpace(in.Phone),
		IsOpen:       true,
		OpeningHours: opening,
		ClosingHours: closing,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.Principal{ID: vendor.ID, Role: model.RoleVendor})
	if err != nil {
		return nil, "", err
	}
	return vendor, token, nil
}

// LoginVendor validates vendor credentials and returns auth token.
func (u *AuthUseCase) LoginVendor(ctx context.Context, email, password string) (*model.Vendor, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	vendor, err := u.vendors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(vendor.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(model.Principal{ID: vendor.ID, Role: model.RoleVendor})
	if err != nil {
		return nil, "", err
	}
	return vendor, token, nil
}

// ParseToken extracts the principal from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

func (u *AuthUseCase) hashPassword(password string) (string, error) {
	if len(password) < pkgAuth.MinPasswordLength {
		return "", domainErrors.ErrWeakPassword
	}
	hash, err := u.hasher.Hash(password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return "", domainErrors.Validation("password must be at most 72 bytes")
	}
	return hash, err
}

func defaultString(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
