package errors

import "errors"

// Error classes. Handlers translate them into transport status codes.
var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error is a domain failure with a human readable message that belongs to one of the classes above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates a domain error of the provided class.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation is a shortcut for ad hoc input errors.
func Validation(message string) *Error {
	return New(ErrValidation, message)
}

var (
	ErrStudentNotFound  = New(ErrNotFound, "student not found")
	ErrVendorNotFound   = New(ErrNotFound, "vendor not found")
	ErrMenuItemNotFound = New(ErrNotFound, "menu item not found")
	ErrOrderNotFound    = New(ErrNotFound, "order not found")

	ErrStudentExists = New(ErrAlreadyExists, "student already exists with this email")
	ErrVendorExists  = New(ErrAlreadyExists, "vendor already exists with this email")

	ErrInvalidStudentEmail = New(ErrValidation, "invalid email format")
	ErrWeakPassword        = New(ErrValidation, "password must be at least 6 characters")
	ErrEmptyOrder          = New(ErrValidation, "order must contain at least one item")
	ErrInvalidQuantity     = New(ErrValidation, "item quantity must be between 1 and 1000")
	ErrInvalidPrice        = New(ErrValidation, "price must be a non-negative number")
	ErrItemsMismatch       = New(ErrValidation, "some menu items are invalid")
	ErrTotalMismatch       = New(ErrValidation, "total price does not match order items")
	ErrMissingTransaction  = New(ErrValidation, "transaction ID is required")
	ErrInvalidRating       = New(ErrValidation, "rating must be between 1 and 5")
	ErrEmptyComment        = New(ErrValidation, "comment is required")
	ErrInvalidHours        = New(ErrValidation, "hours must be in HH:MM format")
	ErrInvalidTargetStatus = New(ErrValidation, "status must be Processing or Ready")
	ErrInvalidVerifyAction = New(ErrValidation, "action must be accept or reject")

	ErrInvalidTransition  = New(ErrConflict, "order status does not allow this action")
	ErrReviewNotCompleted = New(ErrConflict, "can only review completed orders")
	ErrAlreadyReviewed    = New(ErrConflict, "order already reviewed")

	ErrActionForbidden = New(ErrForbidden, "action is not allowed for this account")
)
