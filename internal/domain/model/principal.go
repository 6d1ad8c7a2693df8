package model

// Role separates the two kinds of accounts.
type Role string

const (
	RoleStudent Role = "student"
	RoleVendor  Role = "vendor"
)

// Principal identifies an authenticated account.
type Principal struct {
	ID   int64
	Role Role
}
