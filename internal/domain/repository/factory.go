package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Students() StudentRepository
	Vendors() VendorRepository
	Menu() MenuRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	Events() EventRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(Factory) error) error
}
