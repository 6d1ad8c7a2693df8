package repository

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByStudent(ctx context.Context, studentID int64, page model.Page) ([]model.Order, int, error)
	ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Order, int, error)
	// UpdateStatus applies change only while the order is still in change.From.
	UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error)
	// Delete removes the order only while it is in the expected status.
	Delete(ctx context.Context, orderID int64, expected model.OrderStatus) error
	// MarkReviewed flips is_reviewed for a completed, not yet reviewed order.
	MarkReviewed(ctx context.Context, orderID int64) error
}
