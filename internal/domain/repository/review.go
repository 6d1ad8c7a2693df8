package repository

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// ReviewRepository describes persistence operations with reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	// ListByVendor returns classified reviews only.
	ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Review, int, error)
}
