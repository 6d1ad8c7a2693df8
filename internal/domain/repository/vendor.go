package repository

import (
	"context"
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// VendorRepository describes persistence operations for vendors and their review tallies.
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*model.Vendor, error)
	GetByID(ctx context.Context, id int64) (*model.Vendor, error)
	List(ctx context.Context) ([]model.Vendor, error)
	UpdateAvailability(ctx context.Context, vendorID int64, availability model.Availability) (*model.Vendor, error)
	// ApplySentiment atomically increments the matching bucket and the total.
	ApplySentiment(ctx context.Context, vendorID int64, sentiment model.Sentiment) error
	Stats(ctx context.Context, vendorID int64, since time.Time) (*model.VendorStats, error)
}
