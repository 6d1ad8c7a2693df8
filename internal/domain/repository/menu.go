package repository

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// MenuRepository describes persistence operations for menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)
	Delete(ctx context.Context, vendorID, itemID int64) error
	GetByID(ctx context.Context, vendorID, itemID int64) (*model.MenuItem, error)
	ListByVendor(ctx context.Context, vendorID int64, onlyAvailable bool) ([]model.MenuItem, error)
	// FindByIDs returns the items among ids that belong to vendorID.
	FindByIDs(ctx context.Context, vendorID int64, ids []int64) ([]model.MenuItem, error)
}
