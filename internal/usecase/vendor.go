package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// statsWindow is the period covered by the "recent" dashboard figures.
const statsWindow = 7 * 24 * time.Hour

// VendorUseCase serves vendor profiles, availability and dashboard figures.
type VendorUseCase struct {
	vendors repository.VendorRepository
	now     func() time.Time
}

// NewVendorUseCase constructs VendorUseCase.
func NewVendorUseCase(vendors repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{vendors: vendors, now: time.Now}
}

// OpenVendors lists vendors accepting orders right now.
func (u *VendorUseCase) OpenVendors(ctx context.Context) ([]model.Vendor, error) {
	all, err := u.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now()
	open := make([]model.Vendor, 0, len(all))
	for _, v := range all {
		if v.IsOpenAt(now) {
			open = append(open, v)
		}
	}
	return open, nil
}

// Vendor returns a single vendor profile.
func (u *VendorUseCase) Vendor(ctx context.Context, vendorID int64) (*model.Vendor, error) {
	return u.vendors.GetByID(ctx, vendorID)
}

// UpdateAvailability changes the open flag and opening window of a vendor.
func (u *VendorUseCase) UpdateAvailability(ctx context.Context, vendorID int64, a model.Availability) (*model.Vendor, error) {
	if a.OpeningHours != nil && !model.ValidHours(*a.OpeningHours) {
		return nil, domainErrors.ErrInvalidHours
	}
	if a.ClosingHours != nil && !model.ValidHours(*a.ClosingHours) {
		return nil, domainErrors.ErrInvalidHours
	}
	return u.vendors.UpdateAvailability(ctx, vendorID, a)
}

// Stats returns dashboard figures for the vendor.
func (u *VendorUseCase) Stats(ctx context.Context, vendorID int64) (*model.VendorStats, error) {
	return u.vendors.Stats(ctx, vendorID, u.now().Add(-statsWindow))
}
