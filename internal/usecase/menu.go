package usecase

import (
	"context"
	"math"
	"strings"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// MenuUseCase manages vendor menus.
type MenuUseCase struct {
	menu    repository.MenuRepository
	vendors repository.VendorRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository, vendors repository.VendorRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu, vendors: vendors}
}

// MenuItemInput describes a new or replaced menu item. A nil IsAvailable means available.
type MenuItemInput struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
	Category    string
	IsAvailable *bool
}

// Menu returns the items a student may order from vendorID.
func (u *MenuUseCase) Menu(ctx context.Context, vendorID int64) ([]model.MenuItem, error) {
	if _, err := u.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}
	return u.menu.ListByVendor(ctx, vendorID, true)
}

// VendorMenu returns every item of the vendor, including unavailable ones.
func (u *MenuUseCase) VendorMenu(ctx context.Context, vendorID int64) ([]model.MenuItem, error) {
	return u.menu.ListByVendor(ctx, vendorID, false)
}

// Add creates a menu item for the vendor.
func (u *MenuUseCase) Add(ctx context.Context, vendorID int64, in MenuItemInput) (*model.MenuItem, error) {
	item, err := buildMenuItem(vendorID, in)
	if err != nil {
		return nil, err
	}
	return u.menu.Create(ctx, item)
}

// Update replaces a menu item owned by the vendor.
func (u *MenuUseCase) Update(ctx context.Context, vendorID, itemID int64, in MenuItemInput) (*model.MenuItem, error) {
	item, err := buildMenuItem(vendorID, in)
	if err != nil {
		return nil, err
	}
	item.ID = itemID
	return u.menu.Update(ctx, item)
}

// Delete removes a menu item owned by the vendor.
func (u *MenuUseCase) Delete(ctx context.Context, vendorID, itemID int64) error {
	return u.menu.Delete(ctx, vendorID, itemID)
}

func buildMenuItem(vendorID int64, in MenuItemInput) (*model.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainErrors.Validation("name is required")
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, domainErrors.ErrInvalidPrice
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &model.MenuItem{
		VendorID:    vendorID,
		Name:        name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Category:    defaultString(in.Category, model.DefaultCategory),
		IsAvailable: available,
	}, nil
}
