package handlers

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterStudent(ctx context.Context, in usecase.StudentRegistration) (*model.Student, string, error)
	LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error)
	RegisterVendor(ctx context.Context, in usecase.VendorRegistration) (*model.Vendor, string, error)
	LoginVendor(ctx context.Context, email, password string) (*model.Vendor, string, error)
	ParseToken(token string) (model.Principal, error)
}

// CatalogFacade serves vendor and menu browsing plus vendor self-management.
type CatalogFacade interface {
	OpenVendors(ctx context.Context) ([]model.Vendor, error)
	Vendor(ctx context.Context, vendorID int64) (*model.Vendor, error)
	Menu(ctx context.Context, vendorID int64) ([]model.MenuItem, error)
	VendorMenu(ctx context.Context, vendorID int64) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, vendorID int64, in usecase.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, vendorID, itemID int64, in usecase.MenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, vendorID, itemID int64) error
	UpdateAvailability(ctx context.Context, vendorID int64, a model.Availability) (*model.Vendor, error)
	VendorStats(ctx context.Context, vendorID int64) (*model.VendorStats, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, studentID int64, in usecase.PlaceOrderInput) (*model.Order, error)
	StudentOrders(ctx context.Context, studentID int64, page model.Page) (model.Paginated[model.Order], error)
	ResubmitOrder(ctx context.Context, studentID, orderID int64, transactionID string) (*model.Order, error)
	CancelOrder(ctx context.Context, studentID, orderID int64) error
	CompleteOrder(ctx context.Context, studentID, orderID int64) (*model.Order, error)
	VendorOrders(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Order], error)
	VerifyOrder(ctx context.Context, vendorID, orderID int64, action, reason string) (*model.Order, error)
	AdvanceOrder(ctx context.Context, vendorID, orderID int64, target model.OrderStatus) (*model.Order, error)
}

// ReviewFacade provides review submission and listing.
type ReviewFacade interface {
	SubmitReview(ctx context.Context, studentID int64, in usecase.ReviewInput) (*model.Review, error)
	VendorReviews(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Review], error)
}

// CampusFacade aggregates the full set of operations used across handlers.
type CampusFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	ReviewFacade
}
