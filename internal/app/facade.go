package app

import (
	"context"

	"github.com/polkiloo/campusfood/internal/adapter/notify"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// CampusFacade is the single entry point used by transport and background workers.
type CampusFacade struct {
	auth      *usecase.AuthUseCase
	vendors   *usecase.VendorUseCase
	menu      *usecase.MenuUseCase
	orders    *usecase.OrderUseCase
	reviews   *usecase.ReviewUseCase
	publisher notify.Publisher
}

func NewCampusFacade(
	auth *usecase.AuthUseCase,
	vendors *usecase.VendorUseCase,
	menu *usecase.MenuUseCase,
	orders *usecase.OrderUseCase,
	reviews *usecase.ReviewUseCase,
	publisher notify.Publisher,
) *CampusFacade {
	return &CampusFacade{
		auth:      auth,
		vendors:   vendors,
		menu:      menu,
		orders:    orders,
		reviews:   reviews,
		publisher: publisher,
	}
}

func (f *CampusFacade) RegisterStudent(ctx context.Context, in usecase.StudentRegistration) (*model.Student, string, error) {
	return f.auth.RegisterStudent(ctx, in)
}

func (f *CampusFacade) LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error) {
	return f.auth.LoginStudent(ctx, email, password)
}

func (f *CampusFacade) RegisterVendor(ctx context.Context, in usecase.VendorRegistration) (*model.Vendor, string, error) {
	return f.auth.RegisterVendor(ctx, in)
}

func (f *CampusFacade) LoginVendor(ctx context.Context, email, password string) (*model.Vendor, string, error) {
	return f.auth.LoginVendor(ctx, email, password)
}

func (f *CampusFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *CampusFacade) OpenVendors(ctx context.Context) ([]model.Vendor, error) {
	return f.vendors.OpenVendors(ctx)
}

func (f *CampusFacade) Vendor(ctx context.Context, vendorID int64) (*model.Vendor, error) {
	return f.vendors.Vendor(ctx, vendorID)
}

func (f *CampusFacade) UpdateAvailability(ctx context.Context, vendorID int64, a model.Availability) (*model.Vendor, error) {
	return f.vendors.UpdateAvailability(ctx, vendorID, a)
}

func (f *CampusFacade) VendorStats(ctx context.Context, vendorID int64) (*model.VendorStats, error) {
	return f.vendors.Stats(ctx, vendorID)
}

func (f *CampusFacade) Menu(ctx context.Context, vendorID int64) ([]model.MenuItem, error) {
	return f.menu.Menu(ctx, vendorID)
}

func (f *CampusFacade) VendorMenu(ctx context.Context, vendorID int64) ([]model.MenuItem, error) {
	return f.menu.VendorMenu(ctx, vendorID)
}

func (f *CampusFacade) AddMenuItem(ctx context.Context, vendorID int64, in usecase.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.Add(ctx, vendorID, in)
}

func (f *CampusFacade) UpdateMenuItem(ctx context.Context, vendorID, itemID int64, in usecase.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.Update(ctx, vendorID, itemID, in)
}

func (f *CampusFacade) DeleteMenuItem(ctx context.Context, vendorID, itemID int64) error {
	return f.menu.Delete(ctx, vendorID, itemID)
}

func (f *CampusFacade) PlaceOrder(ctx context.Context, studentID int64, in usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, studentID, in)
}

func (f *CampusFacade) StudentOrders(ctx context.Context, studentID int64, page model.Page) (model.Paginated[model.Order], error) {
	return f.orders.StudentOrders(ctx, studentID, page)
}

func (f *CampusFacade) ResubmitOrder(ctx context.Context, studentID, orderID int64, transactionID string) (*model.Order, error) {
	return f.orders.Resubmit(ctx, studentID, orderID, transactionID)
}

func (f *CampusFacade) CancelOrder(ctx context.Context, studentID, orderID int64) error {
	return f.orders.Cancel(ctx, studentID, orderID)
}

func (f *CampusFacade) CompleteOrder(ctx context.Context, studentID, orderID int64) (*model.Order, error) {
	return f.orders.Complete(ctx, studentID, orderID)
}

func (f *CampusFacade) VendorOrders(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Order], error) {
	return f.orders.VendorOrders(ctx, vendorID, page)
}

func (f *CampusFacade) VerifyOrder(ctx context.Context, vendorID, orderID int64, action, reason string) (*model.Order, error) {
	return f.orders.Verify(ctx, vendorID, orderID, action, reason)
}

func (f *CampusFacade) AdvanceOrder(ctx context.Context, vendorID, orderID int64, target model.OrderStatus) (*model.Order, error) {
	return f.orders.Advance(ctx, vendorID, orderID, target)
}

func (f *CampusFacade) SubmitReview(ctx context.Context, studentID int64, in usecase.ReviewInput) (*model.Review, error) {
	return f.reviews.Submit(ctx, studentID, in)
}

func (f *CampusFacade) VendorReviews(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Review], error) {
	return f.reviews.VendorReviews(ctx, vendorID, page)
}

func (f *CampusFacade) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	return f.orders.PendingEvents(ctx, limit)
}

func (f *CampusFacade) PublishEvent(ctx context.Context, event model.OrderEvent) error {
	return f.publisher.Publish(ctx, event)
}

func (f *CampusFacade) MarkEventPublished(ctx context.Context, eventID int64) error {
	return f.orders.MarkEventPublished(ctx, eventID)
}
