package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	vendors repository.VendorRepository
	menu    repository.MenuRepository
	events  repository.EventRepository
	tx      repository.Transactor
	logger  *zap.Logger
	now     func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	vendors repository.VendorRepository,
	menu repository.MenuRepository,
	events repository.EventRepository,
	tx repository.Transactor,
	logger *zap.Logger,
) *OrderUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderUseCase{
		orders:  orders,
		vendors: vendors,
		menu:    menu,
		events:  events,
		tx:      tx,
		logger:  logger,
		now:     time.Now,
	}
}

// OrderLine is a requested menu item and quantity.
type OrderLine struct {
	MenuItemID int64
	Quantity   int
}

// PlaceOrderInput is what a student submits when ordering.
type PlaceOrderInput struct {
	VendorID      int64
	Items         []OrderLine
	TotalPrice    float64
	TransactionID string
}

// Place creates a Pending order with item names and prices snapshotted from the menu.
func (u *OrderUseCase) Place(ctx context.Context, studentID int64, in PlaceOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	for _, line := range in.Items {
		if line.Quantity < 1 || line.Quantity > model.MaxItemQuantity {
			return nil, domainErrors.ErrInvalidQuantity
		}
	}
	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		return nil, domainErrors.ErrMissingTransaction
	}
	if in.TotalPrice < 0 || math.IsNaN(in.TotalPrice) || math.IsInf(in.TotalPrice, 0) {
		return nil, domainErrors.ErrInvalidPrice
	}

	if _, err := u.vendors.GetByID(ctx, in.VendorID); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(in.Items))
	unique := make(map[int64]struct{}, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.MenuItemID)
		unique[line.MenuItemID] = struct{}{}
	}
	found, err := u.menu.FindByIDs(ctx, in.VendorID, ids)
	if err != nil {
		return nil, err
	}
	if len(found) < len(unique) {
		return nil, domainErrors.ErrMenuItemNotFound
	}
	if len(found) != len(in.Items) {
		return nil, domainErrors.ErrItemsMismatch
	}

	byID := make(map[int64]model.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	order := &model.Order{
		StudentID:     studentID,
		VendorID:      in.VendorID,
		Items:         make([]model.OrderItem, 0, len(in.Items)),
		TotalPrice:    in.TotalPrice,
		Status:        model.OrderStatusPending,
		TransactionID: txID,
	}
	for _, line := range in.Items {
		item := byID[line.MenuItemID]
		order.Items = append(order.Items, model.OrderItem{
			MenuItemID:   item.ID,
			Name:         item.Name,
			Quantity:     line.Quantity,
			PriceAtOrder: item.Price,
		})
	}
	itemsCents, ok := order.ItemsTotalCents()
	totalCents, totalOK := model.CheckedCents(in.TotalPrice)
	if !ok || !totalOK || itemsCents != totalCents {
		return nil, domainErrors.ErrTotalMismatch
	}

	var created *model.Order
	err = u.tx.WithinTransaction(ctx, func(f repository.Factory) error {
		var err error
		if created, err = f.Orders().Create(ctx, order); err != nil {
			return err
		}
		return f.Events().Append(ctx, u.event(created, model.OrderEventPlaced))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order placed",
		zap.Int64("order_id", created.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("vendor_id", in.VendorID),
	)
	return created, nil
}

// StudentOrders lists the student's orders, newest first.
func (u *OrderUseCase) StudentOrders(ctx context.Context, studentID int64, page model.Page) (model.Paginated[model.Order], error) {
	orders, total, err := u.orders.ListByStudent(ctx, studentID, page)
	if err != nil {
		return model.Paginated[model.Order]{}, err
	}
	return model.NewPaginated(orders, page, total), nil
}

// VendorOrders lists orders placed at the vendor, newest first.
func (u *OrderUseCase) VendorOrders(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Order], error) {
	orders, total, err := u.orders.ListByVendor(ctx, vendorID, page)
	if err != nil {
		return model.Paginated[model.Order]{}, err
	}
	return model.NewPaginated(orders, page, total), nil
}

// Verify accepts or rejects a Pending order after the vendor checked the payment.
func (u *OrderUseCase) Verify(ctx context.Context, vendorID, orderID int64, action, reason string) (*model.Order, error) {
	vendor := model.Principal{ID: vendorID, Role: model.RoleVendor}
	switch model.OrderAction(action) {
	case model.ActionAccept:
		return u.transition(ctx, vendor, orderID, model.ActionAccept, nil)
	case model.ActionReject:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			reason = model.DefaultRejectionReason
		}
		return u.transition(ctx, vendor, orderID, model.ActionReject, func(c *model.StatusChange) {
			c.RejectionReason = reason
		})
	default:
		return nil, domainErrors.ErrInvalidVerifyAction
	}
}

// Advance moves an accepted order towards Ready.
func (u *OrderUseCase) Advance(ctx context.Context, vendorID, orderID int64, target model.OrderStatus) (*model.Order, error) {
	action, err := model.AdvanceAction(target)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, model.Principal{ID: vendorID, Role: model.RoleVendor}, orderID, action, nil)
}

// Resubmit puts a rejected order back to Pending with a new transaction id.
func (u *OrderUseCase) Resubmit(ctx context.Context, studentID, orderID int64, transactionID string) (*model.Order, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, domainErrors.ErrMissingTransaction
	}
	return u.transition(ctx, model.Principal{ID: studentID, Role: model.RoleStudent}, orderID, model.ActionResubmit,
		func(c *model.StatusChange) {
			c.TransactionID = transactionID
		})
}

// Cancel deletes a Pending order.
func (u *OrderUseCase) Cancel(ctx context.Context, studentID, orderID int64) error {
	_, err := u.transition(ctx, model.Principal{ID: studentID, Role: model.RoleStudent}, orderID, model.ActionCancel, nil)
	return err
}

// Complete confirms pickup of a Ready order.
func (u *OrderUseCase) Complete(ctx context.Context, studentID, orderID int64) (*model.Order, error) {
	return u.transition(ctx, model.Principal{ID: studentID, Role: model.RoleStudent}, orderID, model.ActionComplete, nil)
}

// PendingEvents claims a batch of unpublished order events.
func (u *OrderUseCase) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	return u.events.ClaimBatch(ctx, limit)
}

// MarkEventPublished records a successful delivery.
func (u *OrderUseCase) MarkEventPublished(ctx context.Context, eventID int64) error {
	return u.events.MarkPublished(ctx, eventID)
}

func (u *OrderUseCase) transition(
	ctx context.Context,
	actor model.Principal,
	orderID int64,
	action model.OrderAction,
	mutate func(*model.StatusChange),
) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !owns(actor, order) {
		return nil, domainErrors.ErrOrderNotFound
	}

	t, err := model.NextStatus(order.Status, action, actor.Role)
	if err != nil {
		return nil, err
	}

	var updated *model.Order
	err = u.tx.WithinTransaction(ctx, func(f repository.Factory) error {
		if t.Remove {
			if err := f.Orders().Delete(ctx, order.ID, t.From); err != nil {
				return err
			}
			event := u.event(order, model.EventTypeFor(action))
			event.Status = ""
			return f.Events().Append(ctx, event)
		}

		change := model.StatusChange{OrderID: order.ID, From: t.From, To: t.To}
		if mutate != nil {
			mutate(&change)
		}
		var err error
		if updated, err = f.Orders().UpdateStatus(ctx, change); err != nil {
			return err
		}
		return f.Events().Append(ctx, u.event(updated, model.EventTypeFor(action)))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order transition",
		zap.Int64("order_id", order.ID),
		zap.String("action", string(action)),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.Bool("removed", t.Remove),
	)
	return updated, nil
}

func (u *OrderUseCase) event(order *model.Order, eventType model.OrderEventType) model.OrderEvent {
	event := model.NewOrderEvent(order, eventType)
	event.OccurredAt = u.now().UTC()
	return event
}

func owns(actor model.Principal, order *model.Order) bool {
	switch actor.Role {
	case model.RoleStudent:
		return order.StudentID == actor.ID
	case model.RoleVendor:
		return order.VendorID == actor.ID
	default:
		return false
	}
}
