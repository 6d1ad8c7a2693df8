package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	testhelpers "github.com/polkiloo/campusfood/internal/test"
)

type orderFixture struct {
	store   *testhelpers.MemoryStore
	uc      *OrderUseCase
	vendor  model.Vendor
	other   model.Vendor
	student model.Student
	burger  model.MenuItem
	tea     model.MenuItem
	foreign model.MenuItem
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	f := orderFixture{store: store}
	f.vendor = store.SeedVendor(model.Vendor{StallName: "V", IsOpen: true})
	f.other = store.SeedVendor(model.Vendor{StallName: "W", IsOpen: true})
	f.student = store.SeedStudent(model.Student{Name: "S"})
	f.burger = store.SeedMenuItem(model.MenuItem{VendorID: f.vendor.ID, Name: "Burger", Price: 50, IsAvailable: true})
	f.tea = store.SeedMenuItem(model.MenuItem{VendorID: f.vendor.ID, Name: "Tea", Price: 10.5, IsAvailable: true})
	f.foreign = store.SeedMenuItem(model.MenuItem{VendorID: f.other.ID, Name: "Pizza", Price: 200, IsAvailable: true})
	f.uc = NewOrderUseCase(store.Orders(), store.Vendors(), store.Menu(), store.Events(), store, zap.NewNop())
	f.uc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f orderFixture) place(t *testing.T) *model.Order {
	t.Helper()
	order, err := f.uc.Place(context.Background(), f.student.ID, PlaceOrderInput{
		VendorID:      f.vendor.ID,
		Items:         []OrderLine{{MenuItemID: f.burger.ID, Quantity: 2}},
		TotalPrice:    100,
		TransactionID: "TX1",
	})
	require.NoError(t, err)
	return order
}

func (f orderFixture) seedOrder(status model.OrderStatus) model.Order {
	return f.store.SeedOrder(model.Order{
		StudentID:     f.student.ID,
		VendorID:      f.vendor.ID,
		Items:         []model.OrderItem{{MenuItemID: f.burger.ID, Name: "Burger", Quantity: 1, PriceAtOrder: 50}},
		TotalPrice:    50,
		Status:        status,
		TransactionID: "TX0",
	})
}

func TestOrderUseCasePlace(t *testing.T) {
	f := newOrderFixture(t)

	order := f.place(t)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 100.0, order.TotalPrice)
	assert.Equal(t, "TX1", order.TransactionID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, model.OrderItem{MenuItemID: f.burger.ID, Name: "Burger", Quantity: 2, PriceAtOrder: 50}, order.Items[0])

	events := f.store.AllEvents()
	require.Len(t, events, 1)
	assert.Equal(t, model.OrderEventPlaced, events[0].Type)
	assert.Equal(t, order.ID, events[0].OrderID)
	assert.Equal(t, model.OrderStatusPending, events[0].Status)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestOrderUseCasePlaceSnapshotsSurviveMenuEdits(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t)

	f.burger.Price = 80
	_, err := f.store.Menu().Update(context.Background(), &f.burger)
	require.NoError(t, err)

	stored, ok := f.store.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, 50.0, stored.Items[0].PriceAtOrder)
	assert.Equal(t, stored.TotalPrice, stored.ItemsTotal())
}

func TestOrderUseCasePlaceFractionalTotal(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.uc.Place(context.Background(), f.student.ID, PlaceOrderInput{
		VendorID:      f.vendor.ID,
		Items:         []OrderLine{{MenuItemID: f.tea.ID, Quantity: 3}, {MenuItemID: f.burger.ID, Quantity: 1}},
		TotalPrice:    81.5,
		TransactionID: "TX",
	})
	require.NoError(t, err)
	assert.Equal(t, 81.5, order.TotalPrice)
}

func TestOrderUseCasePlaceValidation(t *testing.T) {
	f := newOrderFixture(t)
	valid := func() PlaceOrderInput {
		return PlaceOrderInput{
			VendorID:      f.vendor.ID,
			Items:         []OrderLine{{MenuItemID: f.burger.ID, Quantity: 2}},
			TotalPrice:    100,
			TransactionID: "TX1",
		}
	}

	cases := []struct {
		name   string
		modify func(*PlaceOrderInput)
		want   error
	}{
		{"no items", func(in *PlaceOrderInput) { in.Items = nil }, domainErrors.ErrEmptyOrder},
		{"zero quantity", func(in *PlaceOrderInput) { in.Items[0].Quantity = 0 }, domainErrors.ErrInvalidQuantity},
		{"quantity above limit", func(in *PlaceOrderInput) { in.Items[0].Quantity = model.MaxItemQuantity + 1 }, domainErrors.ErrInvalidQuantity},
		{"wrapping quantity with zero total", func(in *PlaceOrderInput) {
			in.Items[0].Quantity = 1 << 61
			in.TotalPrice = 0
		}, domainErrors.ErrInvalidQuantity},
		{"total out of range", func(in *PlaceOrderInput) { in.TotalPrice = 1e300 }, domainErrors.ErrTotalMismatch},
		{"missing transaction", func(in *PlaceOrderInput) { in.TransactionID = "  " }, domainErrors.ErrMissingTransaction},
		{"negative total", func(in *PlaceOrderInput) { in.TotalPrice = -1 }, domainErrors.ErrInvalidPrice},
		{"unknown vendor", func(in *PlaceOrderInput) { in.VendorID = 999 }, domainErrors.ErrVendorNotFound},
		{"unknown item", func(in *PlaceOrderInput) { in.Items[0].MenuItemID = 999 }, domainErrors.ErrMenuItemNotFound},
		{"item of another vendor", func(in *PlaceOrderInput) { in.Items[0].MenuItemID = f.foreign.ID }, domainErrors.ErrMenuItemNotFound},
		{"duplicate lines", func(in *PlaceOrderInput) {
			in.Items = []OrderLine{{MenuItemID: f.burger.ID, Quantity: 1}, {MenuItemID: f.burger.ID, Quantity: 1}}
		}, domainErrors.ErrItemsMismatch},
		{"total mismatch", func(in *PlaceOrderInput) { in.TotalPrice = 99 }, domainErrors.ErrTotalMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.modify(&in)
			_, err := f.uc.Place(context.Background(), f.student.ID, in)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.AllEvents())
}

func TestOrderUseCasePlaceRollsBackWhenEventFails(t *testing.T) {
	f := newOrderFixture(t)
	f.store.Fail["Events.Append"] = errors.New("outbox down")

	_, err := f.uc.Place(context.Background(), f.student.ID, PlaceOrderInput{
		VendorID:      f.vendor.ID,
		Items:         []OrderLine{{MenuItemID: f.burger.ID, Quantity: 2}},
		TotalPrice:    100,
		TransactionID: "TX1",
	})
	require.Error(t, err)

	page, err := f.uc.StudentOrders(context.Background(), f.student.ID, model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestOrderUseCaseRejectThenResubmit(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.place(t)

	rejected, err := f.uc.Verify(ctx, f.vendor.ID, order.ID, "reject", "bad id")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRejected, rejected.Status)
	assert.Equal(t, "bad id", rejected.RejectionReason)

	resubmitted, err := f.uc.Resubmit(ctx, f.student.ID, order.ID, "TX2")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, resubmitted.Status)
	assert.Empty(t, resubmitted.RejectionReason)
	assert.Equal(t, "TX2", resubmitted.TransactionID)

	var types []model.OrderEventType
	for _, e := range f.store.AllEvents() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []model.OrderEventType{model.OrderEventPlaced, model.OrderEventRejected, model.OrderEventResubmitted}, types)
}

func TestOrderUseCaseRejectDefaultReason(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t)

	rejected, err := f.uc.Verify(context.Background(), f.vendor.ID, order.ID, "reject", "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRejectionReason, rejected.RejectionReason)
}

func TestOrderUseCaseFullLifecycle(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.place(t)

	_, err := f.uc.Verify(ctx, f.vendor.ID, order.ID, "accept", "")
	require.NoError(t, err)
	_, err = f.uc.Advance(ctx, f.vendor.ID, order.ID, model.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = f.uc.Advance(ctx, f.vendor.ID, order.ID, model.OrderStatusReady)
	require.NoError(t, err)
	completed, err := f.uc.Complete(ctx, f.student.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, completed.Status)
	assert.Len(t, f.store.AllEvents(), 5)
}

func TestOrderUseCaseIllegalTransitionsLeaveStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		status model.OrderStatus
		run    func(id int64) error
	}{
		{"accept accepted", model.OrderStatusAccepted, func(id int64) error {
			_, err := f.uc.Verify(ctx, f.vendor.ID, id, "accept", "")
			return err
		}},
		{"ready from accepted", model.OrderStatusAccepted, func(id int64) error {
			_, err := f.uc.Advance(ctx, f.vendor.ID, id, model.OrderStatusReady)
			return err
		}},
		{"complete processing", model.OrderStatusProcessing, func(id int64) error {
			_, err := f.uc.Complete(ctx, f.student.ID, id)
			return err
		}},
		{"resubmit pending", model.OrderStatusPending, func(id int64) error {
			_, err := f.uc.Resubmit(ctx, f.student.ID, id, "TX9")
			return err
		}},
		{"cancel accepted", model.OrderStatusAccepted, func(id int64) error {
			return f.uc.Cancel(ctx, f.student.ID, id)
		}},
		{"reject completed", model.OrderStatusCompleted, func(id int64) error {
			_, err := f.uc.Verify(ctx, f.vendor.ID, id, "reject", "x")
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := f.seedOrder(tc.status)
			require.ErrorIs(t, tc.run(order.ID), domainErrors.ErrInvalidTransition)
			stored, ok := f.store.Order(order.ID)
			require.True(t, ok)
			assert.Equal(t, tc.status, stored.Status)
		})
	}
}

func TestOrderUseCaseOwnership(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.seedOrder(model.OrderStatusPending)

	_, err := f.uc.Verify(ctx, f.other.ID, order.ID, "accept", "")
	require.ErrorIs(t, err, domainErrors.ErrOrderNotFound)

	err = f.uc.Cancel(ctx, f.student.ID+100, order.ID)
	require.ErrorIs(t, err, domainErrors.ErrOrderNotFound)

	_, err = f.uc.Verify(ctx, f.vendor.ID, 12345, "accept", "")
	require.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}

func TestOrderUseCaseInputErrors(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.seedOrder(model.OrderStatusRejected)

	_, err := f.uc.Verify(ctx, f.vendor.ID, order.ID, "maybe", "")
	require.ErrorIs(t, err, domainErrors.ErrInvalidVerifyAction)

	_, err = f.uc.Advance(ctx, f.vendor.ID, order.ID, model.OrderStatusCompleted)
	require.ErrorIs(t, err, domainErrors.ErrInvalidTargetStatus)

	_, err = f.uc.Resubmit(ctx, f.student.ID, order.ID, " ")
	require.ErrorIs(t, err, domainErrors.ErrMissingTransaction)
}

func TestOrderUseCaseCancelDeletesPending(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t)

	require.NoError(t, f.uc.Cancel(context.Background(), f.student.ID, order.ID))

	_, ok := f.store.Order(order.ID)
	assert.False(t, ok)
	events := f.store.AllEvents()
	require.Len(t, events, 2)
	assert.Equal(t, model.OrderEventCancelled, events[1].Type)
	assert.Empty(t, events[1].Status)
}

func TestOrderUseCaseConcurrentAcceptSucceedsOnce(t *testing.T) {
	f := newOrderFixture(t)
	order := f.seedOrder(model.OrderStatusPending)

	const workers = 8
	errs := make(chan error, workers)
	for range workers {
		go func() {
			_, err := f.uc.Verify(context.Background(), f.vendor.ID, order.ID, "accept", "")
			errs <- err
		}()
	}

	var ok, conflicts int
	for range workers {
		err := <-errs
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}

func TestOrderUseCaseListings(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	for range 3 {
		f.place(t)
	}

	page, err := f.uc.StudentOrders(ctx, f.student.ID, model.NewPage(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 1)

	vendorPage, err := f.uc.VendorOrders(ctx, f.other.ID, model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, vendorPage.Items)
	assert.NotNil(t, vendorPage.Items)
}

func TestOrderUseCaseEventRelayHelpers(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.place(t)
	f.place(t)

	events, err := f.uc.PendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	again, err := f.uc.PendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, f.uc.MarkEventPublished(ctx, events[0].ID))
	assert.True(t, f.store.Published(events[0].ID))
	assert.False(t, f.store.Published(events[1].ID))
}
