package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

var orderRowColumns = []string{
	"id", "student_id", "vendor_id", "items", "total_price", "status", "transaction_id",
	"rejection_reason", "is_reviewed", "created_at", "updated_at",
}

const itemsJSON = `[{"menuItemId":1,"name":"Tea","quantity":2,"priceAtOrder":10}]`

func orderRow(rows *pgxmockv3.Rows, id int64, status model.OrderStatus, reason string, now time.Time) *pgxmockv3.Rows {
	return rows.AddRow(id, int64(3), int64(1), []byte(itemsJSON), 20.0, status, "TX1", reason, false, now, now)
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	now := time.Now()
	order := &model.Order{
		StudentID: 3, VendorID: 1, TotalPrice: 20, Status: model.OrderStatusPending, TransactionID: "TX1",
		Items: []model.OrderItem{{MenuItemID: 1, Name: "Tea", Quantity: 2, PriceAtOrder: 10}},
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(3), int64(1), []byte(itemsJSON), 20.0, model.OrderStatusPending, "TX1").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))
	created, err := repo.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 11 || len(created.Items) != 1 {
		t.Fatalf("unexpected order: %+v", created)
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(3), int64(1), []byte(itemsJSON), 20.0, model.OrderStatusPending, "TX1").
		WillReturnError(errors.New("insert"))
	if _, err := repo.Create(context.Background(), order); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(11)).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 11, model.OrderStatusPending, "", now))
	got, err := repo.GetByID(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Items[0].Name != "Tea" || got.Items[0].Quantity != 2 || got.Items[0].PriceAtOrder != 10 {
		t.Fatalf("items not decoded: %+v", got.Items)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(12)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 12); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(13)).WillReturnRows(
		pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(13), int64(3), int64(1), []byte(`not json`), 20.0, model.OrderStatusPending, "TX1", "", false, now, now))
	if _, err := repo.GetByID(context.Background(), 13); err == nil {
		t.Fatal("expected decode error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListing(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	now := time.Now()
	page := model.NewPage(2, 2)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE student_id=").WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(3))
	rows := pgxmockv3.NewRows(orderRowColumns)
	orderRow(rows, 1, model.OrderStatusCompleted, "", now)
	mock.ExpectQuery("FROM orders WHERE student_id=\\$1 ORDER BY created_at DESC").WithArgs(int64(3), 2, 2).WillReturnRows(rows)

	orders, total, err := repo.ListByStudent(context.Background(), 3, page)
	if err != nil || total != 3 || len(orders) != 1 {
		t.Fatalf("unexpected result: %v total=%d err=%v", orders, total, err)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE vendor_id=").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM orders WHERE vendor_id=\\$1 ORDER BY created_at DESC").WithArgs(int64(1), 20, 0).
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns))
	orders, total, err = repo.ListByVendor(context.Background(), 1, model.NewPage(0, 0))
	if err != nil || total != 0 || len(orders) != 0 {
		t.Fatalf("expected empty result, got %v total=%d err=%v", orders, total, err)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE vendor_id=").WithArgs(int64(2)).WillReturnError(errors.New("count"))
	if _, _, err := repo.ListByVendor(context.Background(), 2, page); err == nil {
		t.Fatal("expected count error")
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE vendor_id=").WithArgs(int64(4)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("FROM orders WHERE vendor_id=\\$1 ORDER BY created_at DESC").WithArgs(int64(4), 2, 2).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 1, model.OrderStatusPending, "", now).RowError(0, errors.New("row err")))
	if _, _, err := repo.ListByVendor(context.Background(), 4, page); err == nil || err.Error() != "row err" {
		t.Fatalf("expected row err, got %v", err)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE vendor_id=").WithArgs(int64(5)).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM orders WHERE vendor_id=\\$1 ORDER BY created_at DESC").WithArgs(int64(5), 100, math.MaxInt).
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns))
	orders, total, err = repo.ListByVendor(context.Background(), 5, model.NewPage(200000000000000000, 100))
	if err != nil || total != 1 || len(orders) != 0 {
		t.Fatalf("expected empty far page, got %v total=%d err=%v", orders, total, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}

	rowsErr := &orderRepository{db: &rowsErrorQuerier{rows: &errorRows{err: errors.New("rows err")}}}
	if _, _, err := rowsErr.ListByStudent(context.Background(), 1, page); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	now := time.Now()
	reject := model.StatusChange{
		OrderID: 1, From: model.OrderStatusPending, To: model.OrderStatusRejected,
		RejectionReason: model.DefaultRejectionReason,
	}

	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(1), model.OrderStatusPending, model.OrderStatusRejected, "", model.DefaultRejectionReason).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 1, model.OrderStatusRejected, model.DefaultRejectionReason, now))
	order, err := repo.UpdateStatus(context.Background(), reject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusRejected || order.RejectionReason != model.DefaultRejectionReason {
		t.Fatalf("unexpected order: %+v", order)
	}

	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(1), model.OrderStatusPending, model.OrderStatusRejected, "", model.DefaultRejectionReason).
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.UpdateStatus(context.Background(), reject); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for lost race, got %v", err)
	}

	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(1), model.OrderStatusPending, model.OrderStatusRejected, "", model.DefaultRejectionReason).
		WillReturnError(errors.New("update"))
	if _, err := repo.UpdateStatus(context.Background(), reject); err == nil || errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected plain error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryDeleteAndMarkReviewed(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Orders()

	mock.ExpectExec("DELETE FROM orders").WithArgs(int64(1), model.OrderStatusPending).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), 1, model.OrderStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders").WithArgs(int64(2), model.OrderStatusPending).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), 2, model.OrderStatusPending); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET is_reviewed=TRUE").WithArgs(int64(1), model.OrderStatusCompleted).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkReviewed(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE orders SET is_reviewed=TRUE").WithArgs(int64(1), model.OrderStatusCompleted).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkReviewed(context.Background(), 1); !errors.Is(err, domainErrors.ErrAlreadyReviewed) {
		t.Fatalf("expected already reviewed, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET is_reviewed=TRUE").WithArgs(int64(1), model.OrderStatusCompleted).WillReturnError(errors.New("exec"))
	if err := repo.MarkReviewed(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
