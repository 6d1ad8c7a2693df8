package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

type orderRepository struct {
	db querier
}

const orderColumns = `id, student_id, vendor_id, items, total_price, status, transaction_id, rejection_reason, is_reviewed, created_at, updated_at`

func scanOrder(row scanner) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.StudentID, &o.VendorID, &items, &o.TotalPrice, &o.Status,
		&o.TransactionID, &o.RejectionReason, &o.IsReviewed, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %d items: %w", o.ID, err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}
	const query = `INSERT INTO orders (student_id, vendor_id, items, total_price, status, transaction_id)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	created := *order
	err = r.db.QueryRow(ctx, query,
		order.StudentID, order.VendorID, items, order.TotalPrice, order.Status, order.TransactionID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByStudent(ctx context.Context, studentID int64, page model.Page) ([]model.Order, int, error) {
	return r.listBy(ctx, "student_id", studentID, page)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Order, int, error) {
	return r.listBy(ctx, "vendor_id", vendorID, page)
}

func (r *orderRepository) listBy(ctx context.Context, column string, id int64, page model.Page) ([]model.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+column+`=$1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + `=$1
              ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, id, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	const query = `UPDATE orders
                   SET status=$3,
                       transaction_id=COALESCE(NULLIF($4, ''), transaction_id),
                       rejection_reason=$5,
                       updated_at=NOW()
                   WHERE id=$1 AND status=$2
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query,
		change.OrderID, change.From, change.To, change.TransactionID, change.RejectionReason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrInvalidTransition
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID int64, expected model.OrderStatus) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1 AND status=$2`, orderID, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvalidTransition
	}
	return nil
}

func (r *orderRepository) MarkReviewed(ctx context.Context, orderID int64) error {
	const query = `UPDATE orders SET is_reviewed=TRUE, updated_at=NOW()
                   WHERE id=$1 AND is_reviewed=FALSE AND status=$2`
	tag, err := r.db.Exec(ctx, query, orderID, model.OrderStatusCompleted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyReviewed
	}
	return nil
}
