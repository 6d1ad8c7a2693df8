package postgres

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

type eventRepository struct {
	db querier
}

// claimTimeout is how long a claimed but unpublished event stays reserved.
const claimTimeout = time.Minute

func (r *eventRepository) Append(ctx context.Context, event model.OrderEvent) error {
	const query = `INSERT INTO order_events (order_id, student_id, vendor_id, type, status, reason, occurred_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		event.OrderID, event.StudentID, event.VendorID, event.Type, event.Status, event.Reason, event.OccurredAt,
	)
	return err
}

func (r *eventRepository) ClaimBatch(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	const query = `UPDATE order_events SET claimed_at=NOW()
                   WHERE id IN (
                       SELECT id FROM order_events
                       WHERE published_at IS NULL
                         AND (claimed_at IS NULL OR claimed_at < NOW() - $2 * INTERVAL '1 second')
                       ORDER BY id
                       LIMIT $1
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, order_id, student_id, vendor_id, type, status, reason, occurred_at`
	rows, err := r.db.Query(ctx, query, limit, int64(claimTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.OrderEvent
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.StudentID, &e.VendorID, &e.Type, &e.Status, &e.Reason, &e.OccurredAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortEvents(events)
	return events, nil
}

func (r *eventRepository) MarkPublished(ctx context.Context, eventID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE order_events SET published_at=NOW() WHERE id=$1`, eventID)
	return err
}

// sortEvents restores id order, RETURNING does not guarantee it.
func sortEvents(events []model.OrderEvent) {
	slices.SortFunc(events, func(a, b model.OrderEvent) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
