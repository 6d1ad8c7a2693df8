package repository

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// EventRepository is the order events outbox.
type EventRepository interface {
	Append(ctx context.Context, event model.OrderEvent) error
	// ClaimBatch reserves up to limit unpublished events for delivery.
	ClaimBatch(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkPublished(ctx context.Context, eventID int64) error
}
