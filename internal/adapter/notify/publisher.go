// Package notify delivers order lifecycle events to interested parties.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// Publisher sends a single order event.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
	Close() error
}

// LogPublisher writes events to the application log. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a publisher writing to logger.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event model.OrderEvent) error {
	p.logger.Info("order event",
		zap.Int64("event_id", event.ID),
		zap.Int64("order_id", event.OrderID),
		zap.Int64("student_id", event.StudentID),
		zap.Int64("vendor_id", event.VendorID),
		zap.String("type", string(event.Type)),
		zap.String("status", string(event.Status)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
