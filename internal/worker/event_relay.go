package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// EventFacade exposes the subset of application functionality required by the relay.
type EventFacade interface {
	PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error)
	PublishEvent(ctx context.Context, event model.OrderEvent) error
	MarkEventPublished(ctx context.Context, eventID int64) error
}

// EventRelay polls the order events outbox and publishes claimed events concurrently.
// Events that fail to publish stay unpublished and are claimed again once their claim expires.
type EventRelay struct {
	facade       EventFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *zap.Logger

	jobs   chan model.OrderEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEventRelay constructs the relay worker pool.
func NewEventRelay(facade EventFacade, pollInterval time.Duration, batchSize, workers int, logger *zap.Logger) *EventRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRelay{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger.Named("event_relay"),
	}
}

// Start launches background processing. Calling Start on a running relay is a no-op.
func (r *EventRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.jobs = make(chan model.OrderEvent, r.batchSize*r.workers)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx, r.jobs)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx, r.jobs)
}

// Stop waits for all workers to finish.
func (r *EventRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *EventRelay) dispatch(ctx context.Context, jobs chan<- model.OrderEvent) {
	defer r.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (r *EventRelay) fetchAndDispatch(ctx context.Context, jobs chan<- model.OrderEvent) {
	events, err := r.facade.PendingEvents(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("claim order events failed", zap.Error(err))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case jobs <- event:
		}
	}
}

func (r *EventRelay) worker(ctx context.Context, jobs <-chan model.OrderEvent) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-jobs:
			if !ok {
				return
			}
			r.handleEvent(ctx, event)
		}
	}
}

func (r *EventRelay) handleEvent(ctx context.Context, event model.OrderEvent) {
	if err := r.facade.PublishEvent(ctx, event); err != nil {
		r.logger.Warn("publish order event failed",
			zap.Int64("event_id", event.ID),
			zap.Int64("order_id", event.OrderID),
			zap.Error(err),
		)
		return
	}
	if err := r.facade.MarkEventPublished(ctx, event.ID); err != nil {
		r.logger.Error("mark order event published failed", zap.Int64("event_id", event.ID), zap.Error(err))
	}
}
