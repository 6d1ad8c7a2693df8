package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// EventFacadeStub mimics relay interactions with the campus facade.
type EventFacadeStub struct {
	Batches   [][]model.OrderEvent
	PendingFn func(context.Context, int) ([]model.OrderEvent, error)
	PublishFn func(context.Context, model.OrderEvent) error
	MarkFn    func(context.Context, int64) error

	Published []model.OrderEvent
	Marked    []int64

	mu        sync.Mutex
	callCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *EventFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *EventFacadeStub) Unlock() { s.mu.Unlock() }

// PendingEvents returns batches from the configured queue, then nothing.
func (s *EventFacadeStub) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(5 * time.Millisecond)
	return nil, nil
}

// PublishEvent records published events.
func (s *EventFacadeStub) PublishEvent(ctx context.Context, event model.OrderEvent) error {
	if s.PublishFn != nil {
		if err := s.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, event)
	return nil
}

// MarkEventPublished records acknowledged event ids.
func (s *EventFacadeStub) MarkEventPublished(ctx context.Context, eventID int64) error {
	if s.MarkFn != nil {
		if err := s.MarkFn(ctx, eventID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = append(s.Marked, eventID)
	return nil
}

// MarkedCount returns the number of acknowledged events.
func (s *EventFacadeStub) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Marked)
}

// PublisherStub records events handed to the message broker.
type PublisherStub struct {
	mu     sync.Mutex
	Events []model.OrderEvent
	Err    error
	Closed bool
}

// Publish stores the event unless Err is set.
func (p *PublisherStub) Publish(_ context.Context, event model.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

// Close marks the publisher closed.
func (p *PublisherStub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// Sent returns a copy of published events.
func (p *PublisherStub) Sent() []model.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.OrderEvent(nil), p.Events...)
}
