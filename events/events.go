package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeStageCompleted   EventType = "stage_completed"
	EventTypeDatasetGenerated EventType = "dataset_generated"
	EventTypeDatasetPersisted EventType = "dataset_persisted"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// StageCompletedEvent is emitted after each generation stage produced its table
type StageCompletedEvent struct {
	RunID    uuid.UUID
	Stage    string
	Rows     int
	Duration time.Duration
}

func (e StageCompletedEvent) Type() EventType {
	return EventTypeStageCompleted
}

// DatasetGeneratedEvent is emitted once all five tables exist in memory
type DatasetGeneratedEvent struct {
	RunID     uuid.UUID
	Customers int
	Churned   int
	Duration  time.Duration
}

func (e DatasetGeneratedEvent) Type() EventType {
	return EventTypeDatasetGenerated
}

// DatasetPersistedEvent is emitted after a sink durably stored a dataset
type DatasetPersistedEvent struct {
	RunID uuid.UUID
	Sink  string
	Rows  int
}

func (e DatasetPersistedEvent) Type() EventType {
	return EventTypeDatasetPersisted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Publish delivers an event to every handler in subscription order.
// Handlers run on the caller's goroutine so generation stays single-threaded.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		b.dispatch(ctx, event, handler, i)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, h Handler, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	h(ctx, event)
}

// TransactionalBus holds events published inside a unit of work until the
// work commits, then hands them to the underlying Bus
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a pending queue in front of real. real may be nil.
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes the event until Flush
func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush publishes every pending event in order and empties the queue.
// Units of work call it after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) {
	if b.real != nil {
		for _, ev := range b.pending {
			b.real.Publish(ctx, ev)
		}
	}
	b.pending = nil
}

// Discard drops pending events without publishing them
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
