package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var calls []string
	bus.Subscribe(EventTypeStageCompleted, func(ctx context.Context, event Event) {
		calls = append(calls, "first:"+event.(StageCompletedEvent).Stage)
	})
	bus.Subscribe(EventTypeStageCompleted, func(ctx context.Context, event Event) {
		calls = append(calls, "second:"+event.(StageCompletedEvent).Stage)
	})
	bus.Subscribe(EventTypeDatasetPersisted, func(ctx context.Context, event Event) {
		t.Error("handler for a different event type must not run")
	})

	bus.Publish(ctx, StageCompletedEvent{Stage: "customers", Rows: 10})

	assert.Equal(t, []string{"first:customers", "second:customers"}, calls)
}

func TestBus_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	delivered := false
	bus.Subscribe(EventTypeDatasetGenerated, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeDatasetGenerated, func(ctx context.Context, event Event) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(ctx, DatasetGeneratedEvent{Customers: 1})
	})
	assert.True(t, delivered, "later handlers still run after a panic")
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()
	runID := uuid.New()

	var received []DatasetPersistedEvent
	bus.Subscribe(EventTypeDatasetPersisted, func(ctx context.Context, event Event) {
		received = append(received, event.(DatasetPersistedEvent))
	})

	t.Run("flush delivers pending events", func(t *testing.T) {
		tx := NewTransactionalBus(bus)
		tx.Publish(DatasetPersistedEvent{RunID: runID, Sink: "postgres", Rows: 42})
		assert.Equal(t, 1, tx.Pending())
		assert.Empty(t, received, "nothing is delivered before flush")

		tx.Flush(ctx)
		require.Len(t, received, 1)
		assert.Equal(t, "postgres", received[0].Sink)
		assert.Equal(t, 0, tx.Pending())
	})

	t.Run("discard drops pending events", func(t *testing.T) {
		received = nil
		tx := NewTransactionalBus(bus)
		tx.Publish(DatasetPersistedEvent{RunID: runID, Sink: "sqlite"})
		tx.Discard()
		tx.Flush(ctx)

		assert.Empty(t, received)
	})

	t.Run("nil underlying bus", func(t *testing.T) {
		tx := NewTransactionalBus(nil)
		tx.Publish(DatasetPersistedEvent{RunID: runID})
		assert.NotPanics(t, func() { tx.Flush(ctx) })
	})
}

func TestTransactionalBus_FlushWithoutBus(t *testing.T) {
	tx := NewTransactionalBus(nil)
	tx.Publish(StageCompletedEvent{Stage: "customers", Rows: 10})
	tx.Publish(StageCompletedEvent{Stage: "labels", Rows: 10})
	require.Equal(t, 2, tx.Pending())

	assert.NotPanics(t, func() { tx.Flush(context.Background()) })
	assert.Equal(t, 0, tx.Pending())
}
