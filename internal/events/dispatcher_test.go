package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := Event{ID: "evt-1", Type: EventTicketCreated, TicketID: "ticket-1"}
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, event, received[0])
}

func TestInMemoryDispatcher_TypeIsolation(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var createdCount, triagedCount int
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		createdCount++
		return nil
	})
	dispatcher.Subscribe(EventTicketTriaged, func(context.Context, Event) error {
		triagedCount++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketTriaged}))

	assert.Equal(t, 0, createdCount)
	assert.Equal(t, 1, triagedCount)
}

func TestInMemoryDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var secondCalled bool
	dispatcher.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketStatusChanged}))
	assert.True(t, secondCalled)
}

func TestInMemoryDispatcher_NoSubscribersIsNoop(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketMessageAdded}))
}
