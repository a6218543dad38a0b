package live

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	t.Parallel()

	h := NewHub()
	userID := uuid.New()
	events, cancel := h.Subscribe(userID, 4)
	defer cancel()

	h.Publish(userID, Event{Collection: "notifications", Type: TypeCreated})
	h.Publish(userID, Event{Collection: "notifications", Type: TypeUpdated})

	ev := <-events
	assert.Equal(t, TypeCreated, ev.Type)
	ev = <-events
	assert.Equal(t, TypeUpdated, ev.Type)
}

func TestHub_StreamsAreIsolatedPerUser(t *testing.T) {
	t.Parallel()

	h := NewHub()
	alice := uuid.New()
	bob := uuid.New()
	aliceEvents, cancelAlice := h.Subscribe(alice, 4)
	defer cancelAlice()
	bobEvents, cancelBob := h.Subscribe(bob, 4)
	defer cancelBob()

	h.Publish(alice, Event{Collection: "cart", Type: TypeDeleted})

	ev := <-aliceEvents
	assert.Equal(t, "cart", ev.Collection)
	select {
	case ev := <-bobEvents:
		t.Fatalf("bob received alice's event: %+v", ev)
	default:
	}
}

func TestHub_CancelStopsDeliveryAndClosesChannel(t *testing.T) {
	t.Parallel()

	h := NewHub()
	userID := uuid.New()
	events, cancel := h.Subscribe(userID, 4)

	cancel()
	h.Publish(userID, Event{Collection: "notifications", Type: TypeCreated})

	// The channel is closed and drained, never delivering post-cancel
	// events.
	_, ok := <-events
	require.False(t, ok)

	// Cancelling twice is safe.
	cancel()
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	h := NewHub()
	userID := uuid.New()
	events, cancel := h.Subscribe(userID, 1)
	defer cancel()

	h.Publish(userID, Event{Type: TypeCreated})
	h.Publish(userID, Event{Type: TypeUpdated}) // dropped, buffer is full

	ev := <-events
	assert.Equal(t, TypeCreated, ev.Type)
	select {
	case ev := <-events:
		t.Fatalf("unexpected buffered event: %+v", ev)
	default:
	}
}

func TestHub_MultipleSubscribersSameUser(t *testing.T) {
	t.Parallel()

	h := NewHub()
	userID := uuid.New()
	first, cancelFirst := h.Subscribe(userID, 4)
	defer cancelFirst()
	second, cancelSecond := h.Subscribe(userID, 4)
	defer cancelSecond()

	h.Publish(userID, Event{Type: TypeCreated})

	ev := <-first
	assert.Equal(t, TypeCreated, ev.Type)
	ev = <-second
	assert.Equal(t, TypeCreated, ev.Type)
}
