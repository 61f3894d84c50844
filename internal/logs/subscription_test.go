package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catlog/internal/domain"
)

func TestSubscriptionManager_SubscribeUnsubscribe(t *testing.T) {
	m := NewSubscriptionManager(10)
	defer m.Close()

	id, ch := m.Subscribe()
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, m.Count())

	m.Broadcast(Event{Type: EventFlushed})
	ev := <-ch
	assert.Equal(t, EventFlushed, ev.Type)

	m.Unsubscribe(id)
	assert.Equal(t, 0, m.Count())

	// Channel is closed after unsubscribe.
	_, open := <-ch
	assert.False(t, open)
}

func TestSubscriptionManager_BroadcastToAll(t *testing.T) {
	m := NewSubscriptionManager(10)
	defer m.Close()

	_, ch1 := m.Subscribe()
	_, ch2 := m.Subscribe()

	m.Broadcast(Event{Type: EventCleared})

	assert.Equal(t, EventCleared, (<-ch1).Type)
	assert.Equal(t, EventCleared, (<-ch2).Type)
}

func TestSubscription_DropWhenFull(t *testing.T) {
	m := NewSubscriptionManager(1)
	defer m.Close()

	_, ch := m.Subscribe()

	m.Broadcast(Event{Type: EventFlushed, Appended: []domain.Entry{{ID: 1}}})
	m.Broadcast(Event{Type: EventFlushed, Appended: []domain.Entry{{ID: 2}}})

	// Second event was dropped, not blocked on.
	ev := <-ch
	require.Len(t, ev.Appended, 1)
	assert.Equal(t, uint64(1), ev.Appended[0].ID)

	select {
	case <-ch:
		t.Fatal("expected the overflow event to be dropped")
	default:
	}
}

func TestSubscriptionManager_Close(t *testing.T) {
	m := NewSubscriptionManager(10)

	_, ch1 := m.Subscribe()
	_, ch2 := m.Subscribe()

	m.Close()
	assert.Equal(t, 0, m.Count())

	_, open := <-ch1
	assert.False(t, open)
	_, open = <-ch2
	assert.False(t, open)
}

func TestSubscription_SendAfterClose(t *testing.T) {
	sub := newSubscription(1)
	sub.Close()
	assert.False(t, sub.Send(Event{Type: EventFlushed}))
}
