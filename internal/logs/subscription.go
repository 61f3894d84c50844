package logs

import (
	"log"
	"sync"
	"sync/atomic"

	"catlog/internal/domain"
)

// EventType identifies what changed in the store.
type EventType int

const (
	EventFlushed EventType = iota
	EventCleared
	EventFilterChanged
	EventPaused
	EventResumed
)

// Event is broadcast to subscribers after a store mutation settles.
// Appended carries the entries committed by a flush; consumers that only
// need a refresh trigger can ignore it and re-snapshot the store.
type Event struct {
	Type     EventType
	Appended []domain.Entry
}

var subscriptionIDCounter uint64

// Subscription represents a store event subscriber
type Subscription struct {
	id     string
	ch     chan Event
	closed atomic.Bool
}

func newSubscription(bufferSize int) *Subscription {
	id := atomic.AddUint64(&subscriptionIDCounter, 1)

	return &Subscription{
		id: formatSubscriptionID(id),
		ch: make(chan Event, bufferSize),
	}
}

func formatSubscriptionID(id uint64) string {
	return "sub-" + formatUint64(id)
}

func formatUint64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ID returns the subscription ID
func (s *Subscription) ID() string {
	return s.id
}

// Channel returns the channel for receiving events
func (s *Subscription) Channel() <-chan Event {
	return s.ch
}

// Send attempts to deliver an event to the subscriber.
// Returns false if the channel is full or closed.
func (s *Subscription) Send(ev Event) bool {
	if s.closed.Load() {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		// Channel full, drop the event - log for debugging slow consumers
		log.Printf("Subscription %s: dropped event (channel full)", s.id)
		return false
	}
}

// Close closes the subscription
func (s *Subscription) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

// SubscriptionManager manages multiple subscriptions
type SubscriptionManager struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	bufferSize    int
}

// NewSubscriptionManager creates a new subscription manager
func NewSubscriptionManager(bufferSize int) *SubscriptionManager {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &SubscriptionManager{
		subscriptions: make(map[string]*Subscription),
		bufferSize:    bufferSize,
	}
}

// Subscribe creates a new subscription
func (m *SubscriptionManager) Subscribe() (string, <-chan Event) {
	sub := newSubscription(m.bufferSize)

	m.mu.Lock()
	m.subscriptions[sub.id] = sub
	m.mu.Unlock()

	return sub.id, sub.ch
}

// Unsubscribe removes a subscription
func (m *SubscriptionManager) Unsubscribe(id string) {
	m.mu.Lock()
	sub, ok := m.subscriptions[id]
	if ok {
		delete(m.subscriptions, id)
	}
	m.mu.Unlock()

	if ok {
		sub.Close()
	}
}

// Broadcast sends an event to all subscribers
func (m *SubscriptionManager) Broadcast(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		sub.Send(ev)
	}
}

// Count returns the number of active subscriptions
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close closes all subscriptions
func (m *SubscriptionManager) Close() {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.subscriptions = make(map[string]*Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
