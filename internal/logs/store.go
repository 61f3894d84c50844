package logs

import (
	"sync"
	"time"

	"catlog/internal/constants"
	"catlog/internal/domain"
)

// Config holds tunables for the log store.
type Config struct {
	Capacity           int           // max entries kept in the ordered store
	FlushInterval      time.Duration // batch flush cadence
	BatchLimit         int           // flush early once the batch reaches this size
	PendingLimit       int           // cap on entries queued while paused
	SubscriptionBuffer int           // channel buffer for subscribers
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:           constants.DefaultBufferSize,
		FlushInterval:      constants.DefaultFlushInterval,
		BatchLimit:         constants.DefaultFlushBatchLimit,
		PendingLimit:       constants.DefaultPendingLimit,
		SubscriptionBuffer: constants.DefaultSubscriptionBuffer,
	}
}

// Store is the single ownership point for ingested log entries. It batches
// high-frequency appends, flushes them on a fixed cadence or batch-size
// threshold, evicts oldest-first at capacity, maintains a filtered view
// incrementally, and supports pause/resume with a bounded, counted pending
// queue.
//
// All operations are serialized on one mutex: the parser's read loop, the
// flush timer, and consumer calls never touch the storage directly.
type Store struct {
	mu  sync.Mutex
	cfg Config

	// entries and filtered are deques: the live window is slice[head:].
	// Eviction advances head; the backing array is compacted once the
	// dead prefix exceeds capacity, keeping eviction O(1) amortized.
	entries      []domain.Entry
	head         int
	filtered     []domain.Entry
	filteredHead int

	matcher *Matcher

	batch    []domain.Entry
	timer    *time.Timer
	flushGen uint64 // invalidates scheduled flushes from stale timers

	paused  bool
	pending []domain.Entry
	dropped int

	subs *SubscriptionManager
}

// NewStore creates a store with the given configuration. Zero fields fall
// back to defaults. The initial filter matches everything.
func NewStore(cfg Config) *Store {
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = def.BatchLimit
	}
	if cfg.PendingLimit <= 0 {
		cfg.PendingLimit = def.PendingLimit
	}
	if cfg.SubscriptionBuffer <= 0 {
		cfg.SubscriptionBuffer = def.SubscriptionBuffer
	}

	matcher, _ := NewMatcher(domain.DefaultFilter())

	return &Store{
		cfg:     cfg,
		matcher: matcher,
		subs:    NewSubscriptionManager(cfg.SubscriptionBuffer),
	}
}

// Append adds entries to the current batch, or to the pending queue while
// paused. The batch is committed by the flush timer or immediately once it
// reaches the batch limit.
func (s *Store) Append(entries ...domain.Entry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.enqueuePendingLocked(entries)
		return
	}

	s.batch = append(s.batch, entries...)
	if len(s.batch) >= s.cfg.BatchLimit {
		s.flushLocked()
		return
	}
	if s.timer == nil {
		s.scheduleFlushLocked()
	}
}

// Flush commits any batched entries immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Pause freezes the observable views. The in-flight batch is committed
// first; entries appended afterwards accumulate in the pending queue, up
// to the pending limit.
func (s *Store) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return
	}
	s.flushLocked()
	s.paused = true
	s.subs.Broadcast(Event{Type: EventPaused})
}

// Resume drains the pending queue through the normal flush path and resets
// the pending and dropped counters.
func (s *Store) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.paused {
		return
	}
	s.paused = false

	pending := s.pending
	s.pending = nil
	s.dropped = 0

	if len(pending) > 0 {
		s.batch = append(s.batch, pending...)
		s.flushLocked()
	}
	s.subs.Broadcast(Event{Type: EventResumed})
}

// Clear atomically empties the store, the filtered view, the pending
// queue, the batch, and all counters. Any scheduled flush is invalidated
// so it cannot resurrect stale data.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.entries = nil
	s.head = 0
	s.filtered = nil
	s.filteredHead = 0
	s.batch = nil
	s.pending = nil
	s.dropped = 0

	s.subs.Broadcast(Event{Type: EventCleared})
}

// SetFilter swaps the active filter and re-derives the filtered view from
// the complete store exactly once. An invalid descriptor leaves the
// current filter in place.
func (s *Store) SetFilter(filter domain.Filter) error {
	matcher, err := NewMatcher(filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Commit the in-flight batch so the re-derivation covers it.
	s.flushLocked()
	s.matcher = matcher

	live := s.entries[s.head:]
	filtered := make([]domain.Entry, 0, len(live))
	for _, e := range live {
		if matcher.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	s.filtered = filtered
	s.filteredHead = 0

	s.subs.Broadcast(Event{Type: EventFilterChanged})
	return nil
}

// Filter returns the active filter descriptor.
func (s *Store) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.Filter()
}

// Entries returns a copy of the ordered store, oldest first.
func (s *Store) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntries(s.entries[s.head:])
}

// Filtered returns a copy of the filtered view, oldest first.
func (s *Store) Filtered() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntries(s.filtered[s.filteredHead:])
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Stats{
		Total:    len(s.entries) - s.head,
		Filtered: len(s.filtered) - s.filteredHead,
		Capacity: s.cfg.Capacity,
		Paused:   s.paused,
		Pending:  len(s.pending),
		Dropped:  s.dropped,
	}
}

// Paused reports whether the store is paused.
func (s *Store) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Subscribe registers a consumer for store events.
func (s *Store) Subscribe() (string, <-chan Event) {
	return s.subs.Subscribe()
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(id string) {
	s.subs.Unsubscribe(id)
}

// Close shuts down all subscriptions and stops any pending flush.
func (s *Store) Close() {
	s.mu.Lock()
	s.flushGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.subs.Close()
}

// scheduleFlushLocked arms the single outstanding flush timer. The
// generation captured here is checked when the timer fires, so a Clear or
// an earlier threshold flush in between makes the firing a no-op.
func (s *Store) scheduleFlushLocked() {
	gen := s.flushGen
	s.timer = time.AfterFunc(s.cfg.FlushInterval, func() {
		s.timedFlush(gen)
	})
}

func (s *Store) timedFlush(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.flushGen {
		return
	}
	s.timer = nil
	s.flushLocked()
}

// flushLocked commits the batch: append to the ordered store, evict the
// oldest overflow, strip evicted entries from the filtered view by ID, and
// append matching survivors of the batch to the filtered view.
func (s *Store) flushLocked() {
	s.flushGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len(s.batch) == 0 {
		return
	}
	batch := s.batch
	s.batch = nil

	prev := len(s.entries) - s.head
	s.entries = append(s.entries, batch...)

	survivors := batch
	if excess := prev + len(batch) - s.cfg.Capacity; excess > 0 {
		evicted := s.entries[s.head : s.head+excess]
		evictedIDs := make(map[uint64]struct{}, len(evicted))
		for _, e := range evicted {
			evictedIDs[e.ID] = struct{}{}
		}

		s.advanceHead(excess)

		// Evicted store entries form a prefix of the filtered view;
		// drop them by identity rather than re-deriving the view.
		for s.filteredHead < len(s.filtered) {
			if _, ok := evictedIDs[s.filtered[s.filteredHead].ID]; !ok {
				break
			}
			s.filteredHead++
		}
		s.compactFiltered()

		// Batch entries past the capacity never became observable.
		if evictedFromBatch := excess - prev; evictedFromBatch > 0 {
			survivors = batch[evictedFromBatch:]
		}
	}

	for _, e := range survivors {
		if s.matcher.Matches(e) {
			s.filtered = append(s.filtered, e)
		}
	}

	s.subs.Broadcast(Event{Type: EventFlushed, Appended: copyEntries(survivors)})
}

func (s *Store) enqueuePendingLocked(entries []domain.Entry) {
	room := s.cfg.PendingLimit - len(s.pending)
	if room >= len(entries) {
		s.pending = append(s.pending, entries...)
		return
	}
	if room > 0 {
		s.pending = append(s.pending, entries[:room]...)
	}
	if room < 0 {
		room = 0
	}
	s.dropped += len(entries) - room
}

// advanceHead evicts n entries from the store deque and compacts the
// backing array once the dead prefix exceeds one full capacity.
func (s *Store) advanceHead(n int) {
	s.head += n
	if s.head > s.cfg.Capacity {
		live := s.entries[s.head:]
		fresh := make([]domain.Entry, len(live), s.cfg.Capacity+s.cfg.BatchLimit)
		copy(fresh, live)
		s.entries = fresh
		s.head = 0
	}
}

func (s *Store) compactFiltered() {
	if s.filteredHead > s.cfg.Capacity {
		live := s.filtered[s.filteredHead:]
		s.filtered = append([]domain.Entry(nil), live...)
		s.filteredHead = 0
	}
}

func copyEntries(entries []domain.Entry) []domain.Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	return out
}
