package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/installd/switchboard/pkg/constants"
	"github.com/installd/switchboard/pkg/errors"
)

// Hub delivers each published event to every live subscription, preserving
// publish order per subscriber, without ever blocking the producer. Each
// subscription owns a fixed-capacity ring buffer; when it overflows, the
// oldest undelivered events are dropped for that subscriber only and the gap
// is surfaced as a LagError on its next read.
//
// A Hub is safe for concurrent use: publishes, subscribes, reads, and closes
// may interleave freely with no external locking.
type Hub struct {
	mu       sync.Mutex
	subs     map[*Subscription]struct{}
	seq      uint64 // sequence number of the last published event
	capacity int
	closed   bool
	logger   *zerolog.Logger
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCapacity sets the per-subscription ring buffer capacity.
func WithCapacity(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// NewHub creates a new broadcast hub.
func NewHub(logger *zerolog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		subs:     make(map[*Subscription]struct{}),
		capacity: constants.DefaultEventBufferSize,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish hands the event to every current subscription. It never blocks
// and never fails observably: on a closed hub it is a no-op, and a full
// subscriber buffer drops that subscriber's oldest event.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.seq++
	for sub := range h.subs {
		sub.push(h.seq, e.Clone())
	}

	h.logger.Debug().
		Str("event_type", e.Type()).
		Uint64("seq", h.seq).
		Int("subscribers", len(h.subs)).
		Msg("Event published")
}

// Subscribe registers a new subscription whose reads start from this moment.
// Subscribing to a closed hub yields a handle whose Next immediately reports
// closure.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		hub:   h,
		ring:  make([]item, h.capacity),
		next:  h.seq + 1,
		ready: make(chan struct{}, 1),
	}

	if h.closed {
		sub.closed = true
		close(sub.ready)
		return sub
	}

	h.subs[sub] = struct{}{}
	return sub
}

// SubscriberCount returns the current number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close shuts the hub down. All pending and future reads observe
// ErrHubClosed once their buffered events are drained; further publishes
// are silently discarded. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for sub := range h.subs {
		sub.shutdown()
		delete(h.subs, sub)
	}

	h.logger.Debug().Msg("Broadcast hub closed")
}

// remove detaches a subscription; called from Subscription.Close.
func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// item pairs a buffered event with its hub sequence number so the
// subscription can detect gaps.
type item struct {
	seq   uint64
	event Event
}

// Subscription is one subscriber's handle and cursor into the broadcast
// stream. It must not be shared by concurrent readers; create one
// subscription per consumer instead.
type Subscription struct {
	hub *Hub

	mu     sync.Mutex
	ring   []item
	start  int
	count  int
	next   uint64 // next sequence number this subscriber expects
	closed bool

	// ready carries a wake-up signal to a blocked Next. Buffered so push
	// never blocks; a stale signal is harmless because Next re-checks.
	ready chan struct{}
}

// push appends an event to the ring, dropping the oldest entry on overflow.
// Called with the hub lock held, which serializes pushes per subscriber.
func (s *Subscription) push(seq uint64, e Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.count == len(s.ring) {
		s.ring[s.start] = item{}
		s.start = (s.start + 1) % len(s.ring)
		s.count--
	}
	s.ring[(s.start+s.count)%len(s.ring)] = item{seq: seq, event: e}
	s.count++
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next blocks until the next event is available for this subscription.
// It returns a LagError exactly once per detected gap (delivery resumes on
// the following call), ErrHubClosed once the hub is shut down and the
// buffer is drained, or the context error if ctx ends first.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	for {
		s.mu.Lock()
		if s.count > 0 {
			head := s.ring[s.start]
			if head.seq > s.next {
				// Events between next and head.seq were dropped; report
				// the gap and realign the cursor.
				missed := head.seq - s.next
				s.next = head.seq
				s.mu.Unlock()
				return nil, &errors.LagError{Missed: missed}
			}

			s.ring[s.start] = item{}
			s.start = (s.start + 1) % len(s.ring)
			s.count--
			s.next = head.seq + 1
			s.mu.Unlock()
			return head.event, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return nil, errors.ErrHubClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.ready:
		}
	}
}

// Close releases the subscription and any buffered events. Other
// subscribers and producers are unaffected. Close is idempotent.
func (s *Subscription) Close() {
	s.hub.remove(s)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.start = 0
	s.count = 0
	close(s.ready)
}

// shutdown marks the subscription closed on hub shutdown, leaving buffered
// events readable until drained. Called with the hub lock held.
func (s *Subscription) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ready)
}
