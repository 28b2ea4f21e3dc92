package events

import (
	"sync"
	"time"

	"github.com/hotelops/backend/internal/metrics"
	"go.uber.org/zap"
)

// Subscriber is one connected live-update client. Events arrive on C; the
// channel is closed exactly once, either by Unsubscribe or when the hub drops
// the subscriber because its buffer filled up.
type Subscriber struct {
	C chan Event

	// LastSeen is the sequence id the client reported on reconnect. The hub
	// keeps no backlog, so this is a hint, not a replay cursor.
	LastSeen uint64
}

// Hub fans domain events out to connected subscribers. It is the only shared
// mutable state in the process: a mutex-guarded subscriber set plus a
// monotonically increasing sequence counter, both reset on restart.
type Hub struct {
	mu   sync.Mutex
	seq  uint64
	subs map[*Subscriber]struct{}

	buffer int
	log    *zap.Logger
}

// NewHub creates a hub whose subscribers each get a send buffer of the given
// size. A subscriber that falls more than buffer events behind is dropped.
func NewHub(buffer int, log *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a new subscriber. lastSeen is the client's reconnect
// hint; missed events are not replayed.
func (h *Hub) Subscribe(lastSeen uint64) *Subscriber {
	s := &Subscriber{
		C:        make(chan Event, h.buffer),
		LastSeen: lastSeen,
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call more
// than once; the close happens exactly once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(s)
}

// Publish assigns the next sequence id and delivers the event to every
// registered subscriber. A subscriber whose buffer is full is dropped and
// delivery continues with the rest; one dead client never blocks the others.
func (h *Hub) Publish(event Event) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	event.Seq = h.seq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	metrics.EventsPublished.Inc()

	for s := range h.subs {
		select {
		case s.C <- event:
		default:
			h.log.Warn("dropping slow event subscriber",
				zap.Uint64("seq", event.Seq),
				zap.Int("buffer", h.buffer),
			)
			h.remove(s)
		}
	}
	return event.Seq
}

// Sequence returns the last assigned sequence id.
func (h *Hub) Sequence() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// remove must be called with h.mu held.
func (h *Hub) remove(s *Subscriber) {
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.C)
}
