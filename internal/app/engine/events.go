package engine

import (
	"sync"
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Engine Events ──────────────────────────────────────────────────────────
// The engine computes; a shell renders. Events are the one-way channel the
// shell consumes for toasts and notifications.

// EventType labels an engine event.
type EventType string

const (
	EventFatigueCrossed     EventType = "fatigue_crossed"
	EventFatigueRepeat      EventType = "fatigue_repeat"
	EventLoyaltyRiskChanged EventType = "loyalty_risk_changed"
	EventStoreDegraded      EventType = "store_degraded"
)

// Event is a single engine notification.
type Event struct {
	Type        EventType          `json:"type"`
	Platform    domain.Platform    `json:"platform,omitempty"`
	LiveSeconds int64              `json:"live_seconds,omitempty"`
	Risk        domain.LoyaltyRisk `json:"risk,omitempty"`
	Message     string             `json:"message"`
	At          time.Time          `json:"at"`
}

// Hub fans engine events out to subscribers. The engine itself is
// single-threaded; the hub is the only concurrency-safe edge, since
// shell subscribers (SSE handlers) read from their own goroutines.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
}

// NewHub creates an empty event hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

// Publish sends an event to all subscribers. Slow clients drop events
// rather than block the engine.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a client. Returns the channel and an unsubscribe func.
func (h *Hub) Subscribe() (chan Event, func()) {
	ch := make(chan Event, 32)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
