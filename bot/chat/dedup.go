package chat

import (
	"sync"
	"time"
)

// EventWindow remembers recently processed event ids so that webhook
// redeliveries (the platform delivers at-least-once) do not advance a flow
// twice. Entries expire after the configured window.
type EventWindow struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
}

func NewEventWindow(window time.Duration) *EventWindow {
	return &EventWindow{
		seen:   make(map[string]time.Time),
		window: window,
	}
}

// Observe records the event id and reports whether it was already seen
// inside the window. Expired entries are pruned on each call.
func (w *EventWindow) Observe(eventID string) bool {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	for id, at := range w.seen {
		if now.Sub(at) > w.window {
			delete(w.seen, id)
		}
	}

	if _, dup := w.seen[eventID]; dup {
		return true
	}
	w.seen[eventID] = now
	return false
}
