package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"MedPet/entity"
)

// Event represents a WebSocket event sent to operator consoles.
type Event struct {
	Type string      `json:"type"` // "new_message", "new_appointment"
	Data interface{} `json:"data"`
}

// Hub maintains the set of connected operator consoles and broadcasts the
// live conversation feed to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			// Write lock: slow consumers are evicted mid-iteration.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastMessage sends a new_message event to all connected consoles.
func (h *Hub) BroadcastMessage(msg entity.ChatMessage) {
	h.broadcast <- &Event{
		Type: "new_message",
		Data: msg,
	}
}

// BroadcastAppointment sends a new_appointment event to all connected
// consoles.
func (h *Hub) BroadcastAppointment(appointment entity.Appointment) {
	h.broadcast <- &Event{
		Type: "new_appointment",
		Data: appointment,
	}
}
