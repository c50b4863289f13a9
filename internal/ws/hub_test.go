package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedPet/entity"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	return hub
}

func registerTestClient(hub *Hub, buffer int) *Client {
	client := &Client{hub: hub, send: make(chan []byte, buffer)}
	hub.register <- client
	return client
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubBroadcastsAppointment(t *testing.T) {
	hub := newRunningHub(t)
	client := registerTestClient(hub, 8)

	hub.BroadcastAppointment(entity.Appointment{
		UUID:           "uuid-1",
		ConversationID: "user1",
		Name:           "John Doe",
	})

	event := receiveEvent(t, client)
	assert.Equal(t, "new_appointment", event.Type)

	data, err := json.Marshal(event.Data)
	require.NoError(t, err)
	var appt entity.Appointment
	require.NoError(t, json.Unmarshal(data, &appt))
	assert.Equal(t, "uuid-1", appt.UUID)
	assert.Equal(t, "John Doe", appt.Name)
}

func TestHubBroadcastsMessageToAllClients(t *testing.T) {
	hub := newRunningHub(t)
	first := registerTestClient(hub, 8)
	second := registerTestClient(hub, 8)

	hub.BroadcastMessage(entity.ChatMessage{ConversationID: "user1", Text: "hello"})

	for _, client := range []*Client{first, second} {
		event := receiveEvent(t, client)
		assert.Equal(t, "new_message", event.Type)
	}
}

func TestHubEvictsSlowClient(t *testing.T) {
	hub := newRunningHub(t)
	slow := registerTestClient(hub, 0)
	healthy := registerTestClient(hub, 8)

	// The slow client's buffer is full immediately, so the first broadcast
	// drops it and closes its channel.
	hub.BroadcastMessage(entity.ChatMessage{Text: "one"})

	event := receiveEvent(t, healthy)
	assert.Equal(t, "new_message", event.Type)

	select {
	case _, open := <-slow.send:
		assert.False(t, open, "slow client channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("slow client was never evicted")
	}
}
