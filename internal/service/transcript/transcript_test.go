package transcript

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MedPet/entity"
)

type fakeStore struct {
	saved []entity.ChatMessage
	err   error
}

func (s *fakeStore) SaveChatMessage(msg entity.ChatMessage) error {
	s.saved = append(s.saved, msg)
	return s.err
}

type fakeBroadcaster struct {
	sent []entity.ChatMessage
}

func (b *fakeBroadcaster) BroadcastMessage(msg entity.ChatMessage) {
	b.sent = append(b.sent, msg)
}

func TestFeedSavesAndBroadcasts(t *testing.T) {
	store := &fakeStore{}
	broadcaster := &fakeBroadcaster{}
	feed := NewFeed(store, broadcaster, slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg := entity.ChatMessage{
		ConversationID: "user1",
		Direction:      "incoming",
		Sender:         "user",
		Text:           "hello",
		CreatedAt:      time.Now(),
	}
	feed.SaveAndBroadcastChatMessage(msg)

	assert.Len(t, store.saved, 1)
	assert.Len(t, broadcaster.sent, 1)
	assert.Equal(t, "hello", store.saved[0].Text)
}

func TestFeedBroadcastsEvenWhenStoreFails(t *testing.T) {
	store := &fakeStore{err: errors.New("down")}
	broadcaster := &fakeBroadcaster{}
	feed := NewFeed(store, broadcaster, slog.New(slog.NewTextHandler(io.Discard, nil)))

	feed.SaveAndBroadcastChatMessage(entity.ChatMessage{Text: "hi"})

	assert.Len(t, broadcaster.sent, 1)
}

func TestFeedToleratesNilBackends(t *testing.T) {
	feed := NewFeed(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotPanics(t, func() {
		feed.SaveAndBroadcastChatMessage(entity.ChatMessage{Text: "hi"})
	})
}
