package transcript

import (
	"log/slog"

	"MedPet/entity"
	"MedPet/internal/lib/sl"
)

// MessageStore persists transcript messages.
type MessageStore interface {
	SaveChatMessage(msg entity.ChatMessage) error
}

// Broadcaster pushes transcript messages to connected operator consoles.
type Broadcaster interface {
	BroadcastMessage(msg entity.ChatMessage)
}

// Feed is the live transcript pipeline: every inbound and outbound message
// is archived and pushed to the operator consoles. Either side may be nil
// when the corresponding backend is disabled.
type Feed struct {
	store       MessageStore
	broadcaster Broadcaster
	log         *slog.Logger
}

func NewFeed(store MessageStore, broadcaster Broadcaster, log *slog.Logger) *Feed {
	return &Feed{
		store:       store,
		broadcaster: broadcaster,
		log:         log.With(sl.Module("transcript")),
	}
}

// SaveAndBroadcastChatMessage archives the message and fans it out. Storage
// failures are logged; the feed never blocks message routing.
func (f *Feed) SaveAndBroadcastChatMessage(msg entity.ChatMessage) {
	if f.store != nil {
		if err := f.store.SaveChatMessage(msg); err != nil {
			f.log.Error("saving chat message",
				slog.String("conversation_id", msg.ConversationID),
				sl.Err(err),
			)
		}
	}
	if f.broadcaster != nil {
		f.broadcaster.BroadcastMessage(msg)
	}
}
