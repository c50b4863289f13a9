package chat

import "MedPet/entity"

// MessageListener is called for every inbound and outbound text message.
// This allows saving transcripts to the database and broadcasting to the
// operator WebSocket feed without coupling the router to either.
type MessageListener interface {
	SaveAndBroadcastChatMessage(msg entity.ChatMessage)
}
