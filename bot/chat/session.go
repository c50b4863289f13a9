package chat

import (
	"context"
	"sync"
	"time"
)

// FlowType identifies which dialog flow owns a session.
type FlowType string

const (
	FlowAppointment FlowType = "appointment"
	FlowAssistant   FlowType = "assistant"
)

// Step is a position inside a flow.
type Step string

const (
	StepAwaitingName    Step = "awaiting_name"
	StepAwaitingPetName Step = "awaiting_pet_name"
	StepAwaitingPetType Step = "awaiting_pet_type"
	StepAwaitingReason  Step = "awaiting_reason"

	StepAwaitingQuestion Step = "awaiting_question"
)

// Session holds the active flow state for one conversation. A conversation
// has zero or one session at any time; starting a new flow overwrites any
// previous one, discarding its partial data.
type Session struct {
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	Flow           FlowType  `json:"flow" bson:"flow"`
	Step           Step      `json:"step" bson:"step"`
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	PetName        string    `json:"pet_name,omitempty" bson:"pet_name,omitempty"`
	PetType        string    `json:"pet_type,omitempty" bson:"pet_type,omitempty"`
	Reason         string    `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// NewSession creates a session at the flow's initial step.
func NewSession(conversationID string, flow FlowType, step Step) *Session {
	now := time.Now()
	return &Session{
		ConversationID: conversationID,
		Flow:           flow,
		Step:           step,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SessionStorage persists per-conversation flow state. Load returns
// (nil, nil) when no session exists.
type SessionStorage interface {
	Load(ctx context.Context, conversationID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, conversationID string) error
}

// ConversationLocks serializes processing per conversation id so that two
// events for the same conversation never interleave their read-modify-write
// of the session store. Entries are refcounted and removed once the last
// holder or waiter releases, so the map stays bounded by concurrency, not
// by the number of conversations ever seen.
type ConversationLocks struct {
	mutex sync.Mutex
	locks map[string]*conversationLock
}

type conversationLock struct {
	mutex sync.Mutex
	refs  int
}

func NewConversationLocks() *ConversationLocks {
	return &ConversationLocks{locks: make(map[string]*conversationLock)}
}

func (l *ConversationLocks) Lock(conversationID string) {
	l.mutex.Lock()

	lock, exists := l.locks[conversationID]
	if !exists {
		lock = &conversationLock{}
		l.locks[conversationID] = lock
	}
	lock.refs++

	l.mutex.Unlock()

	lock.mutex.Lock()
}

func (l *ConversationLocks) Unlock(conversationID string) {
	l.mutex.Lock()

	lock, exists := l.locks[conversationID]
	if !exists {
		l.mutex.Unlock()
		return
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, conversationID)
	}

	l.mutex.Unlock()

	lock.mutex.Unlock()
}
