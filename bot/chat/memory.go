package chat

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStorage is the in-memory SessionStorage used in tests and
// when Mongo is disabled. Entries idle longer than ttl are dropped on access.
type MemorySessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemorySessionStorage(ttl time.Duration) *MemorySessionStorage {
	return &MemorySessionStorage{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemorySessionStorage) Load(ctx context.Context, conversationID string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[conversationID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if s.ttl > 0 && time.Since(session.UpdatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, conversationID)
		s.mu.Unlock()
		return nil, nil
	}

	copied := *session
	return &copied, nil
}

func (s *MemorySessionStorage) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.ConversationID] = &copied
	return nil
}

func (s *MemorySessionStorage) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, conversationID)
	return nil
}
