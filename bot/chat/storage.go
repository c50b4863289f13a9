package chat

import "context"

// SessionRepository defines the database operations for session state.
type SessionRepository interface {
	SaveSession(ctx context.Context, session *Session) error
	LoadSession(ctx context.Context, conversationID string) (*Session, error)
	DeleteSession(ctx context.Context, conversationID string) error
}

// MongoSessionStorage adapts the database repository to the SessionStorage
// interface.
type MongoSessionStorage struct {
	repo SessionRepository
}

func NewMongoSessionStorage(repo SessionRepository) *MongoSessionStorage {
	return &MongoSessionStorage{repo: repo}
}

func (s *MongoSessionStorage) Save(ctx context.Context, session *Session) error {
	return s.repo.SaveSession(ctx, session)
}

func (s *MongoSessionStorage) Load(ctx context.Context, conversationID string) (*Session, error) {
	return s.repo.LoadSession(ctx, conversationID)
}

func (s *MongoSessionStorage) Delete(ctx context.Context, conversationID string) error {
	return s.repo.DeleteSession(ctx, conversationID)
}
