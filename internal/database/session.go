package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"MedPet/bot/chat"
)

// SaveSession upserts a conversation's flow session by conversation_id.
func (m *MongoDB) SaveSession(ctx context.Context, session *chat.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	session.UpdatedAt = time.Now()

	filter := bson.D{{Key: "conversation_id", Value: session.ConversationID}}
	update := bson.D{{Key: "$set", Value: session}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// LoadSession retrieves a conversation's flow session, (nil, nil) if absent.
func (m *MongoDB) LoadSession(ctx context.Context, conversationID string) (*chat.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "conversation_id", Value: conversationID}}

	var session chat.Session
	err = collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// DeleteSession removes a conversation's flow session.
func (m *MongoDB) DeleteSession(ctx context.Context, conversationID string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "conversation_id", Value: conversationID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}

// EnsureSessionIndexes creates the unique lookup index and the TTL index
// that expires abandoned sessions after the configured number of days.
func (m *MongoDB) EnsureSessionIndexes() error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(
				int32((time.Duration(m.expiredDays) * 24 * time.Hour).Seconds()),
			),
		},
	}

	_, err = collection.Indexes().CreateMany(m.ctx, indexes)
	if err != nil {
		return fmt.Errorf("mongodb create session indexes: %w", err)
	}

	return nil
}
