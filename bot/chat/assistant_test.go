package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedPet/internal/i18n"
)

func newAssistantFixture(t *testing.T, assistant Assistant) (*AssistantFlow, *MemorySessionStorage) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := NewComposer(i18n.New("en"), "MedPet")
	storage := NewMemorySessionStorage(time.Hour)
	return NewAssistantFlow(storage, composer, assistant, time.Second, log), storage
}

func TestAssistantStartCreatesSession(t *testing.T) {
	flow, storage := newAssistantFixture(t, &cannedAssistant{answer: "ok"})
	ctx := context.Background()

	replies, err := flow.Start(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "What would you like to consult about?", replies[0].Text)

	session, err := storage.Load(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, FlowAssistant, session.Flow)
	assert.Equal(t, StepAwaitingQuestion, session.Step)
}

func TestAssistantAnswerFollowedByFeedback(t *testing.T) {
	assistant := &cannedAssistant{answer: "Chocolate is toxic for dogs."}
	flow, storage := newAssistantFixture(t, assistant)
	ctx := context.Background()

	_, err := flow.Start(ctx, "user1")
	require.NoError(t, err)

	session, err := storage.Load(ctx, "user1")
	require.NoError(t, err)
	replies, err := flow.Advance(ctx, session, "Is chocolate bad for dogs?")
	require.NoError(t, err)

	require.Len(t, replies, 2)
	assert.Equal(t, "Chocolate is toxic for dogs.", replies[0].Text)
	require.Len(t, replies[1].Buttons, 3)
	assert.Equal(t, OptionBackToMenu, replies[1].Buttons[0].ID)
	assert.Equal(t, OptionAskAgain, replies[1].Buttons[1].ID)
	assert.Equal(t, OptionEmergency, replies[1].Buttons[2].ID)

	require.Equal(t, []string{"Is chocolate bad for dogs?"}, assistant.asked)

	// One-shot: the session is cleared after the answer.
	session, err = storage.Load(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAssistantFailureStillClearsSession(t *testing.T) {
	assistant := &cannedAssistant{err: errors.New("upstream down")}
	flow, storage := newAssistantFixture(t, assistant)
	ctx := context.Background()

	_, err := flow.Start(ctx, "user1")
	require.NoError(t, err)

	session, err := storage.Load(ctx, "user1")
	require.NoError(t, err)
	replies, err := flow.Advance(ctx, session, "anything")
	require.ErrorIs(t, err, ErrAssistantUnavailable)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "unavailable")

	session, err = storage.Load(ctx, "user1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAssistantAdvanceWithoutSession(t *testing.T) {
	flow, _ := newAssistantFixture(t, &cannedAssistant{answer: "ok"})

	_, err := flow.Advance(context.Background(), nil, "question")
	assert.ErrorIs(t, err, ErrNoActiveFlow)
}
