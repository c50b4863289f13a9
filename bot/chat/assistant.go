package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MedPet/internal/lib/sl"
)

// Assistant is the external completion service behind the consultation flow.
type Assistant interface {
	Ask(ctx context.Context, question string) (string, error)
}

// AssistantFlow is the single-shot consultation: one question, one answer,
// then a feedback menu. The session never survives past one exchange.
type AssistantFlow struct {
	storage    SessionStorage
	composer   *Composer
	assistant  Assistant
	askTimeout time.Duration
	log        *slog.Logger
}

func NewAssistantFlow(storage SessionStorage, composer *Composer, assistant Assistant, askTimeout time.Duration, log *slog.Logger) *AssistantFlow {
	return &AssistantFlow{
		storage:    storage,
		composer:   composer,
		assistant:  assistant,
		askTimeout: askTimeout,
		log:        log.With(sl.Module("flow.assistant")),
	}
}

// Start creates the awaiting-question session, discarding any previous flow,
// and returns the consultation prompt.
func (f *AssistantFlow) Start(ctx context.Context, conversationID string) ([]Reply, error) {
	session := NewSession(conversationID, FlowAssistant, StepAwaitingQuestion)
	if err := f.storage.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving assistant session: %w", err)
	}
	return []Reply{f.composer.Prompt("consult.prompt")}, nil
}

// Advance sends the question to the completion service and returns the
// answer plus the feedback menu. The session is cleared unconditionally so a
// service failure cannot leave the conversation stuck.
func (f *AssistantFlow) Advance(ctx context.Context, session *Session, question string) ([]Reply, error) {
	if session == nil || session.Flow != FlowAssistant {
		return nil, ErrNoActiveFlow
	}

	if err := f.storage.Delete(ctx, session.ConversationID); err != nil {
		f.log.Error("clearing assistant session", slog.String("conversation_id", session.ConversationID), sl.Err(err))
	}

	askCtx, cancel := context.WithTimeout(ctx, f.askTimeout)
	defer cancel()

	answer, err := f.assistant.Ask(askCtx, question)
	if err != nil {
		f.log.Error("assistant request failed", slog.String("conversation_id", session.ConversationID), sl.Err(err))
		return []Reply{f.composer.AssistantUnavailable()}, fmt.Errorf("%w: %s", ErrAssistantUnavailable, err)
	}

	return []Reply{
		{Text: answer},
		f.composer.Feedback(),
	}, nil
}
