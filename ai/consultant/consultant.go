package consultant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"MedPet/internal/lib/sl"
)

// defaultRolePrompt frames the completion model as a veterinary triage
// assistant. It is overridden by the configured role prompt when set.
const defaultRolePrompt = "You are a veterinary assistant for the MedPet " +
	"clinic. Answer pet health questions briefly and clearly, and recommend " +
	"visiting the clinic whenever the case could be serious. Never prescribe " +
	"medication dosages."

// Consultant answers one-shot pet health questions through the OpenAI
// chat completion API. It keeps no conversation history: every question
// is a fresh exchange.
type Consultant struct {
	client     *openai.Client
	model      string
	rolePrompt string
	log        *slog.Logger
}

func New(apiKey, model, rolePrompt string, log *slog.Logger) *Consultant {
	if rolePrompt == "" {
		rolePrompt = defaultRolePrompt
	}
	return &Consultant{
		client:     openai.NewClient(apiKey),
		model:      model,
		rolePrompt: rolePrompt,
		log:        log.With(sl.Module("consultant")),
	}
}

// Ask sends the question and returns the completion text.
func (c *Consultant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.rolePrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("chat completion returned empty answer")
	}

	c.log.Debug("question answered",
		slog.Int("question_len", len(question)),
		slog.Int("answer_len", len(answer)),
	)
	return answer, nil
}
