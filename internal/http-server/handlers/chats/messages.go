package chats

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"MedPet/entity"
	"MedPet/internal/lib/api/response"
	"MedPet/internal/lib/sl"
)

type Core interface {
	GetChatMessages(conversationID string, limit, offset int) ([]entity.ChatMessage, error)
}

type messagesResponse struct {
	response.Response
	Messages []entity.ChatMessage `json:"messages"`
}

// Messages returns a conversation's transcript, newest first.
func Messages(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.chats")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("transcript archive not available")
			render.JSON(w, r, response.Error("Transcript archive not available"))
			return
		}

		conversationID := chi.URLParam(r, "conversationID")
		if conversationID == "" {
			logger.Error("no conversation id provided")
			render.JSON(w, r, response.Error("No conversation id provided"))
			return
		}

		limit := queryInt(r, "limit", 50)
		offset := queryInt(r, "offset", 0)

		messages, err := handler.GetChatMessages(conversationID, limit, offset)
		if err != nil {
			logger.Error("listing chat messages", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list messages"))
			return
		}

		render.JSON(w, r, messagesResponse{
			Response: response.OK(),
			Messages: messages,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
