package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"MedPet/bot/chat"
	"MedPet/internal/lib/sl"
)

const graphAPIURL = "https://graph.facebook.com/v21.0"

// Router consumes normalized inbound events.
type Router interface {
	Route(ctx context.Context, ev chat.InboundEvent, profile *chat.Profile) error
}

// WhatsAppBot handles WhatsApp messaging via the Graph API: it parses the
// inbound webhook into normalized events and implements the outbound
// chat.Gateway actions.
type WhatsAppBot struct {
	log           *slog.Logger
	accessToken   string
	verifyToken   string
	appSecret     string
	phoneNumberID string
	router        Router
	client        *http.Client
}

// NewWhatsAppBot creates a new WhatsApp bot instance.
func NewWhatsAppBot(accessToken, verifyToken, appSecret, phoneNumberID string, log *slog.Logger) *WhatsAppBot {
	return &WhatsAppBot{
		log:           log.With(sl.Module("whatsappbot")),
		accessToken:   accessToken,
		verifyToken:   verifyToken,
		appSecret:     appSecret,
		phoneNumberID: phoneNumberID,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// SetRouter sets the conversation router invoked for each inbound message.
func (b *WhatsAppBot) SetRouter(router Router) {
	b.router = router
}

// WebhookPayload represents the incoming webhook payload from WhatsApp.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Metadata         struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []webhookMessage `json:"messages"`
			} `json:"value"`
			Field string `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

type webhookMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Interactive *struct {
		Type        string `json:"type"`
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply,omitempty"`
	} `json:"interactive,omitempty"`
	Image    *webhookMedia `json:"image,omitempty"`
	Document *webhookMedia `json:"document,omitempty"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name,omitempty"`
		Address   string  `json:"address,omitempty"`
	} `json:"location,omitempty"`
}

type webhookMedia struct {
	ID      string `json:"id"`
	Caption string `json:"caption,omitempty"`
}

// HandleWebhookVerification handles the GET request for webhook verification.
func (b *WhatsAppBot) HandleWebhookVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == b.verifyToken {
		b.log.Info("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	b.log.Warn("webhook verification failed",
		slog.String("mode", mode),
		slog.Bool("token_match", token == b.verifyToken),
	)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// HandleWebhook handles incoming webhook POST requests. The payload is
// acknowledged with 200 before processing so the platform does not retry
// while a flow is running (ack-then-process).
func (b *WhatsAppBot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.log.Error("failed to read request body", sl.Err(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if b.appSecret != "" {
		signature := r.Header.Get("X-Hub-Signature-256")
		if !b.verifySignature(body, signature) {
			b.log.Warn("invalid webhook signature")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		b.log.Error("failed to parse webhook payload", sl.Err(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)

	go b.processPayload(payload)
}

// processPayload routes every message in the payload.
func (b *WhatsAppBot) processPayload(payload WebhookPayload) {
	if payload.Object != "whatsapp_business_account" {
		return
	}
	if b.router == nil {
		b.log.Error("no router configured, dropping payload")
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}

			var profile *chat.Profile
			if len(change.Value.Contacts) > 0 {
				profile = &chat.Profile{
					Name: change.Value.Contacts[0].Profile.Name,
					WaID: change.Value.Contacts[0].WaID,
				}
			}

			for _, message := range change.Value.Messages {
				ev := normalizeMessage(message)
				err := b.router.Route(context.Background(), ev, profile)
				switch {
				case err == nil:
				case errors.Is(err, chat.ErrDuplicateEvent):
					b.log.Debug("duplicate event dropped", slog.String("event_id", ev.EventID))
				default:
					b.log.Error("routing message",
						slog.String("event_id", ev.EventID),
						slog.String("from", ev.ConversationID),
						sl.Err(err),
					)
				}
			}
		}
	}
}

// normalizeMessage maps one raw webhook message onto the router's event
// union. Unknown types pass through so the router can reject them after the
// read receipt.
func normalizeMessage(m webhookMessage) chat.InboundEvent {
	ev := chat.InboundEvent{
		Kind:           chat.EventKind(m.Type),
		ConversationID: m.From,
		EventID:        m.ID,
	}

	switch m.Type {
	case "text":
		if m.Text != nil {
			ev.Text = m.Text.Body
		}
	case "interactive":
		if m.Interactive != nil && m.Interactive.ButtonReply != nil {
			ev.OptionID = m.Interactive.ButtonReply.ID
		}
	case "image":
		if m.Image != nil {
			ev.Media = &chat.InboundMedia{MediaID: m.Image.ID, Caption: m.Image.Caption}
		}
	case "document":
		if m.Document != nil {
			ev.Media = &chat.InboundMedia{MediaID: m.Document.ID, Caption: m.Document.Caption}
		}
	case "location":
		if m.Location != nil {
			ev.Location = &chat.InboundLocation{
				Latitude:  m.Location.Latitude,
				Longitude: m.Location.Longitude,
				Name:      m.Location.Name,
				Address:   m.Location.Address,
			}
		}
	}

	return ev
}

// verifySignature verifies the X-Hub-Signature-256 header.
func (b *WhatsAppBot) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	// Signature format: "sha256=<hex_signature>"
	if len(signature) < 8 || signature[:7] != "sha256=" {
		return false
	}

	expectedSig := signature[7:]
	mac := hmac.New(sha256.New, []byte(b.appSecret))
	mac.Write(body)
	actualSig := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expectedSig), []byte(actualSig))
}
