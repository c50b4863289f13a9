package whatsapp

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MedPet/bot/chat"
)

type routedEvent struct {
	ev      chat.InboundEvent
	profile *chat.Profile
}

// channelRouter hands routed events back to the test goroutine, since the
// webhook handler processes payloads asynchronously after the 200 ack.
type channelRouter struct {
	events chan routedEvent
}

func newChannelRouter() *channelRouter {
	return &channelRouter{events: make(chan routedEvent, 8)}
}

func (r *channelRouter) Route(_ context.Context, ev chat.InboundEvent, profile *chat.Profile) error {
	r.events <- routedEvent{ev: ev, profile: profile}
	return nil
}

func (r *channelRouter) next(t *testing.T) routedEvent {
	t.Helper()
	select {
	case e := <-r.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event was routed")
		return routedEvent{}
	}
}

func newTestBot(appSecret string) (*WhatsAppBot, *channelRouter) {
	bot := NewWhatsAppBot("token", "verify-me", appSecret, "12345", slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := newChannelRouter()
	bot.SetRouter(router)
	return bot, router
}

const textPayloadJSON = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "entry-1",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"contacts": [{"profile": {"name": "Ana"}, "wa_id": "5215551234"}],
				"messages": [{
					"from": "5215551234",
					"id": "wamid.abc",
					"timestamp": "1700000000",
					"type": "text",
					"text": {"body": "hello"}
				}]
			}
		}]
	}]
}`

func TestWebhookVerification(t *testing.T) {
	bot, _ := newTestBot("")

	r := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12321", nil)
	w := httptest.NewRecorder()
	bot.HandleWebhookVerification(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12321", w.Body.String())
}

func TestWebhookVerificationRejectsBadToken(t *testing.T) {
	bot, _ := newTestBot("")

	r := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12321", nil)
	w := httptest.NewRecorder()
	bot.HandleWebhookVerification(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookRoutesTextMessage(t *testing.T) {
	bot, router := newTestBot("")

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(textPayloadJSON))
	w := httptest.NewRecorder()
	bot.HandleWebhook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	routed := router.next(t)
	assert.Equal(t, chat.EventText, routed.ev.Kind)
	assert.Equal(t, "5215551234", routed.ev.ConversationID)
	assert.Equal(t, "wamid.abc", routed.ev.EventID)
	assert.Equal(t, "hello", routed.ev.Text)
	require.NotNil(t, routed.profile)
	assert.Equal(t, "Ana", routed.profile.Name)
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	bot, router := newTestBot("")

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	bot.HandleWebhook(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, router.events)
}

func TestWebhookIgnoresOtherObjects(t *testing.T) {
	bot, router := newTestBot("")

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{"object": "instagram", "entry": []}`))
	w := httptest.NewRecorder()
	bot.HandleWebhook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	select {
	case <-router.events:
		t.Fatal("unexpected event routed")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookSignature(t *testing.T) {
	bot, router := newTestBot("app-secret")

	body := []byte(textPayloadJSON)
	mac := hmac.New(sha256.New, []byte("app-secret"))
	mac.Write(body)
	signature := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBuffer(body))
	r.Header.Set("X-Hub-Signature-256", signature)
	w := httptest.NewRecorder()
	bot.HandleWebhook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	router.next(t)
}

func TestWebhookSignatureRejectsTampering(t *testing.T) {
	bot, router := newTestBot("app-secret")

	for _, signature := range []string{"", "sha256=deadbeef", "md5=abc"} {
		r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(textPayloadJSON))
		if signature != "" {
			r.Header.Set("X-Hub-Signature-256", signature)
		}
		w := httptest.NewRecorder()
		bot.HandleWebhook(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code, "signature %q", signature)
	}
	assert.Empty(t, router.events)
}

func TestNormalizeMessage(t *testing.T) {
	interactive := webhookMessage{
		From: "user1",
		ID:   "wamid.1",
		Type: "interactive",
		Interactive: &struct {
			Type        string `json:"type"`
			ButtonReply *struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"button_reply,omitempty"`
		}{
			Type: "button_reply",
			ButtonReply: &struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			}{ID: "schedule", Title: "Schedule"},
		},
	}

	ev := normalizeMessage(interactive)
	assert.Equal(t, chat.EventInteractive, ev.Kind)
	assert.Equal(t, "schedule", ev.OptionID)

	image := webhookMessage{
		From:  "user1",
		ID:    "wamid.2",
		Type:  "image",
		Image: &webhookMedia{ID: "media-9", Caption: "my cat"},
	}
	ev = normalizeMessage(image)
	assert.Equal(t, chat.EventImage, ev.Kind)
	require.NotNil(t, ev.Media)
	assert.Equal(t, "media-9", ev.Media.MediaID)
	assert.Equal(t, "my cat", ev.Media.Caption)

	sticker := webhookMessage{From: "user1", ID: "wamid.3", Type: "sticker"}
	ev = normalizeMessage(sticker)
	assert.Equal(t, chat.EventKind("sticker"), ev.Kind)
	assert.Equal(t, "wamid.3", ev.EventID)
}
