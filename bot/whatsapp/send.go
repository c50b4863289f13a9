package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"MedPet/bot/chat"
)

// sendRequest is the common envelope for every outbound Graph API message.
type sendRequest struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type,omitempty"`
	To               string `json:"to,omitempty"`
	Type             string `json:"type,omitempty"`

	Status    string `json:"status,omitempty"`
	MessageID string `json:"message_id,omitempty"`

	Text        *textPayload        `json:"text,omitempty"`
	Context     *contextPayload     `json:"context,omitempty"`
	Interactive *interactivePayload `json:"interactive,omitempty"`
	Image       *mediaPayload       `json:"image,omitempty"`
	Video       *mediaPayload       `json:"video,omitempty"`
	Audio       *mediaPayload       `json:"audio,omitempty"`
	Document    *mediaPayload       `json:"document,omitempty"`
	Location    *locationPayload    `json:"location,omitempty"`
	Contacts    []contactPayload    `json:"contacts,omitempty"`
}

type textPayload struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type contextPayload struct {
	MessageID string `json:"message_id"`
}

type interactivePayload struct {
	Type   string `json:"type"`
	Body   struct {
		Text string `json:"text"`
	} `json:"body"`
	Action struct {
		Buttons []interactiveButton `json:"buttons"`
	} `json:"action"`
}

type interactiveButton struct {
	Type  string `json:"type"`
	Reply struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"reply"`
}

type mediaPayload struct {
	Link     string `json:"link"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type contactPayload struct {
	Name struct {
		FormattedName string `json:"formatted_name"`
		FirstName     string `json:"first_name,omitempty"`
	} `json:"name"`
	Org *struct {
		Company    string `json:"company,omitempty"`
		Department string `json:"department,omitempty"`
		Title      string `json:"title,omitempty"`
	} `json:"org,omitempty"`
	Phones []struct {
		Phone string `json:"phone"`
		Type  string `json:"type,omitempty"`
	} `json:"phones,omitempty"`
	Emails []struct {
		Email string `json:"email"`
		Type  string `json:"type,omitempty"`
	} `json:"emails,omitempty"`
	URLs []struct {
		URL  string `json:"url"`
		Type string `json:"type,omitempty"`
	} `json:"urls,omitempty"`
	Addresses []struct {
		Street  string `json:"street,omitempty"`
		City    string `json:"city,omitempty"`
		State   string `json:"state,omitempty"`
		Zip     string `json:"zip,omitempty"`
		Country string `json:"country,omitempty"`
		Type    string `json:"type,omitempty"`
	} `json:"addresses,omitempty"`
}

// SendText sends a text message, optionally quoting the message it answers.
func (b *WhatsAppBot) SendText(ctx context.Context, to, body, replyTo string) error {
	req := sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             &textPayload{Body: body},
	}
	if replyTo != "" {
		req.Context = &contextPayload{MessageID: replyTo}
	}
	return b.post(ctx, req)
}

// SendButtons sends an interactive button message. Button bounds are
// enforced by the caller via chat.ValidateButtons.
func (b *WhatsAppBot) SendButtons(ctx context.Context, to, body string, buttons []chat.Button) error {
	if err := chat.ValidateButtons(buttons); err != nil {
		return err
	}

	interactive := &interactivePayload{Type: "button"}
	interactive.Body.Text = body
	for _, btn := range buttons {
		ib := interactiveButton{Type: "reply"}
		ib.Reply.ID = btn.ID
		ib.Reply.Title = btn.Title
		interactive.Action.Buttons = append(interactive.Action.Buttons, ib)
	}

	return b.post(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "interactive",
		Interactive:      interactive,
	})
}

func (b *WhatsAppBot) SendMedia(ctx context.Context, to string, media chat.MediaPayload) error {
	req := sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             string(media.Kind),
	}

	payload := &mediaPayload{Link: media.URL, Caption: media.Caption, Filename: media.Filename}
	switch media.Kind {
	case chat.MediaImage:
		req.Image = payload
	case chat.MediaVideo:
		req.Video = payload
	case chat.MediaAudio:
		payload.Caption = "" // audio does not support captions
		req.Audio = payload
	case chat.MediaDocument:
		req.Document = payload
	default:
		return fmt.Errorf("unsupported media kind %q", media.Kind)
	}

	return b.post(ctx, req)
}

func (b *WhatsAppBot) SendLocation(ctx context.Context, to string, loc chat.LocationPayload) error {
	return b.post(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "location",
		Location: &locationPayload{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Name:      loc.Name,
			Address:   loc.Address,
		},
	})
}

func (b *WhatsAppBot) SendContact(ctx context.Context, to string, card chat.ContactCard) error {
	contact := contactPayload{}
	contact.Name.FormattedName = card.FormattedName
	contact.Name.FirstName = card.FormattedName
	contact.Org = &struct {
		Company    string `json:"company,omitempty"`
		Department string `json:"department,omitempty"`
		Title      string `json:"title,omitempty"`
	}{Company: card.Company, Department: card.Department, Title: card.Title}

	if card.Phone != "" {
		contact.Phones = append(contact.Phones, struct {
			Phone string `json:"phone"`
			Type  string `json:"type,omitempty"`
		}{Phone: card.Phone, Type: "WORK"})
	}
	if card.Email != "" {
		contact.Emails = append(contact.Emails, struct {
			Email string `json:"email"`
			Type  string `json:"type,omitempty"`
		}{Email: card.Email, Type: "WORK"})
	}
	if card.Website != "" {
		contact.URLs = append(contact.URLs, struct {
			URL  string `json:"url"`
			Type string `json:"type,omitempty"`
		}{URL: card.Website, Type: "WORK"})
	}
	if card.Street != "" {
		contact.Addresses = append(contact.Addresses, struct {
			Street  string `json:"street,omitempty"`
			City    string `json:"city,omitempty"`
			State   string `json:"state,omitempty"`
			Zip     string `json:"zip,omitempty"`
			Country string `json:"country,omitempty"`
			Type    string `json:"type,omitempty"`
		}{
			Street:  card.Street,
			City:    card.City,
			State:   card.State,
			Zip:     card.Zip,
			Country: card.Country,
			Type:    "WORK",
		})
	}

	return b.post(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "contacts",
		Contacts:         []contactPayload{contact},
	})
}

// MarkRead sends a read receipt for the given inbound message id.
func (b *WhatsAppBot) MarkRead(ctx context.Context, eventID string) error {
	return b.post(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        eventID,
	})
}

func (b *WhatsAppBot) post(ctx context.Context, body sendRequest) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphAPIURL, b.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.accessToken)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	b.log.Debug("message sent", slog.String("to", body.To), slog.String("type", body.Type))
	return nil
}
