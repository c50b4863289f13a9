package chat

import (
	"context"
	"fmt"
)

// MediaKind enumerates outbound media types the platform accepts.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
	MediaDocument MediaKind = "document"
)

// Button is one interactive reply button.
type Button struct {
	ID    string
	Title string
}

const (
	maxButtons     = 3
	maxButtonTitle = 20
)

// ValidateButtons enforces the platform bounds: 1 to 3 buttons, each title
// at most 20 characters. Violations are caller errors.
func ValidateButtons(buttons []Button) error {
	if len(buttons) == 0 || len(buttons) > maxButtons {
		return fmt.Errorf("buttons: want 1..%d, got %d", maxButtons, len(buttons))
	}
	for _, b := range buttons {
		if len([]rune(b.Title)) > maxButtonTitle {
			return fmt.Errorf("button %q: title %q exceeds %d characters", b.ID, b.Title, maxButtonTitle)
		}
	}
	return nil
}

type MediaPayload struct {
	Kind     MediaKind
	URL      string
	Caption  string
	Filename string
}

type LocationPayload struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

// ContactCard is a structured contact payload for emergency contact replies.
type ContactCard struct {
	FormattedName string
	Company       string
	Department    string
	Title         string
	Phone         string
	Email         string
	Website       string
	Street        string
	City          string
	State         string
	Zip           string
	Country       string
}

// Reply is one composed outbound message. Exactly one of the payload
// variants is set; Text with Buttons becomes an interactive message.
type Reply struct {
	Text     string
	ReplyTo  string // message id to quote, text replies only
	Buttons  []Button
	Media    *MediaPayload
	Location *LocationPayload
	Contact  *ContactCard
}

// Gateway is the outbound messaging platform client.
type Gateway interface {
	SendText(ctx context.Context, to, body, replyTo string) error
	SendButtons(ctx context.Context, to, body string, buttons []Button) error
	SendMedia(ctx context.Context, to string, media MediaPayload) error
	SendLocation(ctx context.Context, to string, loc LocationPayload) error
	SendContact(ctx context.Context, to string, card ContactCard) error
	MarkRead(ctx context.Context, eventID string) error
}
