package chat

// EventKind is the inbound message type reported by the platform.
type EventKind string

const (
	EventText        EventKind = "text"
	EventInteractive EventKind = "interactive"
	EventImage       EventKind = "image"
	EventDocument    EventKind = "document"
	EventLocation    EventKind = "location"
	EventContacts    EventKind = "contacts"
)

// InboundEvent is one normalized webhook message. ConversationID is the
// remote party's address and keys all session state; EventID is the
// platform-assigned message id used for read receipts and de-duplication.
type InboundEvent struct {
	Kind           EventKind
	ConversationID string
	EventID        string

	Text     string           // text body, Kind == EventText
	OptionID string           // selected button id, Kind == EventInteractive
	Media    *InboundMedia    // Kind == EventImage / EventDocument
	Location *InboundLocation // Kind == EventLocation
}

type InboundMedia struct {
	MediaID string
	Caption string
}

type InboundLocation struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

// Profile carries optional sender info accompanying a webhook message.
type Profile struct {
	Name string
	WaID string
}

// DisplayName resolves the friendliest available name for greetings:
// profile name, then the platform id, then nothing.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.WaID
}
