package chat

import (
	"strconv"
	"strings"

	"MedPet/entity"
)

// Translator resolves catalog keys into localized text.
type Translator interface {
	T(key string, params map[string]string) string
}

// Menu option identifiers. Buttons carry these ids; typed text is matched
// against them as well.
const (
	OptionSchedule   = "schedule"
	OptionConsult    = "consult"
	OptionLocation   = "location"
	OptionBackToMenu = "back_to_menu"
	OptionAskAgain   = "ask_again"
	OptionEmergency  = "emergency"
)

// Demo assets sent for the media trigger token.
const (
	demoImageURL = "https://s3.amazonaws.com/gndx.dev/medpet-imagen.png"
)

// Clinic coordinates for the static location payload.
const (
	clinicLatitude  = 19.4326077
	clinicLongitude = -99.1332080
)

// Composer builds outbound message content from catalog lookups and
// interpolated values. Stateless; flow engines depend on semantic keys only.
type Composer struct {
	t            Translator
	businessName string
}

func NewComposer(t Translator, businessName string) *Composer {
	return &Composer{t: t, businessName: businessName}
}

// Welcome greets the sender by name, falling back to a plain greeting when
// no profile accompanied the event.
func (c *Composer) Welcome(name, replyTo string) Reply {
	greeting := c.t.T("welcome.greeting", map[string]string{
		"name":         strings.TrimSpace(name),
		"businessName": c.businessName,
	})
	help := c.t.T("welcome.help", nil)
	return Reply{Text: greeting + "\n" + help, ReplyTo: replyTo}
}

// MainMenu is the three-option menu presented after the welcome and after
// unrecognized selections.
func (c *Composer) MainMenu() Reply {
	return Reply{
		Text: c.t.T("menu.choose", nil),
		Buttons: []Button{
			{ID: OptionSchedule, Title: c.t.T("menu.schedule", nil)},
			{ID: OptionConsult, Title: c.t.T("menu.consult", nil)},
			{ID: OptionLocation, Title: c.t.T("menu.location", nil)},
		},
	}
}

func (c *Composer) Prompt(key string) Reply {
	return Reply{Text: c.t.T(key, nil)}
}

// Summary concatenates the five localized summary lines in fixed order.
func (c *Composer) Summary(appt entity.Appointment) Reply {
	lines := []string{
		c.t.T("appointment.summary.title", map[string]string{"name": appt.Name}),
		c.t.T("appointment.summary.name", map[string]string{"name": appt.Name}),
		c.t.T("appointment.summary.petName", map[string]string{"petName": appt.PetName}),
		c.t.T("appointment.summary.petType", map[string]string{"petType": appt.PetType}),
		c.t.T("appointment.summary.reason", map[string]string{"reason": appt.Reason}),
		c.t.T("appointment.summary.followUp", nil),
	}
	return Reply{Text: strings.Join(lines, "\n")}
}

func (c *Composer) EmptyInput() Reply {
	return Reply{Text: c.t.T("errors.emptyInput", nil)}
}

func (c *Composer) InputTooLong(max int) Reply {
	return Reply{Text: c.t.T("errors.inputTooLong", map[string]string{"max": strconv.Itoa(max)})}
}

func (c *Composer) AssistantUnavailable() Reply {
	return Reply{Text: c.t.T("errors.assistantUnavailable", nil)}
}

func (c *Composer) NotUnderstood() Reply {
	return Reply{Text: c.t.T("errors.userMenuOption", nil)}
}

// Feedback follows every assistant answer with the three follow-up options.
func (c *Composer) Feedback() Reply {
	return Reply{
		Text: c.t.T("consult.feedback", nil),
		Buttons: []Button{
			{ID: OptionBackToMenu, Title: c.t.T("consult.thankYou", nil)},
			{ID: OptionAskAgain, Title: c.t.T("consult.anotherQuestion", nil)},
			{ID: OptionEmergency, Title: c.t.T("consult.emergency", nil)},
		},
	}
}

func (c *Composer) ClinicLocation() Reply {
	return Reply{
		Location: &LocationPayload{
			Latitude:  clinicLatitude,
			Longitude: clinicLongitude,
			Name:      c.t.T("location.name", nil),
			Address:   c.t.T("location.address", nil),
		},
	}
}

// EmergencyContact returns the contact message followed by the card itself.
func (c *Composer) EmergencyContact() []Reply {
	return []Reply{
		{Text: c.t.T("contact.message", nil)},
		{Contact: &ContactCard{
			FormattedName: c.t.T("contact.details.name", nil),
			Company:       c.t.T("contact.details.company", nil),
			Department:    c.t.T("contact.details.department", nil),
			Title:         c.t.T("contact.details.title", nil),
			Phone:         c.t.T("contact.details.phone", nil),
			Email:         c.t.T("contact.details.email", nil),
			Website:       c.t.T("contact.details.website", nil),
			Street:        c.t.T("contact.details.street", nil),
			City:          c.t.T("contact.details.city", nil),
			State:         c.t.T("contact.details.state", nil),
			Zip:           c.t.T("contact.details.zip", nil),
			Country:       c.t.T("contact.details.country", nil),
		}},
	}
}

func (c *Composer) MediaDemo() Reply {
	return Reply{
		Media: &MediaPayload{
			Kind:    MediaImage,
			URL:     demoImageURL,
			Caption: c.t.T("media.image", nil),
		},
	}
}

// ReceivedAck acknowledges inbound media, location and contact events.
func (c *Composer) ReceivedAck(kind EventKind) Reply {
	switch kind {
	case EventImage:
		return Reply{Text: c.t.T("received.image", nil)}
	case EventDocument:
		return Reply{Text: c.t.T("received.document", nil)}
	case EventLocation:
		return Reply{Text: c.t.T("received.location", nil)}
	case EventContacts:
		return Reply{Text: c.t.T("received.contacts", nil)}
	}
	return Reply{Text: c.t.T("received.document", nil)}
}
