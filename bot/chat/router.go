package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"MedPet/entity"
	"MedPet/internal/lib/sl"
)

// mediaTriggerToken is the reserved text that triggers the media demo reply.
const mediaTriggerToken = "media"

// Router classifies each inbound event, consults the session store for an
// active flow and dispatches to the matching flow engine or the menu
// dispatcher. It is the only component with access to all the others.
//
// Processing is serialized per conversation id; events for different
// conversations run concurrently.
type Router struct {
	storage     SessionStorage
	gateway     Gateway
	composer    *Composer
	greetings   *GreetingClassifier
	menu        *MenuDispatcher
	appointment *AppointmentFlow
	assistant   *AssistantFlow
	window      *EventWindow
	locks       *ConversationLocks
	listener    MessageListener
	log         *slog.Logger
}

func NewRouter(
	storage SessionStorage,
	gateway Gateway,
	composer *Composer,
	greetings *GreetingClassifier,
	menu *MenuDispatcher,
	appointment *AppointmentFlow,
	assistant *AssistantFlow,
	dedupWindow time.Duration,
	log *slog.Logger,
) *Router {
	return &Router{
		storage:     storage,
		gateway:     gateway,
		composer:    composer,
		greetings:   greetings,
		menu:        menu,
		appointment: appointment,
		assistant:   assistant,
		window:      NewEventWindow(dedupWindow),
		locks:       NewConversationLocks(),
		log:         log.With(sl.Module("router")),
	}
}

// SetMessageListener sets the listener for the transcript feed (may be nil).
func (r *Router) SetMessageListener(l MessageListener) {
	r.listener = l
}

// SetGateway sets the outbound gateway. The gateway and the router reference
// each other, so one of them has to be attached after construction.
func (r *Router) SetGateway(g Gateway) {
	r.gateway = g
}

// Route processes one inbound event. All output happens through the gateway.
func (r *Router) Route(ctx context.Context, ev InboundEvent, profile *Profile) error {
	if err := validateEvent(ev); err != nil {
		return err
	}

	// The platform delivers at-least-once; flow transitions are not
	// idempotent, so redelivered ids are dropped before any side effect.
	if r.window.Observe(ev.EventID) {
		r.log.Debug("dropping redelivered event", slog.String("event_id", ev.EventID))
		return ErrDuplicateEvent
	}

	r.locks.Lock(ev.ConversationID)
	defer r.locks.Unlock(ev.ConversationID)

	r.notifyInbound(ev)

	switch ev.Kind {
	case EventText:
		return r.routeText(ctx, ev, profile)

	case EventInteractive:
		replies, err := r.menu.Dispatch(ctx, ev.ConversationID, ev.OptionID)
		r.send(ctx, ev.ConversationID, replies)
		r.markRead(ctx, ev.EventID)
		return err

	case EventImage, EventDocument, EventLocation, EventContacts:
		r.markRead(ctx, ev.EventID)
		r.send(ctx, ev.ConversationID, []Reply{r.composer.ReceivedAck(ev.Kind)})
		return nil

	default:
		r.markRead(ctx, ev.EventID)
		return fmt.Errorf("%w: %q", ErrUnsupportedMessageType, ev.Kind)
	}
}

// validateEvent rejects structurally broken events before any side effect.
func validateEvent(ev InboundEvent) error {
	switch {
	case ev.Kind == "":
		return fmt.Errorf("%w: missing type", ErrMalformedEvent)
	case ev.ConversationID == "":
		return fmt.Errorf("%w: missing conversation id", ErrMalformedEvent)
	case ev.EventID == "":
		return fmt.Errorf("%w: missing event id", ErrMalformedEvent)
	case ev.Kind == EventText && ev.Text == "":
		return fmt.Errorf("%w: text event without body", ErrMalformedEvent)
	case ev.Kind == EventInteractive && ev.OptionID == "":
		return fmt.Errorf("%w: interactive event without option id", ErrMalformedEvent)
	}
	return nil
}

// routeText runs the text precedence order: greeting, media demo trigger,
// active flow, menu selection. The read receipt is sent after the content
// branch, whether or not the branch succeeded.
func (r *Router) routeText(ctx context.Context, ev InboundEvent, profile *Profile) error {
	body := strings.ToLower(strings.TrimSpace(ev.Text))

	replies, err := r.textBranch(ctx, ev, profile, body)
	r.send(ctx, ev.ConversationID, replies)
	r.markRead(ctx, ev.EventID)

	if err != nil && IsRecoverable(err) {
		// The user already received a corrective message; nothing for the
		// caller to act on.
		r.log.Info("recovered user-input failure",
			slog.String("conversation_id", ev.ConversationID),
			sl.Err(err),
		)
		return nil
	}
	return err
}

func (r *Router) textBranch(ctx context.Context, ev InboundEvent, profile *Profile, body string) ([]Reply, error) {
	// Greeting takes priority over an active flow and leaves it untouched.
	if r.greetings.IsGreeting(body) {
		return []Reply{
			r.composer.Welcome(profile.DisplayName(), ev.EventID),
			r.composer.MainMenu(),
		}, nil
	}

	if body == mediaTriggerToken {
		return []Reply{r.composer.MediaDemo()}, nil
	}

	session, err := r.storage.Load(ctx, ev.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if session != nil {
		switch session.Flow {
		case FlowAppointment:
			return r.appointment.Advance(ctx, session, ev.Text)
		case FlowAssistant:
			return r.assistant.Advance(ctx, session, ev.Text)
		default:
			if derr := r.storage.Delete(ctx, ev.ConversationID); derr != nil {
				r.log.Error("clearing corrupt session", slog.String("conversation_id", ev.ConversationID), sl.Err(derr))
			}
			return nil, fmt.Errorf("%w: flow %q", ErrCorruptFlowState, session.Flow)
		}
	}

	// No active flow: typed text is treated as an attempted menu selection,
	// so typed option ids work the same as button taps.
	return r.menu.Dispatch(ctx, ev.ConversationID, body)
}

// send delivers composed replies in order. Delivery failures are logged and
// do not abort the remaining replies.
func (r *Router) send(ctx context.Context, to string, replies []Reply) {
	for _, reply := range replies {
		if err := r.deliver(ctx, to, reply); err != nil {
			r.log.Error("sending reply", slog.String("conversation_id", to), sl.Err(err))
			continue
		}
		r.notifyOutbound(to, reply)
	}
}

func (r *Router) deliver(ctx context.Context, to string, reply Reply) error {
	switch {
	case reply.Media != nil:
		return r.gateway.SendMedia(ctx, to, *reply.Media)
	case reply.Location != nil:
		return r.gateway.SendLocation(ctx, to, *reply.Location)
	case reply.Contact != nil:
		return r.gateway.SendContact(ctx, to, *reply.Contact)
	case len(reply.Buttons) > 0:
		if err := ValidateButtons(reply.Buttons); err != nil {
			return err
		}
		return r.gateway.SendButtons(ctx, to, reply.Text, reply.Buttons)
	default:
		return r.gateway.SendText(ctx, to, reply.Text, reply.ReplyTo)
	}
}

func (r *Router) markRead(ctx context.Context, eventID string) {
	if err := r.gateway.MarkRead(ctx, eventID); err != nil {
		r.log.Warn("marking event read", slog.String("event_id", eventID), sl.Err(err))
	}
}

func (r *Router) notifyInbound(ev InboundEvent) {
	if r.listener == nil {
		return
	}
	text := ev.Text
	switch ev.Kind {
	case EventInteractive:
		text = ev.OptionID
	case EventImage, EventDocument, EventLocation, EventContacts:
		text = "[" + string(ev.Kind) + "]"
	}
	r.listener.SaveAndBroadcastChatMessage(entity.ChatMessage{
		ConversationID: ev.ConversationID,
		Direction:      "incoming",
		Sender:         "user",
		Text:           text,
		CreatedAt:      time.Now(),
	})
}

func (r *Router) notifyOutbound(to string, reply Reply) {
	if r.listener == nil || reply.Text == "" {
		return
	}
	r.listener.SaveAndBroadcastChatMessage(entity.ChatMessage{
		ConversationID: to,
		Direction:      "outgoing",
		Sender:         "bot",
		Text:           reply.Text,
		CreatedAt:      time.Now(),
	})
}
