package chat

import (
	"context"
	"log/slog"
	"strings"

	"MedPet/internal/lib/sl"
)

// MenuDispatcher maps menu option identifiers to actions. Dispatch is total:
// unknown options are a recoverable user-input case that re-presents the
// menu, never an error.
type MenuDispatcher struct {
	storage     SessionStorage
	composer    *Composer
	appointment *AppointmentFlow
	assistant   *AssistantFlow
	log         *slog.Logger
}

func NewMenuDispatcher(storage SessionStorage, composer *Composer, appointment *AppointmentFlow, assistant *AssistantFlow, log *slog.Logger) *MenuDispatcher {
	return &MenuDispatcher{
		storage:     storage,
		composer:    composer,
		appointment: appointment,
		assistant:   assistant,
		log:         log.With(sl.Module("menu")),
	}
}

// resolve maps typed text onto an option id: exact id, button title, or the
// option's position number in the main menu.
func (d *MenuDispatcher) resolve(option string) string {
	option = strings.ToLower(strings.TrimSpace(option))
	switch option {
	case OptionSchedule, OptionConsult, OptionLocation, OptionBackToMenu, OptionAskAgain, OptionEmergency:
		return option
	}

	menu := d.composer.MainMenu()
	if id := MatchTitleToOption(option, menu.Buttons); id != "" {
		return id
	}
	if id := MatchNumberToOption(option, menu.Buttons); id != "" {
		return id
	}
	return option
}

func (d *MenuDispatcher) Dispatch(ctx context.Context, conversationID, option string) ([]Reply, error) {
	switch d.resolve(option) {
	case OptionSchedule:
		return d.appointment.Start(ctx, conversationID)

	case OptionConsult, OptionAskAgain:
		return d.assistant.Start(ctx, conversationID)

	case OptionLocation:
		d.abandonFlow(ctx, conversationID)
		return []Reply{d.composer.ClinicLocation()}, nil

	case OptionBackToMenu:
		d.abandonFlow(ctx, conversationID)
		return []Reply{d.composer.MainMenu()}, nil

	case OptionEmergency:
		d.abandonFlow(ctx, conversationID)
		return d.composer.EmergencyContact(), nil

	default:
		return []Reply{d.composer.NotUnderstood(), d.composer.MainMenu()}, nil
	}
}

// abandonFlow drops any in-progress flow when the user picks a non-flow
// menu option.
func (d *MenuDispatcher) abandonFlow(ctx context.Context, conversationID string) {
	if err := d.storage.Delete(ctx, conversationID); err != nil {
		d.log.Error("abandoning flow", slog.String("conversation_id", conversationID), sl.Err(err))
	}
}
