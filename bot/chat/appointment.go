package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"MedPet/entity"
	"MedPet/internal/lib/sl"
)

// AppointmentRecorder hands a completed appointment off to an external sink
// (spreadsheet, archive, notifier).
type AppointmentRecorder interface {
	Record(ctx context.Context, appt entity.Appointment) error
}

// AppointmentFlow is the multi-step scheduling wizard. Input is collected in
// fixed order: name, pet name, pet type, reason.
type AppointmentFlow struct {
	storage       SessionStorage
	composer      *Composer
	recorders     []AppointmentRecorder
	validate      *validator.Validate
	maxInput      int
	recordTimeout time.Duration
	log           *slog.Logger
}

func NewAppointmentFlow(storage SessionStorage, composer *Composer, maxInput int, log *slog.Logger) *AppointmentFlow {
	return &AppointmentFlow{
		storage:       storage,
		composer:      composer,
		validate:      validator.New(),
		maxInput:      maxInput,
		recordTimeout: 15 * time.Second,
		log:           log.With(sl.Module("flow.appointment")),
	}
}

// AddRecorder registers an external sink for completed appointments.
func (f *AppointmentFlow) AddRecorder(r AppointmentRecorder) {
	if r != nil {
		f.recorders = append(f.recorders, r)
	}
}

// Start creates a fresh session at the first step, discarding any previous
// flow for the conversation, and returns the opening prompt.
func (f *AppointmentFlow) Start(ctx context.Context, conversationID string) ([]Reply, error) {
	session := NewSession(conversationID, FlowAppointment, StepAwaitingName)
	if err := f.storage.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving appointment session: %w", err)
	}
	return []Reply{f.composer.Prompt("appointment.enterName")}, nil
}

// Advance stores the input for the current step and moves to the next one.
// Validation failures leave the step unchanged and return a corrective reply
// together with the matching sentinel error.
func (f *AppointmentFlow) Advance(ctx context.Context, session *Session, text string) ([]Reply, error) {
	if session == nil || session.Flow != FlowAppointment {
		return nil, ErrNoActiveFlow
	}

	input := strings.TrimSpace(text)
	if input == "" {
		return []Reply{f.composer.EmptyInput()}, ErrEmptyInput
	}
	if len([]rune(input)) > f.maxInput {
		return []Reply{f.composer.InputTooLong(f.maxInput)}, ErrInputTooLong
	}

	switch session.Step {
	case StepAwaitingName:
		session.Name = input
		session.Step = StepAwaitingPetName
		if err := f.storage.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving appointment session: %w", err)
		}
		return []Reply{f.composer.Prompt("appointment.petName")}, nil

	case StepAwaitingPetName:
		session.PetName = input
		session.Step = StepAwaitingPetType
		if err := f.storage.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving appointment session: %w", err)
		}
		return []Reply{f.composer.Prompt("appointment.petType")}, nil

	case StepAwaitingPetType:
		session.PetType = input
		session.Step = StepAwaitingReason
		if err := f.storage.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving appointment session: %w", err)
		}
		return []Reply{f.composer.Prompt("appointment.reason")}, nil

	case StepAwaitingReason:
		session.Reason = input
		return f.complete(ctx, session)

	default:
		// Unknown step values mean the stored state is inconsistent. Clear
		// it rather than loop the user forever.
		if err := f.storage.Delete(ctx, session.ConversationID); err != nil {
			f.log.Error("clearing corrupt session", slog.String("conversation_id", session.ConversationID), sl.Err(err))
		}
		return nil, fmt.Errorf("%w: step %q", ErrCorruptFlowState, session.Step)
	}
}

// complete is the terminal transition: build the immutable record, hand it
// to the recorders, return the summary and drop the session.
func (f *AppointmentFlow) complete(ctx context.Context, session *Session) ([]Reply, error) {
	appt := entity.Appointment{
		UUID:           uuid.NewString(),
		ConversationID: session.ConversationID,
		Name:           session.Name,
		PetName:        session.PetName,
		PetType:        session.PetType,
		Reason:         session.Reason,
		CompletedAt:    time.Now(),
	}

	if err := f.validate.Struct(appt); err != nil {
		f.log.Warn("appointment failed validation",
			slog.String("conversation_id", session.ConversationID),
			sl.Err(err),
		)
	}

	// Recording must never block or fail the user-visible summary.
	for _, recorder := range f.recorders {
		go f.record(recorder, appt)
	}

	if err := f.storage.Delete(ctx, session.ConversationID); err != nil {
		return nil, fmt.Errorf("deleting completed session: %w", err)
	}

	f.log.Info("appointment scheduled",
		slog.String("conversation_id", appt.ConversationID),
		slog.String("uuid", appt.UUID),
	)

	return []Reply{f.composer.Summary(appt)}, nil
}

func (f *AppointmentFlow) record(recorder AppointmentRecorder, appt entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), f.recordTimeout)
	defer cancel()

	if err := recorder.Record(ctx, appt); err != nil {
		f.log.Error("recording appointment",
			slog.String("conversation_id", appt.ConversationID),
			slog.String("uuid", appt.UUID),
			sl.Err(err),
		)
	}
}
