package chat

import "errors"

var (
	// ErrMalformedEvent means a required event field is missing. The event
	// produces no side effects at all, not even a read receipt.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrUnsupportedMessageType means the event kind is recognized by the
	// platform but not handled. The event is still marked read.
	ErrUnsupportedMessageType = errors.New("unsupported message type")

	// ErrNoActiveFlow means a flow engine was invoked for a conversation
	// without matching session state.
	ErrNoActiveFlow = errors.New("no active flow")

	// ErrCorruptFlowState means session bookkeeping is inconsistent. The
	// session entry is cleared defensively.
	ErrCorruptFlowState = errors.New("corrupt flow state")

	// ErrEmptyInput and ErrInputTooLong are user-input validation failures
	// inside a flow. The flow state is preserved and a corrective message
	// is sent.
	ErrEmptyInput   = errors.New("empty input")
	ErrInputTooLong = errors.New("input too long")

	// ErrAssistantUnavailable means the completion service failed. The flow
	// state is cleared regardless so the conversation is not stuck.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrDuplicateEvent means the platform redelivered an event id that was
	// already processed inside the de-duplication window.
	ErrDuplicateEvent = errors.New("duplicate event")
)

// IsRecoverable reports whether the error is a user-input failure that the
// router resolves by sending a corrective message instead of propagating.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInputTooLong) ||
		errors.Is(err, ErrAssistantUnavailable)
}
