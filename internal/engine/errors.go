package engine

import (
	"errors"
	"fmt"
)

// Error is returned by Dispatch for an event that cannot occur through the
// touch surface: a picker event with no picker open, an option the picker
// never offered, a completion acknowledgment with no completion pending.
//
// Guard conditions (empty order, missing cooking term, wrong secret) are not
// errors; they come back as Notice or SecretRejected effects.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Event is the kind of the offending event.
	Event string

	// State is the engine state the event arrived in.
	State State
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeUnexpectedEvent indicates an event that makes no sense in the
	// current state or protocol.
	ErrCodeUnexpectedEvent ErrorCode = "UNEXPECTED_EVENT"

	// ErrCodeUnknownOption indicates an accompaniment or cooking term the
	// open picker does not offer.
	ErrCodeUnknownOption ErrorCode = "UNKNOWN_OPTION"

	// ErrCodeUnknownEvent indicates a nil or foreign Event value.
	ErrCodeUnknownEvent ErrorCode = "UNKNOWN_EVENT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("%s: %s (event=%s, state=%s)", e.Code, e.Message, e.Event, e.State)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnexpected reports whether err is an engine error with
// ErrCodeUnexpectedEvent. Uses errors.As to handle wrapped errors.
func IsUnexpected(err error) bool {
	return hasCode(err, ErrCodeUnexpectedEvent)
}

// IsUnknownOption reports whether err is an engine error with
// ErrCodeUnknownOption.
func IsUnknownOption(err error) bool {
	return hasCode(err, ErrCodeUnknownOption)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func unexpected(ev Event, state State, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnexpectedEvent,
		Message: fmt.Sprintf(format, args...),
		Event:   ev.Kind(),
		State:   state,
	}
}

func unknownOption(ev Event, state State, option string) *Error {
	return &Error{
		Code:    ErrCodeUnknownOption,
		Message: fmt.Sprintf("option %q is not offered", option),
		Event:   ev.Kind(),
		State:   state,
	}
}
