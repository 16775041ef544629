// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package santa

import "errors"

// Kind separates errors that are safe to show verbatim from internal faults.
type Kind int

const (
	// KindPublic errors carry a message meant for the end user: bad input,
	// authorization failures, invalid state transitions, not-found.
	KindPublic Kind = iota
	// KindPrivate errors are internal faults: storage failures, configuration
	// issues, invariant violations. Callers log the detail and show a generic
	// message.
	KindPrivate
)

// Error is the tagged error for everything the game core reports. Callers
// branch on Kind, never on message content.
type Error struct {
	Kind    Kind
	Message string // safe to show when Kind is KindPublic
	Err     error  // wrapped cause, private diagnostic
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Public builds a user-visible error.
func Public(message string) *Error {
	return &Error{Kind: KindPublic, Message: message}
}

// Private builds an internal error wrapping its cause.
func Private(message string, err error) *Error {
	return &Error{Kind: KindPrivate, Message: message, Err: err}
}

// IsPublic reports whether err is a public-kind Error.
func IsPublic(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindPublic
}

// Assignment engine precondition failures. Both are public: the owner can add
// participants or ideas and retry.
var (
	ErrInsufficientParticipants = Public("requires at least 2 participants")
	ErrInsufficientIdeas        = Public("requires at least 2 ideas per participant")
)
