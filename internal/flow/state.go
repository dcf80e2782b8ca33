// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"errors"
)

// =============================================================================
// STATE
// =============================================================================

// Phase is the position of a controller in its state machine.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Failed
)

// String returns a string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "IDLE"
	case Submitting:
		return "SUBMITTING"
	case Succeeded:
		return "SUCCEEDED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// State is a controller's current phase plus the inline message for it.
type State struct {
	Phase Phase
	// Message is the inline text: the success message or the failure reason.
	Message string
	// Err is set in the Failed phase.
	Err error
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrValidation matches every local validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrThrottled is returned when submissions arrive faster than allowed.
	ErrThrottled = errors.New("too many attempts")
	// ErrAbandoned is returned when the backend call ended without a result.
	ErrAbandoned = errors.New("request abandoned")
)

// MsgThrottled is shown inline when the submit throttle kicks in.
const MsgThrottled = "Too many attempts. Please wait a moment and try again."

// MsgAbandoned is shown when a call ended without an answer.
const MsgAbandoned = "The request could not be completed. Please try again."

// ValidationError is a local form error. It never reaches the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// =============================================================================
// NOTIFICATION SINK
// =============================================================================

// NoticeKind is the flavor of a notification.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// String returns a string representation of the NoticeKind.
func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "success"
	}
	return "error"
}

// Notifier shows a notification. Implementations must return promptly and
// must not report failures back to the flow.
type Notifier interface {
	Notify(kind NoticeKind, title, description string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NoticeKind, title, description string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(kind NoticeKind, title, description string) {
	f(kind, title, description)
}

type nopNotifier struct{}

func (nopNotifier) Notify(NoticeKind, string, string) {}
