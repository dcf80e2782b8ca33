// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - error types, display and exit codes for the CLI.
//
// Commands always return errors and let main decide how to show them.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/config"
	"github.com/jeranaias/authflow-tui/internal/flow"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	// ExitUsageError indicates invalid arguments or form input
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid configuration
	ExitConfigError = 3
	// ExitAuthError indicates the backend rejected the request
	ExitAuthError = 4
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
	// ExitInterrupted indicates the user aborted a prompt
	ExitInterrupted = 130
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "login", "config")
	Action  string // Action being performed (e.g., "set"), may be empty
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	name := e.Command
	if e.Action != "" {
		name += " " + e.Action
	}
	if e.Err != nil && e.Err.Error() != e.Reason {
		return fmt.Sprintf("%s failed: %s: %v", name, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", name, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// reportedError marks an error the user has already seen as a notification.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps err so DisplayError does not print it a second time.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w unless it was already shown.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var seen *reportedError
	if errors.As(err, &seen) {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())

	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		fmt.Fprintln(w, DimStyle.Render("Run 'authflow config path' to locate the file."))
	}
}

// GetExitCode determines the exit code for err.
func GetExitCode(err error) int {
	var (
		tty   *TTYRequiredError
		verrs config.ValidateErrors
		fail  *auth.Failure
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
		return ExitInterrupted
	case errors.Is(err, flow.ErrValidation), errors.As(err, &tty):
		return ExitUsageError
	case errors.As(err, &verrs):
		return ExitConfigError
	case errors.Is(err, auth.ErrNetwork), errors.Is(err, auth.ErrProviderUnavailable):
		return ExitNetworkError
	case errors.As(err, &fail):
		return ExitAuthError
	default:
		return ExitGeneralError
	}
}
