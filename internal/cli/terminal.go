// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - terminal detection for choosing between the TUI and
// plain line output.
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DefaultTerminalWidth is the fallback width when detection fails.
const DefaultTerminalWidth = 80

// GetTerminalWidth returns the current terminal width.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
// NO_COLOR wins over FORCE_COLOR, which wins over TTY detection.
// See https://no-color.org/.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		switch {
		case os.Getenv("NO_COLOR") != "":
			colorsEnabled = false
		case os.Getenv("FORCE_COLOR") != "":
			colorsEnabled = true
		default:
			colorsEnabled = IsStdoutTTY()
		}
	})
	return colorsEnabled
}

// GetColorProfile returns Ascii when colors are off, otherwise whatever
// termenv detects.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// INTERACTIVE INPUT
// =============================================================================

// RequiresTTY returns an error if stdin is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError is returned when an operation requires a TTY but none is available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "stdin is not a terminal; cannot " + e.Operation + " interactively"
	}
	return "stdin is not a terminal; interactive input not available"
}
