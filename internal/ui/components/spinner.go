// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is the indicator shown while a submission is in flight.
type Spinner struct {
	spinner  spinner.Model
	message  string
	isActive bool
	theme    *styles.Theme
}

// NewSpinner creates a spinner. ASCII themes get a line spinner.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	if theme.ASCII {
		s.Spinner = spinner.Spinner{
			Frames: []string{"|", "/", "-", "\\"},
			FPS:    time.Second / 10,
		}
	} else {
		s.Spinner = spinner.Dot
	}
	s.Style = theme.Spinner

	return Spinner{
		spinner: s,
		message: "Please wait",
		theme:   theme,
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner. It returns nil if it was already running.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner and its message.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}
	return s.spinner.View() + " " + s.theme.MutedText.Render(s.message+"...")
}
