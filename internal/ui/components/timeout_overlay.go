// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// =============================================================================
// SESSION TIMEOUT OVERLAY
// =============================================================================

// TimeoutOverlay warns that an idle session is about to close.
type TimeoutOverlay struct {
	visible   bool
	remaining time.Duration
	width     int
	height    int
	theme     *styles.Theme
}

// NewTimeoutOverlay creates a hidden overlay.
func NewTimeoutOverlay(theme *styles.Theme) TimeoutOverlay {
	return TimeoutOverlay{theme: theme}
}

// SetSize sets the overlay dimensions.
func (o *TimeoutOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Show displays the overlay with the given time remaining.
func (o *TimeoutOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.remaining = remaining
}

// Hide hides the overlay.
func (o *TimeoutOverlay) Hide() {
	o.visible = false
}

// IsVisible returns whether the overlay is currently visible.
func (o *TimeoutOverlay) IsVisible() bool {
	return o.visible
}

// View renders the warning box centered in the overlay area.
func (o TimeoutOverlay) View() string {
	if !o.visible {
		return ""
	}

	title := o.theme.WarningText.Bold(true).Render(o.theme.Indicators.Warning + " Session Timeout Warning")
	body := lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(
		"Your session will end in " + o.theme.WarningText.Render(session.FormatDuration(o.remaining)) + ".")
	hint := o.theme.MutedText.Italic(true).Render("Press any key to stay signed in")

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", hint))

	return Place(o.width, o.height, box)
}
