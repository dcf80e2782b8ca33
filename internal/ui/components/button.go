// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// Button is a focusable action.
type Button struct {
	Label        string
	PendingLabel string // shown instead of Label while Pending
	Focused      bool
	Disabled     bool
	Pending      bool
	Width        int
}

// Render draws the button.
func (b Button) Render(theme *styles.Theme) string {
	label := b.Label
	if b.Pending && b.PendingLabel != "" {
		label = b.PendingLabel
	}

	style := theme.Button
	switch {
	case b.Disabled || b.Pending:
		style = theme.ButtonDisabled
	case b.Focused:
		style = theme.ButtonFocused
	}
	if b.Width > 0 {
		style = style.Width(b.Width)
	}
	return style.Render(label)
}

// SocialButton returns the button for a sign-in provider.
func SocialButton(p auth.Provider, pending, focused, disabled bool) Button {
	return Button{
		Label:        "Continue with " + p.DisplayName(),
		PendingLabel: "Connecting to " + p.DisplayName() + "...",
		Pending:      pending,
		Focused:      focused,
		Disabled:     disabled,
	}
}

// Checkbox renders a labelled toggle.
func Checkbox(theme *styles.Theme, label string, checked, focused bool) string {
	box := theme.Indicators.Uncheck
	if checked {
		box = theme.Indicators.Check
	}
	if focused {
		return theme.LabelFocused.Render(box + " " + label)
	}
	return theme.Label.Render(box + " " + label)
}

// Link renders an inline navigation link.
func Link(theme *styles.Theme, label string, focused bool) string {
	if focused {
		return theme.LinkFocused.Render(label)
	}
	return theme.Link.Render(label)
}
