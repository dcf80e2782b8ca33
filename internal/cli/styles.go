// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - shared styling for the line-mode commands.
//
// Colors come from the TUI palette so both frontends look alike. They are
// disabled for non-TTY output and when NO_COLOR is set.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authflow-tui/internal/ui/styles"
	"github.com/jeranaias/authflow-tui/internal/util"
)

// labelWidth is the column where values start after RenderLabel.
const labelWidth = 22

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Indigo).
			MarginBottom(1)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle is used for hints and secondary information
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)
)

// RenderSeparator renders a horizontal rule, 48 columns (or the terminal
// width, if narrower) unless given.
func RenderSeparator(width ...int) string {
	w := min(48, GetTerminalWidth())
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return SeparatorStyle.Render(strings.Repeat("-", w))
}

// RenderStatus renders a bracketed status tag.
func RenderStatus(ok bool) string {
	if ok {
		return SuccessStyle.Render(styles.ASCIIIndicators.Success)
	}
	return ErrorStyle.Render(styles.ASCIIIndicators.Error)
}

// RenderLabel renders a label padded to labelWidth columns.
func RenderLabel(label string) string {
	return LabelStyle.Render(util.PadRight(label, labelWidth))
}
