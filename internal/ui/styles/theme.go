// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile
	ASCII        bool

	Indicators IndicatorSet

	// ==========================================================================
	// HEADER AND FOOTER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	NavLink     lipgloss.Style
	NavActive   lipgloss.Style
	Footer      lipgloss.Style
	FooterLink  lipgloss.Style

	// ==========================================================================
	// FORM CARD
	// ==========================================================================

	Card            lipgloss.Style
	CardTitle       lipgloss.Style
	CardDescription lipgloss.Style
	CardFooter      lipgloss.Style

	// ==========================================================================
	// FIELDS AND BUTTONS
	// ==========================================================================

	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Field          lipgloss.Style
	FieldFocused   lipgloss.Style
	FieldInvalid   lipgloss.Style
	Placeholder    lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Link           lipgloss.Style
	LinkFocused    lipgloss.Style

	// ==========================================================================
	// INLINE MESSAGES
	// ==========================================================================

	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
	MutedText   lipgloss.Style
	Spinner     lipgloss.Style

	// ==========================================================================
	// TOASTS
	// ==========================================================================

	Toast            lipgloss.Style
	ToastTitle       lipgloss.Style
	ToastDescription lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; ascii forces
// ASCII-only indicators and borders.
func NewTheme(name string, ascii bool) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(name) {
	case "light":
		isDark = false
	case "dark":
		isDark = true
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
		ASCII:        ascii || profile == termenv.Ascii,
	}
	t.Indicators = UnicodeIndicators
	if t.ASCII {
		t.Indicators = ASCIIIndicators
	}
	t.initStyles()
	return t
}

// DefaultTheme returns an auto-detected theme.
func DefaultTheme() *Theme {
	return NewTheme("auto", false)
}

func (t *Theme) border() lipgloss.Border {
	if t.ASCII {
		return lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	return lipgloss.RoundedBorder()
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	b := t.border()

	// Header and footer
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.NavLink = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.NavActive = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true).
		Underline(true)
	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)
	t.FooterLink = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Card
	t.Card = lipgloss.NewStyle().
		BorderStyle(b).
		BorderForeground(Overlay).
		Padding(1, 3)
	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Align(lipgloss.Center)
	t.CardDescription = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Align(lipgloss.Center)
	t.CardFooter = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Align(lipgloss.Center).
		MarginTop(1)

	// Fields
	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.LabelFocused = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.Field = lipgloss.NewStyle().
		BorderStyle(b).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.FieldFocused = t.Field.
		BorderForeground(Indigo)
	t.FieldInvalid = t.Field.
		BorderForeground(Rose)
	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Buttons
	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(IndigoDeep).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.ButtonFocused = t.Button.
		Background(Indigo).
		Bold(true)
	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.Link = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)
	t.LinkFocused = t.Link.
		Bold(true).
		Foreground(Indigo)

	// Inline messages
	t.SuccessText = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.WarningText = lipgloss.NewStyle().
		Foreground(Amber)
	t.MutedText = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)

	// Toasts
	t.Toast = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(b).
		Padding(0, 2)
	t.ToastTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.ToastDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// RenderSuccess renders text with the success marker.
func (t *Theme) RenderSuccess(message string) string {
	return t.SuccessText.Render(t.Indicators.Success + " " + message)
}

// RenderError renders text with the error marker.
func (t *Theme) RenderError(message string) string {
	return t.ErrorText.Render(t.Indicators.Error + " " + message)
}

// RenderWarning renders text with the warning marker.
func (t *Theme) RenderWarning(message string) string {
	return t.WarningText.Render(t.Indicators.Warning + " " + message)
}
