// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Indigo - Primary accent, buttons, focused fields
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// IndigoDeep - Darker indigo for button backgrounds
var IndigoDeep = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#4338CA"}

// Cyan - Brand color, links, info
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors, destructive actions
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, session timeout
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header, footer and toast backgrounds
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, descriptions
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// IndicatorSet holds the text markers drawn next to colored status text.
type IndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Bullet  string
	Check   string
	Uncheck string
}

// ASCIIIndicators work on every terminal.
var ASCIIIndicators = IndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Bullet:  "*",
	Check:   "[x]",
	Uncheck: "[ ]",
}

// UnicodeIndicators are used when the terminal can draw them.
var UnicodeIndicators = IndicatorSet{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠",
	Info:    "ℹ",
	Bullet:  "•",
	Check:   "☑",
	Uncheck: "☐",
}
