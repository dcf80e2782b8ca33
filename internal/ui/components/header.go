// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
	"github.com/jeranaias/authflow-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Brand is the product name in the header.
const Brand = "authflow"

// NavItem is a header link.
type NavItem struct {
	Key   string
	Route route.ID
}

// AnonymousNav is shown while signed out.
var AnonymousNav = []NavItem{
	{Key: "F2", Route: route.Login},
	{Key: "F3", Route: route.Register},
}

// Header is the title bar.
type Header struct {
	Width  int
	Active route.ID
	User   string // empty when signed out
	theme  *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	left := h.theme.HeaderBrand.Render(Brand)

	var right []string
	if h.User != "" {
		right = append(right,
			h.theme.NavLink.Render(util.TruncateWidth(h.User, 24)),
			h.theme.NavLink.Render("[F5] Log out"))
	} else {
		for _, item := range AnonymousNav {
			label := "[" + item.Key + "] " + item.Route.Title()
			if item.Route == h.Active {
				right = append(right, h.theme.NavActive.Render(label))
			} else {
				right = append(right, h.theme.NavLink.Render(label))
			}
		}
	}
	nav := strings.Join(right, "  ")

	inner := width - 4
	gap := inner - lipgloss.Width(left) - lipgloss.Width(nav)
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + nav)
}

// =============================================================================
// FOOTER COMPONENT
// =============================================================================

// Footer is the bottom line with key hints.
type Footer struct {
	Width int
	Hints []string
	theme *styles.Theme
}

// NewFooter creates a footer.
func NewFooter(theme *styles.Theme) *Footer {
	return &Footer{Width: 80, theme: theme}
}

// View renders the footer.
func (f *Footer) View() string {
	line := strings.Join(f.Hints, "  "+f.theme.Indicators.Bullet+"  ")
	line = util.TruncateWidth(line, f.Width-4)
	return f.theme.Footer.Width(f.Width).Align(lipgloss.Center).Render(line)
}
