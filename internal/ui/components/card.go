// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// CardWidth is the default width of the form card.
const CardWidth = 48

// Card is the container every auth form is drawn in.
type Card struct {
	Title       string
	Description string
	Body        []string
	Footer      string
	Width       int
}

// Render draws the card.
func (c Card) Render(theme *styles.Theme) string {
	width := c.Width
	if width <= 0 {
		width = CardWidth
	}
	inner := width - 8

	parts := []string{theme.CardTitle.Width(inner).Render(c.Title)}
	if c.Description != "" {
		parts = append(parts, theme.CardDescription.Width(inner).Render(c.Description))
	}
	parts = append(parts, "")
	for _, b := range c.Body {
		if b == "" {
			continue
		}
		parts = append(parts, b)
	}
	if c.Footer != "" {
		parts = append(parts, theme.CardFooter.Width(inner).Render(c.Footer))
	}

	return theme.Card.Width(width - 2).Render(strings.Join(parts, "\n"))
}

// Place centers content in a width x height area.
func Place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
