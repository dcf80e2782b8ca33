// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_ExplicitBackground(t *testing.T) {
	assert.True(t, NewTheme("dark", false).IsDark)
	assert.False(t, NewTheme("light", false).IsDark)
}

func TestNewTheme_ASCIIIndicators(t *testing.T) {
	theme := NewTheme("dark", true)
	assert.True(t, theme.ASCII)
	assert.Equal(t, ASCIIIndicators, theme.Indicators)

	out := theme.RenderError("Passwords do not match.")
	assert.True(t, strings.Contains(out, "[X]"))
	assert.Contains(t, out, "Passwords do not match.")
}

func TestNewTheme_BordersFollowASCII(t *testing.T) {
	theme := NewTheme("dark", true)
	card := theme.Card.Render("x")
	assert.Contains(t, card, "+")
	assert.NotContains(t, card, "╭")
}

func TestIndicatorSetsComplete(t *testing.T) {
	for _, set := range []IndicatorSet{ASCIIIndicators, UnicodeIndicators} {
		assert.NotEmpty(t, set.Success)
		assert.NotEmpty(t, set.Error)
		assert.NotEmpty(t, set.Warning)
		assert.NotEmpty(t, set.Info)
		assert.NotEmpty(t, set.Bullet)
		assert.NotEmpty(t, set.Check)
		assert.NotEmpty(t, set.Uncheck)
	}
}
