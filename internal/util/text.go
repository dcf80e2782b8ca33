// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// TruncateWidth shortens s to at most maxWidth columns, ending in an
// ellipsis when anything was cut. Multi-byte characters are never split.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces to width columns.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

