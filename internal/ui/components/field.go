// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// =============================================================================
// FIELD COMPONENT - Labelled text input
// =============================================================================

// Field is a labelled single-line input.
type Field struct {
	Label string

	input    textinput.Model
	secret   bool
	revealed bool
	errMsg   string
	width    int
	theme    *styles.Theme
}

// NewField creates a plain text field.
func NewField(theme *styles.Theme, label, placeholder string) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.PlaceholderStyle = theme.Placeholder
	ti.Cursor.Style = theme.LabelFocused

	f := &Field{
		Label: label,
		input: ti,
		width: 36,
		theme: theme,
	}
	f.SetWidth(f.width)
	return f
}

// NewPasswordField creates a field whose value is masked.
func NewPasswordField(theme *styles.Theme, label, placeholder string) *Field {
	f := NewField(theme, label, placeholder)
	f.secret = true
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

// Value returns the current text.
func (f *Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(s string) {
	f.input.SetValue(s)
}

// SetWidth sets the width of the input box in columns.
func (f *Field) SetWidth(w int) {
	if w < 12 {
		w = 12
	}
	f.width = w
	// Border and padding take four columns.
	f.input.Width = w - 4
}

// Focus focuses the field.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// SetRevealed shows or hides the value of a password field.
func (f *Field) SetRevealed(v bool) {
	if !f.secret {
		return
	}
	f.revealed = v
	if v {
		f.input.EchoMode = textinput.EchoNormal
	} else {
		f.input.EchoMode = textinput.EchoPassword
	}
}

// Revealed reports whether a password field shows its value.
func (f *Field) Revealed() bool {
	return f.revealed
}

// SetError sets the message drawn under the field. Empty clears it.
func (f *Field) SetError(msg string) {
	f.errMsg = msg
}

// Update forwards key input. It reports whether the value changed.
func (f *Field) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, f.input.Value() != before
}

// View renders the label, the input box and the error line.
func (f *Field) View() string {
	label := f.theme.Label.Render(f.Label)
	box := f.theme.Field
	if f.input.Focused() {
		label = f.theme.LabelFocused.Render(f.Label)
		box = f.theme.FieldFocused
	}
	if f.errMsg != "" {
		box = f.theme.FieldInvalid
	}

	out := label + "\n" + box.Width(f.width-2).Render(f.input.View())
	if f.errMsg != "" {
		out += "\n" + f.theme.ErrorText.Render(f.errMsg)
	}
	return out
}
