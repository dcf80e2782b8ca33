// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/peterh/liner"
)

// Prompter reads one line of input per call.
type Prompter interface {
	Prompt(prompt string) (string, error)
	// PasswordPrompt reads without echoing.
	PasswordPrompt(prompt string) (string, error)
}

// LinePrompter reads from the terminal with line editing.
type LinePrompter struct {
	line *liner.State
}

// NewLinePrompter takes over the terminal until Close. Ctrl+C aborts the
// current prompt with liner.ErrPromptAborted.
func NewLinePrompter() *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinePrompter{line: line}
}

// Prompt implements Prompter. Answers are trimmed.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	s, err := p.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s != "" {
		p.line.AppendHistory(s)
	}
	return s, nil
}

// PasswordPrompt implements Prompter. Passwords are kept verbatim and never
// enter the history.
func (p *LinePrompter) PasswordPrompt(prompt string) (string, error) {
	return p.line.PasswordPrompt(prompt)
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	return p.line.Close()
}
