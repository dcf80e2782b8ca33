// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// Notification text for the recovery request flow.
const (
	TitleResetLinkSent      = "Check your email"
	TitleResetRequestFailed = "Request Failed"
)

// ForgotPassword drives the recovery request form.
type ForgotPassword struct {
	machine

	email string
}

// NewForgotPassword returns an idle recovery request controller.
func NewForgotPassword(deps Deps) *ForgotPassword {
	return &ForgotPassword{machine: newMachine("forgot_password", deps)}
}

// Email returns the email field.
func (c *ForgotPassword) Email() string { return c.email }

// SetEmail edits the email field. Edits are ignored while submitting.
func (c *ForgotPassword) SetEmail(s string) {
	if c.state.Phase == Submitting || s == c.email {
		return
	}
	c.email = s
	c.edited()
}

// Submit validates the address and requests a reset link.
func (c *ForgotPassword) Submit() tea.Cmd {
	if !c.CanSubmit() {
		return nil
	}
	switch {
	case !validate.Required(c.email):
		return c.reject("email", validate.MsgEmailRequired)
	case !validate.Email(c.email):
		return c.reject("email", validate.MsgEmailInvalid)
	}

	email := c.email
	backend := c.deps.Backend
	return c.begin(func(ctx context.Context) (auth.Result, error) {
		return backend.RequestPasswordReset(ctx, email)
	})
}

// Update applies backend results. On success the field is cleared and the
// view moves to the sent status.
func (c *ForgotPassword) Update(msg tea.Msg) tea.Cmd {
	r, ok := c.accept(msg)
	if !ok {
		return nil
	}
	if r.err != nil {
		return c.abandoned(r.err)
	}
	if !r.res.OK() {
		c.fail(r.res, TitleResetRequestFailed)
		return nil
	}

	c.deps.Audit.Log(audit.Event{
		Type:     audit.EventResetRequested,
		Success:  true,
		Metadata: map[string]string{"email": audit.MaskIdentifier(c.email)},
	})
	c.email = ""
	c.succeed(r.res.Message(), TitleResetLinkSent, r.res.Message())
	c.navigate(route.To(route.ForgotPassword).With(route.QueryStatus, route.StatusSent))
	return nil
}
