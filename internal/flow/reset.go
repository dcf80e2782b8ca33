// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// Notification text for the password reset flow.
const (
	TitlePasswordReset       = "Password has been reset successfully!"
	TitlePasswordResetFailed = "Password Reset Failed"
	DescLoginWithNewPassword = "You can now log in with your new password."
)

// ResetPassword drives the new-password form reached from a recovery link.
type ResetPassword struct {
	machine

	token           string
	newPassword     string
	confirmPassword string
}

// NewResetPassword returns an idle reset controller for the link at loc.
func NewResetPassword(deps Deps, loc route.Location) *ResetPassword {
	c := &ResetPassword{
		machine: newMachine("reset_password", deps),
		token:   loc.Token(),
	}
	c.log.Info("reset link opened",
		zap.Bool("token_present", c.token != ""),
		zap.String("token", audit.MaskIdentifier(c.token)),
	)
	return c
}

// Token returns the token carried by the recovery link.
func (c *ResetPassword) Token() string { return c.token }

func (c *ResetPassword) NewPassword() string     { return c.newPassword }
func (c *ResetPassword) ConfirmPassword() string { return c.confirmPassword }

func (c *ResetPassword) SetNewPassword(s string)     { c.set(&c.newPassword, s) }
func (c *ResetPassword) SetConfirmPassword(s string) { c.set(&c.confirmPassword, s) }

func (c *ResetPassword) set(field *string, s string) {
	if c.state.Phase == Submitting || *field == s {
		return
	}
	*field = s
	c.edited()
}

// Submit validates the new password and starts the reset.
func (c *ResetPassword) Submit() tea.Cmd {
	if !c.CanSubmit() {
		return nil
	}
	minLen := c.deps.Settings.ResetMinPassword
	switch {
	case c.deps.Settings.RequireResetToken && c.token == "":
		return c.reject("token", validate.MsgTokenRequired)
	case !validate.Required(c.newPassword) || !validate.Required(c.confirmPassword):
		return c.reject("new_password", validate.MsgPasswordsRequired)
	case !validate.Match(c.newPassword, c.confirmPassword):
		return c.reject("confirm_password", validate.MsgPasswordMismatch)
	case !validate.PasswordStrength(c.newPassword, minLen):
		return c.reject("new_password", validate.TooShort(minLen))
	}

	req := auth.ResetRequest{
		Token:           c.token,
		NewPassword:     c.newPassword,
		ConfirmPassword: c.confirmPassword,
	}
	backend := c.deps.Backend
	return c.begin(func(ctx context.Context) (auth.Result, error) {
		return backend.ResetPassword(ctx, req)
	})
}

// Update applies backend results and delayed navigations.
func (c *ResetPassword) Update(msg tea.Msg) tea.Cmd {
	if c.handleNavigate(msg) {
		return nil
	}
	r, ok := c.accept(msg)
	if !ok {
		return nil
	}
	if r.err != nil {
		return c.abandoned(r.err)
	}
	if !r.res.OK() {
		c.deps.Audit.Log(audit.Event{Type: audit.EventPasswordResetFail, Error: r.res.Kind().String()})
		c.fail(r.res, TitlePasswordResetFailed)
		return nil
	}
	c.deps.Audit.Log(audit.Event{Type: audit.EventPasswordReset, Success: true})
	c.succeed(r.res.Message(), TitlePasswordReset, DescLoginWithNewPassword)
	return c.navigateAfter(route.To(route.Login))
}
