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

// Notification text for the registration flow.
const (
	TitleRegistered         = "Registration Successful!"
	TitleRegistrationFailed = "Registration Failed"
	DescToLogin             = "Redirecting to login..."
)

// Register drives the sign-up form.
type Register struct {
	machine

	email           string
	password        string
	confirmPassword string
}

// NewRegister returns an idle registration controller.
func NewRegister(deps Deps) *Register {
	return &Register{machine: newMachine("register", deps)}
}

func (c *Register) Email() string           { return c.email }
func (c *Register) Password() string        { return c.password }
func (c *Register) ConfirmPassword() string { return c.confirmPassword }

func (c *Register) SetEmail(s string)           { c.set(&c.email, s) }
func (c *Register) SetPassword(s string)        { c.set(&c.password, s) }
func (c *Register) SetConfirmPassword(s string) { c.set(&c.confirmPassword, s) }

func (c *Register) set(field *string, s string) {
	if c.state.Phase == Submitting || *field == s {
		return
	}
	*field = s
	c.edited()
}

// Submit validates the form and starts the registration.
func (c *Register) Submit() tea.Cmd {
	if !c.CanSubmit() {
		return nil
	}
	minLen := c.deps.Settings.RegisterMinPassword
	switch {
	case !validate.Required(c.email):
		return c.reject("email", validate.MsgEmailRequired)
	case !validate.Email(c.email):
		return c.reject("email", validate.MsgEmailInvalid)
	case !validate.Match(c.password, c.confirmPassword):
		return c.reject("confirm_password", validate.MsgPasswordMismatch)
	case !validate.PasswordStrength(c.password, minLen):
		return c.reject("password", validate.TooShort(minLen))
	}

	req := auth.RegistrationRequest{
		Email:           c.email,
		Password:        c.password,
		ConfirmPassword: c.confirmPassword,
	}
	backend := c.deps.Backend
	return c.begin(func(ctx context.Context) (auth.Result, error) {
		return backend.Register(ctx, req)
	})
}

// Update applies backend results and delayed navigations.
func (c *Register) Update(msg tea.Msg) tea.Cmd {
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

	md := map[string]string{"email": audit.MaskIdentifier(c.email)}
	if !r.res.OK() {
		c.deps.Audit.Log(audit.Event{Type: audit.EventRegisterFailure, Error: r.res.Kind().String(), Metadata: md})
		c.fail(r.res, TitleRegistrationFailed)
		return nil
	}
	c.deps.Audit.Log(audit.Event{Type: audit.EventRegisterSuccess, Success: true, Metadata: md})
	c.succeed(r.res.Message(), TitleRegistered, DescToLogin)
	return c.navigateAfter(route.To(route.Login))
}
