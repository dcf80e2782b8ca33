// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// Notification text for the login flow.
const (
	TitleLoginSucceeded = "Login Successful!"
	TitleLoginFailed    = "Login Failed"
	DescToDashboard     = "Redirecting to your dashboard..."
)

// MsgUnknownProvider is shown when a social provider is not supported.
const MsgUnknownProvider = "This sign-in provider is not supported."

// Login drives the sign-in form, including social sign-in.
type Login struct {
	machine

	email        string
	password     string
	showPassword bool
	rememberMe   bool

	// provider is set while a social sign-in is in flight.
	provider auth.Provider
}

// NewLogin returns an idle login controller.
func NewLogin(deps Deps) *Login {
	return &Login{machine: newMachine("login", deps)}
}

// Email returns the email field.
func (c *Login) Email() string { return c.email }

// Password returns the password field.
func (c *Login) Password() string { return c.password }

// ShowPassword reports whether the password is shown in clear text.
func (c *Login) ShowPassword() bool { return c.showPassword }

// RememberMe returns the remember-me flag.
func (c *Login) RememberMe() bool { return c.rememberMe }

// SetEmail edits the email field. Edits are ignored while submitting.
func (c *Login) SetEmail(s string) {
	if c.state.Phase == Submitting || s == c.email {
		return
	}
	c.email = s
	c.edited()
}

// SetPassword edits the password field. Edits are ignored while submitting.
func (c *Login) SetPassword(s string) {
	if c.state.Phase == Submitting || s == c.password {
		return
	}
	c.password = s
	c.edited()
}

// ToggleShowPassword flips password visibility.
func (c *Login) ToggleShowPassword() {
	c.showPassword = !c.showPassword
}

// SetRememberMe sets the remember-me flag.
func (c *Login) SetRememberMe(v bool) {
	if c.state.Phase == Submitting {
		return
	}
	c.rememberMe = v
}

// SocialPending returns the provider whose sign-in is in flight.
func (c *Login) SocialPending() (auth.Provider, bool) {
	return c.provider, c.provider != ""
}

// Submit validates the form and starts a password sign-in.
func (c *Login) Submit() tea.Cmd {
	if !c.CanSubmit() {
		return nil
	}
	switch {
	case !validate.Required(c.email):
		return c.reject("email", validate.MsgEmailRequired)
	case !validate.Email(c.email):
		return c.reject("email", validate.MsgEmailInvalid)
	case !validate.Required(c.password):
		return c.reject("password", validate.MsgPasswordRequired)
	}

	creds := auth.Credentials{Email: c.email, Password: c.password}
	c.provider = ""
	backend := c.deps.Backend
	return c.begin(func(ctx context.Context) (auth.Result, error) {
		return backend.Login(ctx, creds)
	})
}

// SocialLogin starts a sign-in with provider.
func (c *Login) SocialLogin(provider auth.Provider) tea.Cmd {
	if !c.CanSubmit() {
		return nil
	}
	if !provider.Valid() {
		return c.reject("provider", MsgUnknownProvider)
	}

	backend := c.deps.Backend
	cmd := c.begin(func(ctx context.Context) (auth.Result, error) {
		return backend.SocialLogin(ctx, provider)
	})
	if c.state.Phase == Submitting {
		c.provider = provider
	}
	return cmd
}

// Update applies backend results addressed to this controller.
func (c *Login) Update(msg tea.Msg) tea.Cmd {
	r, ok := c.accept(msg)
	if !ok {
		return nil
	}
	provider := c.provider
	c.provider = ""

	if r.err != nil {
		return c.abandoned(r.err)
	}
	if provider != "" {
		c.applySocial(provider, r.res)
	} else {
		c.applyPassword(r.res)
	}
	return nil
}

func (c *Login) applyPassword(res auth.Result) {
	masked := audit.MaskIdentifier(c.email)
	if !res.OK() {
		c.deps.Audit.Log(audit.Event{
			Type:     audit.EventLoginFailure,
			Error:    res.Kind().String(),
			Metadata: map[string]string{"email": masked},
		})
		c.fail(res, TitleLoginFailed)
		return
	}

	if err := c.openSession(c.email, session.MethodPassword); err != nil {
		return
	}
	c.deps.Audit.Log(audit.Event{
		Type:     audit.EventLoginSuccess,
		Success:  true,
		Metadata: map[string]string{"email": masked, "remember_me": fmt.Sprint(c.rememberMe)},
	})
	c.succeed(res.Message(), TitleLoginSucceeded, DescToDashboard)
	c.navigate(route.To(route.Dashboard))
}

func (c *Login) applySocial(provider auth.Provider, res auth.Result) {
	if !res.OK() {
		c.deps.Audit.Log(audit.Event{
			Type:     audit.EventSocialFailure,
			Error:    res.Kind().String(),
			Metadata: map[string]string{"provider": string(provider)},
		})
		c.fail(res, fmt.Sprintf("%s sign-in failed", provider.DisplayName()))
		return
	}

	subject := provider.DisplayName() + " user"
	if err := c.openSession(subject, session.Method(provider)); err != nil {
		return
	}
	c.deps.Audit.Log(audit.Event{
		Type:     audit.EventSocialLogin,
		Success:  true,
		Metadata: map[string]string{"provider": string(provider)},
	})
	c.succeed(res.Message(), res.Message(), DescToDashboard)
	c.navigate(route.To(route.Dashboard))
}

// openSession replaces any open session with a new one.
func (c *Login) openSession(subject string, method session.Method) error {
	gate := c.deps.Gate
	gate.Close()
	if _, err := gate.Open(subject, method, c.rememberMe); err != nil {
		c.state = State{Phase: Failed, Message: MsgAbandoned, Err: err}
		c.log.Error("open session", zap.Error(err))
		c.deps.Notifier.Notify(NoticeError, TitleLoginFailed, MsgAbandoned)
		return err
	}
	return nil
}
