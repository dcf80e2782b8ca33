// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
)

const (
	slotShowPassword = "show_password"
	slotRememberMe   = "remember_me"
	slotSubmit       = "submit"
	slotForgot       = "forgot"
	slotRegister     = "register"
)

// Login is the sign-in page.
type Login struct {
	form
	ctl      *flow.Login
	email    *components.Field
	password *components.Field
}

// NewLogin creates the sign-in page with a fresh controller.
func NewLogin(env *Env) *Login {
	p := &Login{
		ctl:      flow.NewLogin(env.Deps),
		email:    components.NewField(env.Theme, "Email", "you@example.com"),
		password: components.NewPasswordField(env.Theme, "Password", "Your password"),
	}

	slots := []slot{
		fieldSlot("email", p.email),
		fieldSlot("password", p.password),
		{kind: slotCheckbox, name: slotShowPassword},
		{kind: slotCheckbox, name: slotRememberMe},
		{kind: slotButton, name: slotSubmit},
	}
	for _, prov := range env.Providers {
		slots = append(slots, slot{kind: slotButton, name: providerSlot(prov), provider: prov})
	}
	slots = append(slots, linkSlot(slotForgot, route.ForgotPassword), linkSlot(slotRegister, route.Register))
	p.form = newForm(env, slots...)
	return p
}

// Controller exposes the flow controller.
func (p *Login) Controller() *flow.Login { return p.ctl }

func (p *Login) Init() tea.Cmd {
	return p.focusFirst()
}

func (p *Login) Close() {
	p.ctl.Close()
	p.close()
}

func (p *Login) Hints() []string {
	return append(formHints(), hint(keys.Reveal))
}

func (p *Login) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if k, ok := msg.(tea.KeyMsg); ok {
		cmds = append(cmds, p.handleKey(k))
	} else {
		cmds = append(cmds, p.ctl.Update(msg), p.updateSpinner(msg))
	}

	cmds = append(cmds, p.sync())
	return tea.Batch(cmds...)
}

func (p *Login) handleKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, keys.Next):
		return p.move(1)
	case key.Matches(k, keys.Prev):
		return p.move(-1)
	case key.Matches(k, keys.Reveal):
		p.ctl.ToggleShowPassword()
		return nil
	case key.Matches(k, keys.Submit):
		return p.activate()
	case key.Matches(k, keys.Toggle) && p.current().kind != slotField:
		return p.activate()
	}

	if !p.ctl.CanSubmit() {
		return nil
	}
	cmd, value, changed := p.typeInto(k)
	if changed {
		switch p.current().name {
		case "email":
			p.ctl.SetEmail(value)
		case "password":
			p.ctl.SetPassword(value)
		}
	}
	return cmd
}

func (p *Login) activate() tea.Cmd {
	s := p.current()
	switch {
	case s.kind == slotField, s.name == slotSubmit:
		if !p.ctl.CanSubmit() {
			return nil
		}
		return p.ctl.Submit()
	case s.name == slotShowPassword:
		p.ctl.ToggleShowPassword()
	case s.name == slotRememberMe:
		p.ctl.SetRememberMe(!p.ctl.RememberMe())
	case s.provider != "":
		if !p.ctl.CanSubmit() {
			return nil
		}
		return p.ctl.SocialLogin(s.provider)
	case s.kind == slotLink:
		p.follow()
	}
	return nil
}

// sync mirrors controller state into the components.
func (p *Login) sync() tea.Cmd {
	st := p.ctl.State()
	p.password.SetRevealed(p.ctl.ShowPassword())
	p.showErrors(st)

	message := "Signing in"
	if prov, ok := p.ctl.SocialPending(); ok {
		message = "Connecting to " + prov.DisplayName()
	}
	return p.syncSpinner(st, message)
}

func (p *Login) View(width int) string {
	t := p.env.Theme
	st := p.ctl.State()
	pending, socialPending := p.ctl.SocialPending()

	body := []string{
		p.email.View(),
		p.password.View(),
		components.Checkbox(t, "Show password", p.ctl.ShowPassword(), p.focused(slotShowPassword)) + "   " +
			components.Checkbox(t, "Remember me", p.ctl.RememberMe(), p.focused(slotRememberMe)),
		p.link(slotForgot, "Forgot your password?"),
		"",
		components.Button{
			Label:        "Sign in",
			PendingLabel: "Signing in...",
			Focused:      p.focused(slotSubmit),
			Pending:      st.Phase == flow.Submitting && !socialPending,
			Disabled:     !p.ctl.CanSubmit(),
			Width:        components.CardWidth - 8,
		}.Render(t),
		p.status(st),
	}

	if len(p.env.Providers) > 0 {
		body = append(body, t.MutedText.Render(strings.Repeat("-", 8)+" or continue with "+strings.Repeat("-", 8)))
		for _, prov := range p.env.Providers {
			b := components.SocialButton(prov,
				socialPending && pending == prov,
				p.focused(providerSlot(prov)),
				!p.ctl.CanSubmit())
			b.Width = components.CardWidth - 8
			body = append(body, b.Render(t))
		}
	}

	return components.Card{
		Title:       "Welcome back",
		Description: "Enter your credentials to access your account",
		Body:        body,
		Footer:      "Don't have an account? " + p.link(slotRegister, "Sign up"),
	}.Render(t)
}

// providerSlot is the slot name of a social button.
func providerSlot(p auth.Provider) string {
	return "social_" + string(p)
}
