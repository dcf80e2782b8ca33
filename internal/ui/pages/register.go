// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
)

const slotLogin = "login"

// Register is the sign-up page.
type Register struct {
	form
	ctl      *flow.Register
	email    *components.Field
	password *components.Field
	confirm  *components.Field
}

// NewRegister creates the sign-up page with a fresh controller.
func NewRegister(env *Env) *Register {
	p := &Register{
		ctl:      flow.NewRegister(env.Deps),
		email:    components.NewField(env.Theme, "Email", "you@example.com"),
		password: components.NewPasswordField(env.Theme, "Password", "Choose a password"),
		confirm:  components.NewPasswordField(env.Theme, "Confirm password", "Repeat the password"),
	}
	p.form = newForm(env,
		fieldSlot("email", p.email),
		fieldSlot("password", p.password),
		fieldSlot("confirm_password", p.confirm),
		slot{kind: slotButton, name: slotSubmit},
		linkSlot(slotLogin, route.Login),
	)
	return p
}

// Controller exposes the flow controller.
func (p *Register) Controller() *flow.Register { return p.ctl }

func (p *Register) Init() tea.Cmd { return p.focusFirst() }
func (p *Register) Close()        { p.ctl.Close(); p.close() }
func (p *Register) Hints() []string {
	return formHints()
}

func (p *Register) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok {
		cmd = p.handleKey(k)
	} else {
		cmd = tea.Batch(p.ctl.Update(msg), p.updateSpinner(msg))
	}
	p.showErrors(p.ctl.State())
	return tea.Batch(cmd, p.syncSpinner(p.ctl.State(), "Creating account"))
}

func (p *Register) handleKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, keys.Next):
		return p.move(1)
	case key.Matches(k, keys.Prev):
		return p.move(-1)
	case key.Matches(k, keys.Submit):
		if p.current().kind == slotLink {
			p.follow()
			return nil
		}
		if !p.ctl.CanSubmit() {
			return nil
		}
		return p.ctl.Submit()
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
		case "confirm_password":
			p.ctl.SetConfirmPassword(value)
		}
	}
	return cmd
}

func (p *Register) View(width int) string {
	t := p.env.Theme
	st := p.ctl.State()
	return components.Card{
		Title:       "Create an account",
		Description: "Enter your email below to create your account",
		Body: []string{
			p.email.View(),
			p.password.View(),
			p.confirm.View(),
			"",
			components.Button{
				Label:        "Create account",
				PendingLabel: "Creating account...",
				Focused:      p.focused(slotSubmit),
				Pending:      st.Phase == flow.Submitting,
				Width:        components.CardWidth - 8,
			}.Render(t),
			p.status(st),
		},
		Footer: "Already have an account? " + p.link(slotLogin, "Log in"),
	}.Render(t)
}
