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

// Reset is the choose-a-new-password page reached from a recovery link.
type Reset struct {
	form
	ctl      *flow.ResetPassword
	password *components.Field
	confirm  *components.Field
}

// NewReset creates the reset page. The token is read from loc.
func NewReset(env *Env, loc route.Location) *Reset {
	p := &Reset{
		ctl:      flow.NewResetPassword(env.Deps, loc),
		password: components.NewPasswordField(env.Theme, "New password", "At least 8 characters"),
		confirm:  components.NewPasswordField(env.Theme, "Confirm new password", "Repeat the password"),
	}
	p.form = newForm(env,
		fieldSlot("new_password", p.password),
		fieldSlot("confirm_password", p.confirm),
		slot{kind: slotButton, name: slotSubmit},
		linkSlot(slotLogin, route.Login),
	)
	return p
}

// Controller exposes the flow controller.
func (p *Reset) Controller() *flow.ResetPassword { return p.ctl }

func (p *Reset) Init() tea.Cmd   { return p.focusFirst() }
func (p *Reset) Close()          { p.ctl.Close(); p.close() }
func (p *Reset) Hints() []string { return formHints() }

func (p *Reset) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok {
		cmd = p.handleKey(k)
	} else {
		cmd = tea.Batch(p.ctl.Update(msg), p.updateSpinner(msg))
	}
	p.showErrors(p.ctl.State())
	return tea.Batch(cmd, p.syncSpinner(p.ctl.State(), "Updating password"))
}

func (p *Reset) handleKey(k tea.KeyMsg) tea.Cmd {
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
		case "new_password":
			p.ctl.SetNewPassword(value)
		case "confirm_password":
			p.ctl.SetConfirmPassword(value)
		}
	}
	return cmd
}

func (p *Reset) View(width int) string {
	t := p.env.Theme
	st := p.ctl.State()

	var notice string
	if p.ctl.Token() == "" {
		notice = t.RenderWarning("This link has no reset token.")
	}

	return components.Card{
		Title:       "Reset your password",
		Description: "Enter your new password below",
		Body: []string{
			notice,
			p.password.View(),
			p.confirm.View(),
			"",
			components.Button{
				Label:        "Reset password",
				PendingLabel: "Resetting...",
				Focused:      p.focused(slotSubmit),
				Pending:      st.Phase == flow.Submitting,
				Width:        components.CardWidth - 8,
			}.Render(t),
			p.status(st),
		},
		Footer: p.link(slotLogin, "Back to login"),
	}.Render(t)
}
