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

// Forgot is the password-recovery request page. With status=sent in its
// location it shows the "check your email" view instead of the form.
type Forgot struct {
	form
	ctl   *flow.ForgotPassword
	email *components.Field
	sent  bool
}

// NewForgot creates the recovery page for loc.
func NewForgot(env *Env, loc route.Location) *Forgot {
	p := &Forgot{
		ctl:   flow.NewForgotPassword(env.Deps),
		email: components.NewField(env.Theme, "Email", "you@example.com"),
		sent:  loc.Get(route.QueryStatus) == route.StatusSent,
	}
	p.form = newForm(env,
		fieldSlot("email", p.email),
		slot{kind: slotButton, name: slotSubmit},
		linkSlot(slotLogin, route.Login),
	)
	return p
}

// Controller exposes the flow controller.
func (p *Forgot) Controller() *flow.ForgotPassword { return p.ctl }

// Sent reports whether the page shows the recovery-pending view.
func (p *Forgot) Sent() bool { return p.sent }

func (p *Forgot) Init() tea.Cmd {
	if p.sent {
		p.focus = len(p.slots) - 1
		return nil
	}
	return p.focusFirst()
}

func (p *Forgot) Close() { p.ctl.Close(); p.close() }

func (p *Forgot) Hints() []string {
	if p.sent {
		return []string{"enter back to login", "r send again", "esc quit"}
	}
	return formHints()
}

func (p *Forgot) Update(msg tea.Msg) tea.Cmd {
	if p.sent {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(k, keys.Submit):
				p.env.Deps.Navigator.NavigateTo(route.To(route.Login))
			case k.String() == "r":
				p.env.Deps.Navigator.NavigateTo(route.To(route.ForgotPassword))
			}
		}
		return nil
	}

	var cmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok {
		cmd = p.handleKey(k)
	} else {
		cmd = tea.Batch(p.ctl.Update(msg), p.updateSpinner(msg))
	}

	if p.email.Value() != p.ctl.Email() {
		p.email.SetValue(p.ctl.Email())
	}
	p.showErrors(p.ctl.State())
	return tea.Batch(cmd, p.syncSpinner(p.ctl.State(), "Sending reset link"))
}

func (p *Forgot) handleKey(k tea.KeyMsg) tea.Cmd {
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
		p.ctl.SetEmail(value)
	}
	return cmd
}

func (p *Forgot) View(width int) string {
	t := p.env.Theme
	if p.sent {
		return components.Card{
			Title:       flow.TitleResetLinkSent,
			Description: "If an account with this email exists, a reset link has been sent.",
			Body: []string{
				t.MutedText.Render("Follow the link in the email to choose a new password."),
				t.MutedText.Render("Press r to send another link."),
			},
			Footer: p.link(slotLogin, "Back to login"),
		}.Render(t)
	}

	st := p.ctl.State()
	return components.Card{
		Title:       "Forgot your password?",
		Description: "Enter your email and we'll send you a reset link",
		Body: []string{
			p.email.View(),
			"",
			components.Button{
				Label:        "Send reset link",
				PendingLabel: "Sending...",
				Focused:      p.focused(slotSubmit),
				Pending:      st.Phase == flow.Submitting,
				Width:        components.CardWidth - 8,
			}.Render(t),
			p.status(st),
		},
		Footer: "Remembered it? " + p.link(slotLogin, "Back to login"),
	}.Render(t)
}
