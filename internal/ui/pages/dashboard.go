// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// Dashboard is the protected landing page.
type Dashboard struct {
	env  *Env
	ctl  *flow.Dashboard
	sess *session.Session

	// rendered markdown, cached per width
	renderer *glamour.TermRenderer
	rendered string
	width    int
}

// NewDashboard creates the dashboard. The session is taken from ctx when the
// caller propagated one, otherwise from the gate.
func NewDashboard(ctx context.Context, env *Env) *Dashboard {
	d := &Dashboard{env: env, ctl: flow.NewDashboard(env.Deps)}
	if s, ok := session.FromContext(ctx); ok {
		d.sess = s
	} else if s, ok := d.ctl.Session(); ok {
		d.sess = s
	}
	return d
}

// Controller exposes the flow controller.
func (d *Dashboard) Controller() *flow.Dashboard { return d.ctl }

func (d *Dashboard) Init() tea.Cmd { return nil }
func (d *Dashboard) Close()        {}

func (d *Dashboard) Hints() []string {
	return []string{"f5 log out", "esc quit"}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "f5" {
		d.ctl.Logout()
	}
	return nil
}

// Markdown returns the dashboard body before rendering.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Welcome back, %s!\n\n", d.env.DisplayName(d.sess))
	b.WriteString("This is your main dashboard area. Application-specific content will be displayed here.\n\n")

	b.WriteString("## Quick Stats\n\n")
	b.WriteString("| Active Projects | Tasks Completed | Pending Issues |\n")
	b.WriteString("|:---:|:---:|:---:|\n")
	b.WriteString("| 12 | 186 | 7 |\n\n")

	b.WriteString("## Recent Activity\n\n")
	b.WriteString("- User 'john.doe' logged in. *(10 min ago)*\n")
	b.WriteString("- New project 'Alpha' created. *(1 hour ago)*\n")
	b.WriteString("- Task #123 updated. *(3 hours ago)*\n\n")

	if d.sess != nil {
		b.WriteString("## Session\n\n")
		fmt.Fprintf(&b, "- Signed in with **%s**\n", d.sess.Method)
		fmt.Fprintf(&b, "- Started %s\n", d.sess.StartedAt.Format("15:04:05"))
		if d.sess.RememberMe {
			b.WriteString("- Remember me is on\n")
		}
	}
	return b.String()
}

func (d *Dashboard) View(width int) string {
	if width <= 0 {
		width = 80
	}
	if d.renderer == nil || d.width != width {
		d.width = width
		d.rendered = ""
		d.renderer = d.newRenderer(width)
	}
	if d.rendered == "" {
		md := d.Markdown()
		d.rendered = md
		if d.renderer != nil {
			if out, err := d.renderer.Render(md); err == nil {
				d.rendered = out
			}
		}
	}
	return d.rendered
}

func (d *Dashboard) newRenderer(width int) *glamour.TermRenderer {
	wrap := width - 4
	if wrap > 100 {
		wrap = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle(d.env.Theme)),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		d.env.Deps.Logger.Warn("markdown renderer unavailable")
		return nil
	}
	return r
}

// markdownStyle picks the glamour style matching the theme without querying
// the terminal.
func markdownStyle(t *styles.Theme) string {
	switch {
	case t.ASCII:
		return "ascii"
	case t.IsDark:
		return "dark"
	default:
		return "light"
	}
}

// NotFound is shown for unknown routes.
type NotFound struct {
	env  *Env
	path string
}

// NewNotFound creates the not-found page.
func NewNotFound(env *Env, loc route.Location) *NotFound {
	return &NotFound{env: env, path: loc.String()}
}

func (p *NotFound) Init() tea.Cmd { return nil }
func (p *NotFound) Close()        {}
func (p *NotFound) Hints() []string {
	return []string{"enter go to login", "esc quit"}
}

func (p *NotFound) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		p.env.Deps.Navigator.NavigateTo(route.To(route.Login))
	}
	return nil
}

func (p *NotFound) View(width int) string {
	t := p.env.Theme
	return components.Card{
		Title:       "404",
		Description: "Oops! Page not found",
		Body: []string{
			t.MutedText.Render("Nothing lives at " + p.path + "."),
		},
		Footer: components.Link(t, "Return to login", true),
	}.Render(t)
}
