// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// =============================================================================
// PAGE CONTRACT
// =============================================================================

// Page is a routed view.
type Page interface {
	// Init returns the commands to run when the page is shown.
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
	// Hints are the key hints for the footer.
	Hints() []string
	// Close releases the page's controller. Late results are dropped.
	Close()
}

// Env is what every page needs from the application.
type Env struct {
	Theme     *styles.Theme
	Deps      flow.Deps
	Providers []auth.Provider
	// Names maps a session subject to the name shown for it.
	Names map[string]string
}

// DisplayName returns the name shown for s.
func (e *Env) DisplayName(s *session.Session) string {
	if s != nil {
		if name, ok := e.Names[s.Subject]; ok {
			return name
		}
	}
	return s.DisplayName()
}

// New returns the page for loc. ctx carries the session for protected pages.
func New(ctx context.Context, env *Env, loc route.Location) Page {
	switch loc.Route {
	case route.Login:
		return NewLogin(env)
	case route.Register:
		return NewRegister(env)
	case route.ForgotPassword:
		return NewForgot(env, loc)
	case route.ResetPassword:
		return NewReset(env, loc)
	case route.Dashboard:
		return NewDashboard(ctx, env)
	default:
		return NewNotFound(env, loc)
	}
}

// =============================================================================
// KEY BINDINGS
// =============================================================================

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Toggle key.Binding
	Reveal key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "show password"),
	),
}

func hint(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// =============================================================================
// FORM
// =============================================================================

type slotKind int

const (
	slotField slotKind = iota
	slotCheckbox
	slotButton
	slotLink
)

// slot is one focusable element of a form.
type slot struct {
	kind     slotKind
	name     string
	field    *components.Field
	provider auth.Provider
	to       route.ID
}

// form is the focus ring and submitting indicator shared by the form pages.
type form struct {
	env     *Env
	slots   []slot
	focus   int
	spinner components.Spinner
	closed  bool
}

func newForm(env *Env, slots ...slot) form {
	return form{
		env:     env,
		slots:   slots,
		spinner: components.NewSpinner(env.Theme),
	}
}

func fieldSlot(name string, f *components.Field) slot {
	return slot{kind: slotField, name: name, field: f}
}

func linkSlot(name string, to route.ID) slot {
	return slot{kind: slotLink, name: name, to: to}
}

func (f *form) current() slot {
	return f.slots[f.focus]
}

// focusFirst focuses the first slot.
func (f *form) focusFirst() tea.Cmd {
	f.focus = 0
	if s := f.current(); s.kind == slotField {
		return s.field.Focus()
	}
	return nil
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) tea.Cmd {
	if s := f.current(); s.kind == slotField {
		s.field.Blur()
	}
	n := len(f.slots)
	f.focus = ((f.focus+delta)%n + n) % n
	if s := f.current(); s.kind == slotField {
		return s.field.Focus()
	}
	return nil
}

// focused reports whether the named slot has focus.
func (f *form) focused(name string) bool {
	return f.current().name == name
}

// typeInto forwards msg to the focused field and reports the new value.
func (f *form) typeInto(msg tea.Msg) (tea.Cmd, string, bool) {
	s := f.current()
	if s.kind != slotField {
		return nil, "", false
	}
	cmd, changed := s.field.Update(msg)
	return cmd, s.field.Value(), changed
}

// follow navigates to the focused link's route.
func (f *form) follow() {
	if s := f.current(); s.kind == slotLink {
		f.env.Deps.Navigator.NavigateTo(route.To(s.to))
	}
}

// close stops the spinner for good. Ticks already queued die out in Update.
func (f *form) close() {
	f.closed = true
	f.spinner.Stop()
}

// syncSpinner runs the spinner exactly while the controller is submitting.
func (f *form) syncSpinner(st flow.State, message string) tea.Cmd {
	if st.Phase == flow.Submitting && !f.closed {
		f.spinner.SetMessage(message)
		return f.spinner.Start()
	}
	f.spinner.Stop()
	return nil
}

// updateSpinner advances the spinner animation.
func (f *form) updateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.spinner, cmd = f.spinner.Update(msg)
	return cmd
}

// showErrors puts a validation message under the field it belongs to. Other
// failures are shown by status.
func (f *form) showErrors(st flow.State) {
	var verr *flow.ValidationError
	ok := st.Phase == flow.Failed && errors.As(st.Err, &verr)
	for _, s := range f.slots {
		if s.kind != slotField {
			continue
		}
		if ok && verr.Field == s.name {
			s.field.SetError(verr.Message)
		} else {
			s.field.SetError("")
		}
	}
}

// status renders the inline line under the form.
func (f *form) status(st flow.State) string {
	switch st.Phase {
	case flow.Submitting:
		return f.spinner.View()
	case flow.Succeeded:
		return f.env.Theme.RenderSuccess(st.Message)
	case flow.Failed:
		var verr *flow.ValidationError
		if errors.As(st.Err, &verr) && f.hasField(verr.Field) {
			return ""
		}
		return f.env.Theme.RenderError(st.Message)
	default:
		return ""
	}
}

func (f *form) hasField(name string) bool {
	for _, s := range f.slots {
		if s.kind == slotField && s.name == name {
			return true
		}
	}
	return false
}

// link renders the named link slot.
func (f *form) link(name, label string) string {
	return components.Link(f.env.Theme, label, f.focused(name))
}

// formHints are the footer hints shared by the form pages.
func formHints() []string {
	return []string{hint(keys.Next), hint(keys.Prev), hint(keys.Submit), "esc quit"}
}
