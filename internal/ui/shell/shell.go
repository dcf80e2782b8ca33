// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell is the root Bubble Tea model. It owns the current page, acts
// as the Navigator and Notifier the flows report to, and enforces the session
// gate on every navigation.
package shell

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
	"github.com/jeranaias/authflow-tui/internal/ui/pages"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// Session expiry notice.
const (
	TitleSessionExpired = "Session expired"
	DescSessionExpired  = "You were signed out after a period of inactivity."
)

// =============================================================================
// NAVIGATION QUEUE
// =============================================================================

// navQueue collects navigation requests made while a message is handled.
// They are applied once the handler returns, so a page is never replaced
// from inside its own Update.
type navQueue struct {
	mu   sync.Mutex
	locs []route.Location
}

// NavigateTo implements route.Navigator.
func (q *navQueue) NavigateTo(loc route.Location) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.locs = append(q.locs, loc)
}

func (q *navQueue) drain() []route.Location {
	q.mu.Lock()
	defer q.mu.Unlock()
	locs := q.locs
	q.locs = nil
	return locs
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures the shell.
type Options struct {
	Theme     *styles.Theme
	Deps      flow.Deps // Navigator and Notifier are supplied by the shell
	Providers []auth.Provider
	Names     map[string]string
	Start     route.Location
}

// Model is the root Bubble Tea model.
type Model struct {
	env    *pages.Env
	gate   *session.Gate
	nav    *navQueue
	toasts *components.ToastManager
	log    *zap.Logger

	header  *components.Header
	footer  *components.Footer
	overlay components.TimeoutOverlay

	page pages.Page
	loc  route.Location

	width  int
	height int
}

// New creates the shell and opens the start page.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	deps := opts.Deps
	if deps.Gate == nil {
		deps.Gate = session.NewGate()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	m := &Model{
		gate:    deps.Gate,
		nav:     &navQueue{},
		toasts:  components.NewToastManager(),
		log:     deps.Logger.Named("shell"),
		header:  components.NewHeader(theme),
		footer:  components.NewFooter(theme),
		overlay: components.NewTimeoutOverlay(theme),
		width:   80,
		height:  24,
	}
	deps.Navigator = m.nav
	deps.Notifier = m.toasts

	m.env = &pages.Env{
		Theme:     theme,
		Deps:      deps,
		Providers: opts.Providers,
		Names:     opts.Names,
	}

	start := opts.Start
	if start.Route == "" {
		start = route.To(route.Register)
	}
	m.show(start)
	return m
}

// Location returns the current location.
func (m *Model) Location() route.Location { return m.loc }

// Page returns the current page.
func (m *Model) Page() pages.Page { return m.page }

// Toasts returns the notification stack.
func (m *Model) Toasts() *components.ToastManager { return m.toasts }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.page.Init(), components.ToastTickCmd(), session.TickCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.overlay.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m.gate.Touch()
		if m.overlay.IsVisible() {
			m.overlay.Hide()
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			m.page.Close()
			return m, tea.Quit
		case "ctrl+x":
			m.toasts.DismissNewest()
			return m, nil
		case "f2", "f3":
			if !m.gate.Authenticated() {
				to := route.Login
				if msg.String() == "f3" {
					to = route.Register
				}
				m.nav.NavigateTo(route.To(to))
				break
			}
			cmds = append(cmds, m.page.Update(msg))
		default:
			cmds = append(cmds, m.page.Update(msg))
		}

	case components.ToastTickMsg:
		m.toasts.Tick()
		cmds = append(cmds, components.ToastTickCmd())

	case session.TickMsg:
		cmds = append(cmds, m.gate.HandleTick())

	case session.TimeoutWarningMsg:
		m.overlay.Show(msg.Remaining)

	case session.TimeoutMsg:
		m.overlay.Hide()
		m.toasts.Add(components.ToastKindWarning, TitleSessionExpired, DescSessionExpired, components.ErrorToastDuration)
		m.nav.NavigateTo(route.To(route.Login))

	default:
		cmds = append(cmds, m.page.Update(msg))
	}

	cmds = append(cmds, m.applyNavigation())
	return m, tea.Batch(cmds...)
}

// applyNavigation applies queued navigations in order.
func (m *Model) applyNavigation() tea.Cmd {
	var cmds []tea.Cmd
	for _, loc := range m.nav.drain() {
		cmds = append(cmds, m.show(loc))
	}
	return tea.Batch(cmds...)
}

// show replaces the current page with the one for loc, after the gate has
// had its say.
func (m *Model) show(loc route.Location) tea.Cmd {
	target, allowed := m.gate.Guard(loc)
	if !allowed {
		m.log.Info("navigation redirected", zap.Stringer("from", loc), zap.Stringer("to", target))
	}

	if m.page != nil {
		m.page.Close()
	}

	ctx := context.Background()
	if s, ok := m.gate.Current(); ok {
		ctx = session.WithSession(ctx, s)
		m.header.User = m.env.DisplayName(s)
	} else {
		m.header.User = ""
	}

	m.loc = target
	m.header.Active = target.Route
	m.page = pages.New(ctx, m.env, target)
	m.log.Debug("page shown", zap.Stringer("location", target))
	return m.page.Init()
}

// View implements tea.Model.
func (m *Model) View() string {
	m.header.Width = m.width
	m.footer.Width = m.width
	m.footer.Hints = append(m.page.Hints(), "ctrl+x dismiss")

	header := m.header.View()
	footer := m.footer.View()
	toasts := components.RenderToastStack(m.env.Theme, m.toasts.Toasts(), m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toasts != "" {
		bodyHeight -= lipgloss.Height(toasts)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.overlay.IsVisible() {
		m.overlay.SetSize(m.width, bodyHeight)
		body = m.overlay.View()
	} else {
		body = components.Place(m.width, bodyHeight, m.page.View(m.width))
	}

	parts := []string{header, body}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
