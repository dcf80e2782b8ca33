// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/ui/components"
	"github.com/jeranaias/authflow-tui/internal/ui/pages"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

func newShell(t *testing.T, start route.Location, gate *session.Gate) *Model {
	t.Helper()
	settings := flow.DefaultSettings()
	settings.RedirectGrace = time.Millisecond
	return New(Options{
		Theme: styles.NewTheme("dark", true),
		Deps: flow.Deps{
			Backend:  auth.NewSimulator(auth.WithLatency(auth.Latency{})),
			Gate:     gate,
			Settings: settings,
		},
		Providers: auth.Providers,
		Names:     map[string]string{auth.DefaultDemoEmail: "Demo User"},
		Start:     start,
	})
}

// send delivers msg and runs every resulting command to completion.
func send(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	flow.Run(cmd, func(msg tea.Msg) tea.Cmd {
		_, next := m.Update(msg)
		return next
	})
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestShell_StartsAtRegister(t *testing.T) {
	m := newShell(t, route.Location{}, session.NewGate())
	assert.Equal(t, route.Register, m.Location().Route)
	assert.IsType(t, &pages.Register{}, m.Page())
}

func TestShell_GuardRedirectsAnonymousDashboard(t *testing.T) {
	m := newShell(t, route.To(route.Dashboard), session.NewGate())
	assert.Equal(t, route.Login, m.Location().Route)
}

func TestShell_LoginReachesDashboard(t *testing.T) {
	gate := session.NewGate()
	m := newShell(t, route.To(route.Login), gate)
	m.Page().Init()

	typeText(m, auth.DefaultDemoEmail)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, auth.DefaultDemoPassword)
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, gate.Authenticated())
	assert.Equal(t, route.Dashboard, m.Location().Route)

	view := m.View()
	assert.Contains(t, view, "Demo User")
	assert.Contains(t, view, flow.TitleLoginSucceeded)

	// Log out from the dashboard.
	send(m, tea.KeyMsg{Type: tea.KeyF5})
	assert.False(t, gate.Authenticated())
	assert.Equal(t, route.Login, m.Location().Route)
}

func TestShell_OldPageClosedOnNavigation(t *testing.T) {
	m := newShell(t, route.To(route.Login), session.NewGate())
	login := m.Page().(*pages.Login)

	send(m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, route.Register, m.Location().Route)
	assert.True(t, login.Controller().Closed())
}

func TestShell_HeaderNavIgnoredWhenSignedIn(t *testing.T) {
	gate := session.NewGate()
	_, err := gate.Open("Demo User", session.MethodPassword, false)
	require.NoError(t, err)

	m := newShell(t, route.To(route.Dashboard), gate)
	require.Equal(t, route.Dashboard, m.Location().Route)

	send(m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, route.Dashboard, m.Location().Route)
}

func TestShell_SessionTimeout(t *testing.T) {
	gate := session.NewGate()
	_, err := gate.Open("Demo User", session.MethodPassword, false)
	require.NoError(t, err)
	m := newShell(t, route.To(route.Dashboard), gate)

	m.Update(session.TimeoutWarningMsg{Remaining: 30 * time.Second})
	assert.Contains(t, m.View(), "Session Timeout Warning")

	// Any key dismisses the warning.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NotContains(t, m.View(), "Session Timeout Warning")

	gate.Close()
	m.Update(session.TimeoutMsg{})
	assert.Equal(t, route.Login, m.Location().Route)

	toasts := m.Toasts().Toasts()
	require.NotEmpty(t, toasts)
	assert.Equal(t, TitleSessionExpired, toasts[0].Title)
	assert.Equal(t, components.ToastKindWarning, toasts[0].Kind)
}

func TestShell_QuitClosesPage(t *testing.T) {
	m := newShell(t, route.To(route.Login), session.NewGate())
	login := m.Page().(*pages.Login)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, login.Controller().Closed())
}

func TestShell_WindowSize(t *testing.T) {
	m := newShell(t, route.To(route.Login), session.NewGate())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotEmpty(t, m.View())
}
