// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/route"
)

// =============================================================================
// SESSION
// =============================================================================

// Method records how the session was opened.
type Method string

const (
	MethodPassword Method = "password"
	MethodGoogle   Method = "google"
	MethodGitHub   Method = "github"
)

// Session is an authenticated presence in the UI.
type Session struct {
	ID        string
	Subject   string
	Method    Method
	StartedAt time.Time

	// RememberMe is the hint captured on the login form. It is stored for
	// display only and does not change the session lifetime.
	RememberMe bool
}

// DisplayName returns the name shown in the dashboard header.
func (s *Session) DisplayName() string {
	if s == nil || s.Subject == "" {
		return "Guest"
	}
	return s.Subject
}

// ErrAlreadyOpen is returned by Open when a session is already active.
var ErrAlreadyOpen = errors.New("session already open")

// =============================================================================
// GATE
// =============================================================================

// Gate tracks whether the user is authenticated.
type Gate struct {
	mu sync.Mutex

	current      *Session
	lastActivity time.Time
	warningShown bool

	idleTimeout   time.Duration // 0 disables the idle timeout
	warningBefore time.Duration

	now    func() time.Time
	audit  *audit.Logger
	logger *zap.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithIdleTimeout closes the session after d without activity. Zero disables.
func WithIdleTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.idleTimeout = d
		}
	}
}

// WithWarningBefore sets how long before the idle timeout a warning is sent.
func WithWarningBefore(d time.Duration) Option {
	return func(g *Gate) {
		g.warningBefore = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithAudit records session start and end events.
func WithAudit(a *audit.Logger) Option {
	return func(g *Gate) {
		g.audit = a
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGate returns a closed gate.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		warningBefore: 2 * time.Minute,
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named("session")
	return g
}

// Open authenticates subject and returns the new session.
func (g *Gate) Open(subject string, method Method, rememberMe bool) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.expireLocked()
	if g.current != nil {
		return nil, ErrAlreadyOpen
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := g.now()
	s := &Session{
		ID:         id.String(),
		Subject:    subject,
		Method:     method,
		StartedAt:  now,
		RememberMe: rememberMe,
	}
	g.current = s
	g.lastActivity = now
	g.warningShown = false

	g.audit.Log(audit.Event{
		Type:      audit.EventSessionStart,
		SessionID: s.ID,
		Success:   true,
		Metadata: map[string]string{
			"method":      string(method),
			"subject":     audit.MaskIdentifier(subject),
			"remember_me": fmt.Sprint(rememberMe),
		},
	})
	g.logger.Debug("session opened", zap.String("session_id", s.ID), zap.String("method", string(method)))
	return s, nil
}

// Close ends the current session and returns it, or nil if none was open.
func (g *Gate) Close() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.current
	g.current = nil
	if s != nil {
		g.audit.Log(audit.Event{Type: audit.EventSessionEnd, SessionID: s.ID, Success: true})
		g.logger.Debug("session closed", zap.String("session_id", s.ID))
	}
	return s
}

// Current returns the active session.
func (g *Gate) Current() (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expireLocked()
	return g.current, g.current != nil
}

// Authenticated reports whether a session is active.
func (g *Gate) Authenticated() bool {
	_, ok := g.Current()
	return ok
}

// Touch records user activity, pushing back the idle timeout.
func (g *Gate) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil {
		g.lastActivity = g.now()
		g.warningShown = false
	}
}

// Remaining returns the time left before the idle timeout. It is zero when
// no session is open or the idle timeout is disabled.
func (g *Gate) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil || g.idleTimeout == 0 {
		return 0
	}
	remaining := g.idleTimeout - g.now().Sub(g.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Guard returns where the user should actually land when asking for loc.
// Protected routes redirect to the login view while the gate is closed.
func (g *Gate) Guard(loc route.Location) (route.Location, bool) {
	if loc.Route.Protected() && !g.Authenticated() {
		return route.To(route.Login), false
	}
	return loc, true
}

// expireLocked closes an idle session. Caller holds g.mu.
func (g *Gate) expireLocked() {
	if g.current == nil || g.idleTimeout == 0 {
		return
	}
	if g.now().Sub(g.lastActivity) < g.idleTimeout {
		return
	}
	g.audit.Log(audit.Event{Type: audit.EventSessionTimeout, SessionID: g.current.ID, Success: true})
	g.logger.Info("session timed out", zap.String("session_id", g.current.ID))
	g.current = nil
}

// =============================================================================
// CONTEXT PROPAGATION
// =============================================================================

type ctxKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check the idle timeout.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg indicates the session is about to time out.
type TimeoutWarningMsg struct {
	Remaining time.Duration
}

// TimeoutMsg indicates the session timed out and the gate is closed.
type TimeoutMsg struct{}

// TickCmd returns a command that ticks once a second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick evaluates the idle timeout and schedules the next tick.
func (g *Gate) HandleTick() tea.Cmd {
	if g.idleTimeout == 0 {
		return nil
	}

	g.mu.Lock()
	var msg tea.Msg
	if g.current != nil {
		idle := g.now().Sub(g.lastActivity)
		switch {
		case idle >= g.idleTimeout:
			g.expireLocked()
			msg = TimeoutMsg{}
		case !g.warningShown && idle >= g.idleTimeout-g.warningBefore:
			g.warningShown = true
			msg = TimeoutWarningMsg{Remaining: g.idleTimeout - idle}
		}
	}
	g.mu.Unlock()

	if msg == nil {
		return TickCmd()
	}
	return tea.Batch(func() tea.Msg { return msg }, TickCmd())
}

// =============================================================================
// HELPERS
// =============================================================================

// FormatDuration returns a short human-readable duration.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}
