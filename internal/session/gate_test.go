// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/route"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// =============================================================================
// GATE TESTS
// =============================================================================

func TestGate_StartsClosed(t *testing.T) {
	g := NewGate()
	assert.False(t, g.Authenticated())
	s, ok := g.Current()
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Nil(t, g.Close())
}

func TestGate_OpenClose(t *testing.T) {
	g := NewGate()

	s, err := g.Open("user@example.com", MethodPassword, true)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "user@example.com", s.Subject)
	assert.Equal(t, MethodPassword, s.Method)
	assert.True(t, s.RememberMe)
	assert.True(t, g.Authenticated())

	cur, ok := g.Current()
	require.True(t, ok)
	assert.Same(t, s, cur)

	closed := g.Close()
	assert.Same(t, s, closed)
	assert.False(t, g.Authenticated())
}

func TestGate_OpenTwice(t *testing.T) {
	g := NewGate()
	_, err := g.Open("a@b.co", MethodPassword, false)
	require.NoError(t, err)

	_, err = g.Open("a@b.co", MethodGoogle, false)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestGate_UniqueIDs(t *testing.T) {
	g := NewGate()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := g.Open("a@b.co", MethodPassword, false)
		require.NoError(t, err)
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
		g.Close()
	}
}

func TestGate_Guard(t *testing.T) {
	g := NewGate()

	loc, ok := g.Guard(route.To(route.Dashboard))
	assert.False(t, ok)
	assert.Equal(t, route.Login, loc.Route)

	loc, ok = g.Guard(route.To(route.ForgotPassword))
	assert.True(t, ok)
	assert.Equal(t, route.ForgotPassword, loc.Route)

	_, err := g.Open("a@b.co", MethodGitHub, false)
	require.NoError(t, err)
	loc, ok = g.Guard(route.To(route.Dashboard))
	assert.True(t, ok)
	assert.Equal(t, route.Dashboard, loc.Route)
}

func TestGate_IdleTimeout(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(WithIdleTimeout(10*time.Minute), WithClock(clock.Now))

	_, err := g.Open("a@b.co", MethodPassword, false)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, g.Remaining())

	clock.Advance(6 * time.Minute)
	g.Touch()
	clock.Advance(6 * time.Minute)
	assert.True(t, g.Authenticated(), "touch should push back the timeout")
	assert.Equal(t, 4*time.Minute, g.Remaining())

	clock.Advance(5 * time.Minute)
	assert.False(t, g.Authenticated())
	assert.Equal(t, time.Duration(0), g.Remaining())

	// An expired session does not block a new one.
	_, err = g.Open("a@b.co", MethodPassword, false)
	assert.NoError(t, err)
}

func TestGate_NoTimeoutByDefault(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(WithClock(clock.Now))
	_, err := g.Open("a@b.co", MethodPassword, false)
	require.NoError(t, err)

	clock.Advance(1000 * time.Hour)
	assert.True(t, g.Authenticated())
	assert.Nil(t, g.HandleTick())
}

func TestGate_HandleTickWarnsThenTimesOut(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(WithIdleTimeout(10*time.Minute), WithWarningBefore(2*time.Minute), WithClock(clock.Now))
	_, err := g.Open("a@b.co", MethodPassword, false)
	require.NoError(t, err)

	// Still active, no warning: only the next tick is scheduled.
	require.NotNil(t, g.HandleTick())
	assert.False(t, g.warningShown)

	clock.Advance(8*time.Minute + time.Second)
	require.NotNil(t, g.HandleTick())
	assert.True(t, g.warningShown)
	assert.True(t, g.Authenticated())

	clock.Advance(2 * time.Minute)
	require.NotNil(t, g.HandleTick())
	assert.False(t, g.Authenticated())
}

func TestGate_AuditsLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGate(WithAudit(audit.New(zap.New(core))))

	_, err := g.Open("user@example.com", MethodPassword, false)
	require.NoError(t, err)
	g.Close()

	entries := logs.FilterLoggerName("audit").All()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.EventSessionStart, entries[0].ContextMap()["event_type"])
	assert.Equal(t, audit.EventSessionEnd, entries[1].ContextMap()["event_type"])
	assert.NotContains(t, entries[0].ContextMap()["subject"], "example.com")
}

// =============================================================================
// CONTEXT AND HELPERS
// =============================================================================

func TestContextPropagation(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := &Session{ID: "abc", Subject: "a@b.co"}
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = FromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, "Guest", nilSession.DisplayName())
	assert.Equal(t, "a@b.co", (&Session{Subject: "a@b.co"}).DisplayName())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "42s", FormatDuration(42*time.Second))
	assert.Equal(t, "3m", FormatDuration(3*time.Minute))
	assert.Equal(t, "3m 5s", FormatDuration(3*time.Minute+5*time.Second))
}
