// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

func demoLogin(h *harness) *Login {
	c := NewLogin(h.deps)
	c.SetEmail(auth.DefaultDemoEmail)
	c.SetPassword(auth.DefaultDemoPassword)
	return c
}

// =============================================================================
// PASSWORD LOGIN
// =============================================================================

func TestLogin_DemoCredentialsReachDashboard(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)
	assert.Equal(t, Idle, c.State().Phase)

	cmd := c.Submit()
	require.NotNil(t, cmd)
	assert.Equal(t, Submitting, c.State().Phase)
	assert.False(t, c.CanSubmit())

	Run(cmd, c.Update)

	assert.Equal(t, Succeeded, c.State().Phase)
	require.Len(t, h.rec.visits, 1)
	assert.Equal(t, route.Dashboard, h.rec.visits[0].Route)
	require.Len(t, h.rec.notices, 1)
	assert.Equal(t, notice{NoticeSuccess, TitleLoginSucceeded, DescToDashboard}, h.rec.notices[0])

	s, ok := h.gate.Current()
	require.True(t, ok)
	assert.Equal(t, auth.DefaultDemoEmail, s.Subject)
	assert.Equal(t, session.MethodPassword, s.Method)
	assert.Contains(t, h.auditEvents(), "LOGIN_SUCCESS")
}

func TestLogin_RejectedCredentialsStayOnForm(t *testing.T) {
	h := newHarness()
	h.backend.login = auth.Failed(auth.FailureInvalidCredentials, auth.MsgInvalidCredentials)
	c := demoLogin(h)

	Run(c.Submit(), c.Update)

	st := c.State()
	assert.Equal(t, Failed, st.Phase)
	assert.Equal(t, auth.MsgInvalidCredentials, st.Message)
	assert.ErrorIs(t, st.Err, auth.ErrInvalidCredentials)
	assert.Empty(t, h.rec.visits)
	require.Len(t, h.rec.notices, 1)
	assert.Equal(t, NoticeError, h.rec.notices[0].Kind)
	assert.Equal(t, TitleLoginFailed, h.rec.notices[0].Title)
	assert.False(t, h.gate.Authenticated())

	// Fields are kept.
	assert.Equal(t, auth.DefaultDemoEmail, c.Email())
	assert.Equal(t, auth.DefaultDemoPassword, c.Password())
	assert.Contains(t, h.auditEvents(), "LOGIN_FAILURE")
}

func TestLogin_ValidationSkipsBackend(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"empty email", "", "secret", validate.MsgEmailRequired},
		{"bad email", "user@", "secret", validate.MsgEmailInvalid},
		{"empty password", "user@example.com", "", validate.MsgPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			c := NewLogin(h.deps)
			c.SetEmail(tt.email)
			c.SetPassword(tt.password)

			assert.Nil(t, c.Submit())
			st := c.State()
			assert.Equal(t, Failed, st.Phase)
			assert.Equal(t, tt.want, st.Message)
			assert.ErrorIs(t, st.Err, ErrValidation)
			assert.Zero(t, h.backend.Calls("login"))
			assert.Empty(t, h.rec.notices)
		})
	}
}

func TestLogin_SubmitWhileSubmittingIsIgnored(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)

	cmd := c.Submit()
	require.NotNil(t, cmd)
	assert.Nil(t, c.Submit())
	assert.Nil(t, c.SocialLogin(auth.ProviderGoogle))

	Run(cmd, c.Update)
	assert.Equal(t, 1, h.backend.Calls("login"))
	assert.Zero(t, h.backend.Calls("social"))
}

func TestLogin_EditRearmsAfterFailure(t *testing.T) {
	h := newHarness()
	c := NewLogin(h.deps)
	c.Submit()
	require.Equal(t, Failed, c.State().Phase)

	c.SetEmail("someone@example.com")
	assert.Equal(t, Idle, c.State().Phase)
	assert.Empty(t, c.State().Message)
	assert.True(t, c.CanSubmit())
}

func TestLogin_EditsIgnoredWhileSubmitting(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)
	c.Submit()

	c.SetEmail("other@example.com")
	c.SetRememberMe(true)
	assert.Equal(t, auth.DefaultDemoEmail, c.Email())
	assert.False(t, c.RememberMe())
}

func TestLogin_TogglesDoNotRearm(t *testing.T) {
	h := newHarness()
	c := NewLogin(h.deps)
	assert.False(t, c.ShowPassword())
	c.ToggleShowPassword()
	assert.True(t, c.ShowPassword())
	c.ToggleShowPassword()
	assert.False(t, c.ShowPassword())
}

func TestLogin_RememberMeIsStoredOnSession(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)
	c.SetRememberMe(true)

	Run(c.Submit(), c.Update)

	s, ok := h.gate.Current()
	require.True(t, ok)
	assert.True(t, s.RememberMe)
}

func TestLogin_ReplacesExistingSession(t *testing.T) {
	h := newHarness()
	old, err := h.gate.Open("old@example.com", session.MethodPassword, false)
	require.NoError(t, err)

	c := demoLogin(h)
	Run(c.Submit(), c.Update)

	s, ok := h.gate.Current()
	require.True(t, ok)
	assert.NotEqual(t, old.ID, s.ID)
}

// =============================================================================
// SOCIAL LOGIN
// =============================================================================

func TestLogin_SocialSuccess(t *testing.T) {
	h := newHarness()
	c := NewLogin(h.deps)

	cmd := c.SocialLogin(auth.ProviderGitHub)
	require.NotNil(t, cmd)
	p, pending := c.SocialPending()
	assert.True(t, pending)
	assert.Equal(t, auth.ProviderGitHub, p)

	Run(cmd, c.Update)

	_, pending = c.SocialPending()
	assert.False(t, pending)
	assert.Equal(t, Succeeded, c.State().Phase)
	require.Len(t, h.rec.visits, 1)
	assert.Equal(t, route.Dashboard, h.rec.visits[0].Route)
	require.Len(t, h.rec.notices, 1)
	assert.Equal(t, "Successfully authenticated with GitHub!", h.rec.notices[0].Title)

	s, ok := h.gate.Current()
	require.True(t, ok)
	assert.Equal(t, session.MethodGitHub, s.Method)
	assert.Contains(t, h.auditEvents(), "SOCIAL_LOGIN")
}

func TestLogin_SocialFailureKinds(t *testing.T) {
	h := newHarness()
	h.backend.social = auth.Failed(auth.FailureProviderDenied, "Access was denied.")
	c := NewLogin(h.deps)

	Run(c.SocialLogin(auth.ProviderGoogle), c.Update)

	st := c.State()
	assert.Equal(t, Failed, st.Phase)
	assert.ErrorIs(t, st.Err, auth.ErrProviderDenied)
	assert.Empty(t, h.rec.visits)
	assert.False(t, h.gate.Authenticated())
	require.Len(t, h.rec.notices, 1)
	assert.Equal(t, "Google sign-in failed", h.rec.notices[0].Title)
}

func TestLogin_UnknownProviderRejectedLocally(t *testing.T) {
	h := newHarness()
	c := NewLogin(h.deps)

	assert.Nil(t, c.SocialLogin(auth.Provider("myspace")))
	assert.Equal(t, MsgUnknownProvider, c.State().Message)
	assert.Zero(t, h.backend.Calls("social"))
}

// =============================================================================
// LIFETIME
// =============================================================================

func TestLogin_ResultAfterCloseIsDropped(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)

	cmd := c.Submit()
	require.NotNil(t, cmd)
	c.Close()
	msg := cmd()
	assert.Nil(t, c.Update(msg))

	assert.Equal(t, Idle, c.State().Phase)
	assert.Empty(t, h.rec.visits)
	assert.Empty(t, h.rec.notices)
	assert.False(t, h.gate.Authenticated())
	assert.False(t, c.CanSubmit())
}

func TestLogin_CloseWhileSubmittingSettles(t *testing.T) {
	h := newHarness()
	c := demoLogin(h)

	cmd := c.Submit()
	require.NotNil(t, cmd)
	require.Equal(t, Submitting, c.State().Phase)
	c.Close()
	Run(cmd, c.Update)

	assert.NotEqual(t, Submitting, c.State().Phase)
	assert.Empty(t, h.rec.notices)
	assert.Empty(t, h.rec.visits)
	assert.True(t, c.Closed())

	// A second close changes nothing.
	c.Close()
	assert.Equal(t, Idle, c.State().Phase)
}

func TestLogin_ResultForOtherControllerIgnored(t *testing.T) {
	h := newHarness()
	a := demoLogin(h)
	b := demoLogin(h)

	msg := a.Submit()()
	b.Update(msg)
	assert.Equal(t, Idle, b.State().Phase)
	assert.Equal(t, Submitting, a.State().Phase)
}

func TestLogin_CloseCancelsInFlightCall(t *testing.T) {
	h := newHarness()
	sim := auth.NewSimulator(auth.WithLatency(auth.Latency{Login: time.Hour}))
	h.deps.Backend = sim
	c := demoLogin(h)

	cmd := c.Submit()
	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := cmd()
		r, ok := msg.(resultMsg)
		assert.True(t, ok)
		assert.ErrorIs(t, r.err, context.Canceled)
	}()
	c.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight call was not cancelled")
	}
}

func TestLogin_AbandonedCall(t *testing.T) {
	h := newHarness()
	h.backend.err = context.DeadlineExceeded
	c := demoLogin(h)

	Run(c.Submit(), c.Update)

	st := c.State()
	assert.Equal(t, Failed, st.Phase)
	assert.ErrorIs(t, st.Err, ErrAbandoned)
	assert.Empty(t, h.rec.visits)
	assert.True(t, c.CanSubmit())
}

func TestLogin_Throttle(t *testing.T) {
	h := newHarness()
	h.deps.Settings.SubmitBurst = 2
	h.deps.Settings.SubmitEvery = time.Hour
	h.backend.login = auth.Failed(auth.FailureInvalidCredentials, auth.MsgInvalidCredentials)
	c := demoLogin(h)

	Run(c.Submit(), c.Update)
	Run(c.Submit(), c.Update)
	assert.Nil(t, c.Submit())

	st := c.State()
	assert.Equal(t, Failed, st.Phase)
	assert.ErrorIs(t, st.Err, ErrThrottled)
	assert.Equal(t, MsgThrottled, st.Message)
	assert.Equal(t, 2, h.backend.Calls("login"))
}
