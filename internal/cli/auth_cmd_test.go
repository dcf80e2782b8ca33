// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authflow-tui/internal/app"
	"github.com/jeranaias/authflow-tui/internal/config"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// scripted answers prompts from a fixed list, then aborts.
type scripted struct {
	answers []string
	prompts []string
}

func (s *scripted) next(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", liner.ErrPromptAborted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scripted) Prompt(p string) (string, error)         { return s.next(p) }
func (s *scripted) PasswordPrompt(p string) (string, error) { return s.next(p) }

type runnerHarness struct {
	app    *app.App
	out    *bytes.Buffer
	prompt *scripted
	runner *Runner
}

func newRunner(t *testing.T, outcome string, answers ...string) *runnerHarness {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.LoginLatencyMs = 1
	cfg.Auth.SocialLatencyMs = 1
	cfg.Auth.RegisterLatencyMs = 1
	cfg.Auth.ResetRequestLatencyMs = 1
	cfg.Auth.ResetLatencyMs = 1
	cfg.Auth.RegistrationOutcome = outcome
	cfg.Log.Disabled = true

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	h := &runnerHarness{app: a, out: &bytes.Buffer{}, prompt: &scripted{answers: answers}}
	h.runner = NewRunner(a, h.prompt, h.out)
	return h
}

func (h *runnerHarness) landed(t *testing.T) route.Location {
	t.Helper()
	loc, ok := h.runner.Landed()
	require.True(t, ok, "flow did not navigate")
	return loc
}

func TestRunner_LoginDemoAccount(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "user@example.com", "password123")

	require.NoError(t, h.runner.Login(Args{Remember: true}))

	assert.Equal(t, route.Dashboard, h.landed(t).Route)
	assert.True(t, h.app.Gate.Authenticated())
	s, _ := h.app.Gate.Current()
	assert.True(t, s.RememberMe)

	out := h.out.String()
	assert.Contains(t, out, flow.TitleLoginSucceeded)
	assert.Contains(t, out, "Welcome back, Demo User!")
	assert.Contains(t, out, "Remember me")
	assert.Equal(t, []string{"Email: ", "Password: "}, h.prompt.prompts)
}

func TestRunner_LoginEmailFromFlag(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "password123")

	require.NoError(t, h.runner.Login(Args{Email: "user@example.com"}))
	assert.Equal(t, []string{"Password: "}, h.prompt.prompts)
}

func TestRunner_LoginRejected(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "user@example.com", "wrong-password")

	err := h.runner.Login(Args{})
	require.Error(t, err)
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.False(t, h.app.Gate.Authenticated())
	_, navigated := h.runner.Landed()
	assert.False(t, navigated)

	// The notification already told the user; main prints nothing more.
	assert.Contains(t, h.out.String(), flow.TitleLoginFailed)
	var shown bytes.Buffer
	DisplayError(&shown, err)
	assert.Empty(t, shown.String())
}

func TestRunner_LoginRepromptsInvalidInput(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways,
		"not-an-email", "whatever",
		"user@example.com", "password123",
	)

	require.NoError(t, h.runner.Login(Args{}))
	assert.Contains(t, h.out.String(), validate.MsgEmailInvalid)
	assert.Len(t, h.prompt.prompts, 4)
}

func TestRunner_LoginKeepsEmailWhenPasswordMissing(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "user@example.com", "", "password123")

	require.NoError(t, h.runner.Login(Args{}))
	assert.Equal(t, []string{"Email: ", "Password: ", "Password: "}, h.prompt.prompts)
}

func TestRunner_LoginGivesUpAfterMaxAttempts(t *testing.T) {
	var answers []string
	for i := 0; i < MaxAttempts; i++ {
		answers = append(answers, "bad", "x")
	}
	h := newRunner(t, config.OutcomeAlways, answers...)

	err := h.runner.Login(Args{})
	require.Error(t, err)
	assert.ErrorIs(t, err, flow.ErrValidation)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	var shown bytes.Buffer
	DisplayError(&shown, err)
	assert.Contains(t, shown.String(), validate.MsgEmailInvalid)
}

func TestRunner_LoginAborted(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways)

	err := h.runner.Login(Args{})
	require.ErrorIs(t, err, liner.ErrPromptAborted)
	assert.Equal(t, ExitInterrupted, GetExitCode(err))
}

func TestRunner_SocialLogin(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways)

	require.NoError(t, h.runner.Login(Args{Provider: "github"}))

	s, ok := h.app.Gate.Current()
	require.True(t, ok)
	assert.Equal(t, session.MethodGitHub, s.Method)
	assert.Contains(t, h.out.String(), "Connecting to GitHub")
	assert.Empty(t, h.prompt.prompts)
}

func TestRunner_SocialLoginUnknownProvider(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways)

	err := h.runner.Login(Args{Provider: "myspace"})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.False(t, h.app.Gate.Authenticated())
}

func TestRunner_QuietLogin(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "user@example.com", "password123")
	h.runner.SetQuiet(true)

	require.NoError(t, h.runner.Login(Args{}))
	assert.Empty(t, h.out.String())
}

func TestRunner_Register(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "new@example.com", "secret1", "secret1")

	require.NoError(t, h.runner.Register(Args{}))

	assert.Equal(t, route.Login, h.landed(t).Route)
	assert.Contains(t, h.out.String(), flow.TitleRegistered)
	assert.Contains(t, h.out.String(), "authflow login --email new@example.com")
	assert.False(t, h.app.Gate.Authenticated())
}

func TestRunner_RegisterMismatchReprompts(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways,
		"new@example.com", "secret1", "secret2",
		"secret1", "secret1",
	)

	require.NoError(t, h.runner.Register(Args{}))
	assert.Contains(t, h.out.String(), validate.MsgPasswordMismatch)
	// The address is kept for the second attempt.
	assert.Equal(t, "Password: ", h.prompt.prompts[3])
}

func TestRunner_RegisterFailure(t *testing.T) {
	h := newRunner(t, config.OutcomeNever, "new@example.com", "secret1", "secret1")

	err := h.runner.Register(Args{})
	require.Error(t, err)
	assert.Equal(t, ExitAuthError, GetExitCode(err))
	assert.Contains(t, h.out.String(), flow.TitleRegistrationFailed)
	_, navigated := h.runner.Landed()
	assert.False(t, navigated)
}

func TestRunner_Forgot(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "someone@example.com")

	require.NoError(t, h.runner.Forgot(Args{}))

	loc := h.landed(t)
	assert.Equal(t, route.ForgotPassword, loc.Route)
	assert.Equal(t, route.StatusSent, loc.Get(route.QueryStatus))
	assert.Contains(t, h.out.String(), flow.TitleResetLinkSent)
	assert.Contains(t, h.out.String(), "authflow reset --link")
}

func TestRunner_ResetWithLink(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "newpass123", "newpass123")

	require.NoError(t, h.runner.Reset(Args{Link: "/reset-password?token=abc123"}))

	assert.Equal(t, route.Login, h.landed(t).Route)
	assert.Contains(t, h.out.String(), flow.TitlePasswordReset)
	assert.NotContains(t, h.out.String(), "no reset token")
}

func TestRunner_ResetWithoutToken(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "newpass123", "newpass123")

	require.NoError(t, h.runner.Reset(Args{}))
	assert.Contains(t, h.out.String(), "This link has no reset token.")
}

func TestRunner_ResetShortPasswordReprompts(t *testing.T) {
	h := newRunner(t, config.OutcomeAlways, "short", "short", "newpass123", "newpass123")

	require.NoError(t, h.runner.Reset(Args{Token: "abc"}))
	assert.Len(t, h.prompt.prompts, 4)
}

func TestResetLocation(t *testing.T) {
	loc, err := ResetLocation(Args{Token: "abc"})
	require.NoError(t, err)
	assert.Equal(t, route.ResetPassword, loc.Route)
	assert.Equal(t, "abc", loc.Token())

	loc, err = ResetLocation(Args{Link: "https://auth.example.com/reset-password?token=xyz"})
	require.NoError(t, err)
	assert.Equal(t, "xyz", loc.Token())

	loc, err = ResetLocation(Args{Link: "/reset-password?token=xyz", Token: "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", loc.Token())

	_, err = ResetLocation(Args{Link: "/login"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a password reset link")
}
