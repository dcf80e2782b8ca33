// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantSimulator(opts ...Option) *Simulator {
	return NewSimulator(append([]Option{WithLatency(Latency{})}, opts...)...)
}

func TestSimulator_LoginDemoAccount(t *testing.T) {
	sim := instantSimulator()

	res, err := sim.Login(context.Background(), Credentials{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
}

func TestSimulator_LoginRejectsEverythingElse(t *testing.T) {
	sim := instantSimulator()
	pairs := []Credentials{
		{Email: "user@example.com", Password: "password124"},
		{Email: "User@example.com", Password: "password123"},
		{Email: "user@example.com ", Password: "password123"},
		{Email: "other@example.com", Password: "password123"},
		{Email: "", Password: ""},
		{Email: "password123", Password: "user@example.com"},
	}

	for _, creds := range pairs {
		res, err := sim.Login(context.Background(), creds)
		require.NoError(t, err)
		assert.False(t, res.OK(), "%+v should be rejected", creds)
		assert.True(t, errors.Is(res.Err(), ErrInvalidCredentials))
		assert.Equal(t, FailureInvalidCredentials, res.Kind())
		assert.Equal(t, MsgInvalidCredentials, res.Reason())
	}
}

func TestSimulator_CustomDemoAccount(t *testing.T) {
	sim := instantSimulator(WithDemoAccount("a@b.co", "hunter22"))

	res, err := sim.Login(context.Background(), Credentials{Email: "a@b.co", Password: "hunter22"})
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = sim.Login(context.Background(), Credentials{Email: DefaultDemoEmail, Password: DefaultDemoPassword})
	require.NoError(t, err)
	assert.False(t, res.OK())
}

func TestSimulator_SocialLoginAlwaysSucceeds(t *testing.T) {
	sim := instantSimulator()
	for _, p := range Providers {
		res, err := sim.SocialLogin(context.Background(), p)
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Contains(t, res.Message(), p.DisplayName())
	}
}

func TestSimulator_RegisterFollowsPolicy(t *testing.T) {
	req := RegistrationRequest{Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1"}

	res, err := instantSimulator(WithOutcomePolicy(FixedPolicy(true))).Register(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = instantSimulator(WithOutcomePolicy(FixedPolicy(false))).Register(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.True(t, errors.Is(res.Err(), ErrRegistrationFailed))
	assert.Equal(t, MsgRegistrationFailed, res.Reason())
}

func TestSimulator_ResetRequestDoesNotEnumerate(t *testing.T) {
	sim := instantSimulator()
	emails := []string{DefaultDemoEmail, "nobody@example.com", "x@y.zz", "admin@corp.internal"}

	var messages []string
	for _, email := range emails {
		res, err := sim.RequestPasswordReset(context.Background(), email)
		require.NoError(t, err)
		require.True(t, res.OK())
		messages = append(messages, res.Message())
	}
	for _, msg := range messages {
		assert.Equal(t, MsgResetLinkSent, msg)
	}
}

func TestSimulator_ResetPasswordSucceeds(t *testing.T) {
	sim := instantSimulator()

	res, err := sim.ResetPassword(context.Background(), ResetRequest{NewPassword: "longenough", ConfirmPassword: "longenough"})
	require.NoError(t, err)
	assert.True(t, res.OK())

	res, err = sim.ResetPassword(context.Background(), ResetRequest{Token: "abc", NewPassword: "x", ConfirmPassword: "y"})
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestSimulator_HonorsLatency(t *testing.T) {
	sim := NewSimulator(WithLatency(Latency{Login: 30 * time.Millisecond}))

	start := time.Now()
	_, err := sim.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSimulator_Cancellation(t *testing.T) {
	sim := NewSimulator(WithLatency(Latency{Register: time.Hour}))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := sim.Register(ctx, RegistrationRequest{})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Register did not return after cancel")
	}
}

func TestSimulator_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := instantSimulator().Login(ctx, Credentials{Email: DefaultDemoEmail, Password: DefaultDemoPassword})
	assert.ErrorIs(t, err, context.Canceled)
}
