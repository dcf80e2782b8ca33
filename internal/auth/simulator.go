// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/audit"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultDemoEmail    = "user@example.com"
	DefaultDemoPassword = "password123"
)

// Messages returned by the simulator.
const (
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgRegistrationFailed = "Registration failed. Please try again later or use a different email."
	MsgRegistered         = "Registration successful! Redirecting to login..."
	MsgLoggedIn           = "Login successful."
	MsgResetLinkSent      = "If an account with this email exists, a reset link has been sent."
	MsgPasswordReset      = "Your password has been updated successfully. Redirecting to login..."
)

// Latency holds the artificial delay of each operation.
type Latency struct {
	Login        time.Duration
	Social       time.Duration
	Register     time.Duration
	ResetRequest time.Duration
	Reset        time.Duration
}

// DefaultLatency mirrors the response times of the demo backend.
func DefaultLatency() Latency {
	return Latency{
		Login:        1500 * time.Millisecond,
		Social:       2000 * time.Millisecond,
		Register:     1500 * time.Millisecond,
		ResetRequest: 1500 * time.Millisecond,
		Reset:        2000 * time.Millisecond,
	}
}

// =============================================================================
// SIMULATOR
// =============================================================================

// Simulator is a local stand-in for an authentication service.
// It holds no mutable state of its own and is safe for concurrent use.
type Simulator struct {
	demo    Credentials
	latency Latency
	policy  OutcomePolicy
	logger  *zap.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDemoAccount sets the only credentials Login accepts.
func WithDemoAccount(email, password string) Option {
	return func(s *Simulator) {
		s.demo = Credentials{Email: email, Password: password}
	}
}

// WithLatency sets the artificial delays.
func WithLatency(l Latency) Option {
	return func(s *Simulator) {
		s.latency = l
	}
}

// WithOutcomePolicy sets the registration outcome strategy.
func WithOutcomePolicy(p OutcomePolicy) Option {
	return func(s *Simulator) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimulator returns a Simulator with the demo account, default latency and
// an 80% registration success rate unless overridden.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		demo:    Credentials{Email: DefaultDemoEmail, Password: DefaultDemoPassword},
		latency: DefaultLatency(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		s.policy = NewRandomPolicy(DefaultSuccessRate, 0)
	}
	s.logger = s.logger.Named("simulator")
	return s
}

var _ Backend = (*Simulator)(nil)

// Login succeeds only for the demo account.
func (s *Simulator) Login(ctx context.Context, creds Credentials) (Result, error) {
	if err := wait(ctx, s.latency.Login); err != nil {
		return Result{}, err
	}
	if creds.Email == s.demo.Email && creds.Password == s.demo.Password {
		s.logger.Debug("login accepted", zap.String("email", audit.MaskIdentifier(creds.Email)))
		return Success(MsgLoggedIn), nil
	}
	s.logger.Debug("login rejected", zap.String("email", audit.MaskIdentifier(creds.Email)))
	return Failed(FailureInvalidCredentials, MsgInvalidCredentials), nil
}

// SocialLogin always succeeds. A real implementation performs the OAuth code
// exchange here and may fail with FailureProviderDenied,
// FailureProviderUnavailable or FailureStateMismatch.
func (s *Simulator) SocialLogin(ctx context.Context, provider Provider) (Result, error) {
	s.logger.Debug("social login started", zap.String("provider", string(provider)))
	if err := wait(ctx, s.latency.Social); err != nil {
		return Result{}, err
	}
	return Success(fmt.Sprintf("Successfully authenticated with %s!", provider.DisplayName())), nil
}

// Register asks the outcome policy whether the sign up goes through.
func (s *Simulator) Register(ctx context.Context, req RegistrationRequest) (Result, error) {
	if err := wait(ctx, s.latency.Register); err != nil {
		return Result{}, err
	}
	if s.policy.RegistrationSucceeds(req) {
		return Success(MsgRegistered), nil
	}
	s.logger.Debug("registration rejected by policy", zap.String("email", audit.MaskIdentifier(req.Email)))
	return Failed(FailureRegistration, MsgRegistrationFailed), nil
}

// RequestPasswordReset always succeeds with the same message so callers learn
// nothing about whether the account exists.
func (s *Simulator) RequestPasswordReset(ctx context.Context, email string) (Result, error) {
	if err := wait(ctx, s.latency.ResetRequest); err != nil {
		return Result{}, err
	}
	s.logger.Debug("reset link requested", zap.String("email", audit.MaskIdentifier(email)))
	return Success(MsgResetLinkSent), nil
}

// ResetPassword always succeeds. The token is recorded but not checked.
func (s *Simulator) ResetPassword(ctx context.Context, req ResetRequest) (Result, error) {
	if err := wait(ctx, s.latency.Reset); err != nil {
		return Result{}, err
	}
	s.logger.Debug("password reset",
		zap.Bool("token_present", req.Token != ""),
		zap.String("token", audit.MaskIdentifier(req.Token)),
	)
	return Success(MsgPasswordReset), nil
}

// wait sleeps for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
