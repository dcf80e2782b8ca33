// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app assembles the runtime from configuration: logging, the audit
// trail, the simulated backend, the session gate and the flow dependencies.
// Both the TUI and the line-mode commands start here.
package app

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/config"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/logging"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
)

// App holds the long-lived collaborators.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Audit   *audit.Logger
	Backend auth.Backend
	Gate    *session.Gate
}

// Option configures New.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	backend auth.Backend
}

// WithLogger uses l instead of building a logger from the config.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBackend replaces the simulator.
func WithBackend(b auth.Backend) Option {
	return func(o *options) { o.backend = b }
}

// New builds the runtime described by cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = newLogger(cfg)
		if err != nil {
			return nil, err
		}
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		Audit:  audit.New(logger),
	}

	a.Backend = o.backend
	if a.Backend == nil {
		a.Backend = auth.NewSimulator(
			auth.WithDemoAccount(cfg.Auth.DemoEmail, cfg.Auth.DemoPassword),
			auth.WithLatency(Latency(cfg.Auth)),
			auth.WithOutcomePolicy(Policy(cfg.Auth)),
			auth.WithLogger(logger),
		)
	}

	a.Gate = session.NewGate(
		session.WithIdleTimeout(cfg.Session.IdleTimeout()),
		session.WithWarningBefore(cfg.Session.Warning()),
		session.WithAudit(a.Audit),
		session.WithLogger(logger),
	)

	logger.Info("runtime ready",
		zap.String("demo_account", audit.MaskIdentifier(cfg.Auth.DemoEmail)),
		zap.String("registration_outcome", cfg.Auth.RegistrationOutcome),
		zap.Duration("idle_timeout", cfg.Session.IdleTimeout()),
	)
	return a, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Disabled {
		return zap.NewNop(), nil
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: path})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// Latency converts the configured delays.
func Latency(c config.AuthConfig) auth.Latency {
	return auth.Latency{
		Login:        ms(c.LoginLatencyMs),
		Social:       ms(c.SocialLatencyMs),
		Register:     ms(c.RegisterLatencyMs),
		ResetRequest: ms(c.ResetRequestLatencyMs),
		Reset:        ms(c.ResetLatencyMs),
	}
}

// Policy returns the registration outcome strategy for c.
func Policy(c config.AuthConfig) auth.OutcomePolicy {
	switch c.RegistrationOutcome {
	case config.OutcomeAlways:
		return auth.FixedPolicy(true)
	case config.OutcomeNever:
		return auth.FixedPolicy(false)
	default:
		return auth.NewRandomPolicy(c.RegistrationSuccessRate, c.Seed)
	}
}

// Settings converts the [flow] section.
func Settings(c config.FlowConfig) flow.Settings {
	return flow.Settings{
		RegisterMinPassword: c.RegisterMinPassword,
		ResetMinPassword:    c.ResetMinPassword,
		RedirectGrace:       c.RedirectGrace(),
		SubmitEvery:         c.SubmitInterval(),
		SubmitBurst:         c.SubmitBurst,
		RequireResetToken:   c.RequireResetToken,
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Providers returns the social providers to offer, in configured order.
// Unknown names are skipped.
func (a *App) Providers() []auth.Provider {
	out := make([]auth.Provider, 0, len(a.Config.UI.Providers))
	for _, name := range a.Config.UI.Providers {
		if p := auth.Provider(name); p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Names maps the demo account to its display name.
func (a *App) Names() map[string]string {
	return map[string]string{a.Config.Auth.DemoEmail: a.Config.Auth.DemoName}
}

// Deps returns the flow dependencies with the given sinks.
func (a *App) Deps(nav route.Navigator, n flow.Notifier) flow.Deps {
	return flow.Deps{
		Backend:   a.Backend,
		Gate:      a.Gate,
		Navigator: nav,
		Notifier:  n,
		Audit:     a.Audit,
		Logger:    a.Logger,
		Settings:  Settings(a.Config.Flow),
	}
}

// Close flushes the logger.
func (a *App) Close() error {
	err := a.Logger.Sync()
	// Sync on a terminal or pipe reports EINVAL or ENOTTY.
	if err != nil && (errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)) {
		return nil
	}
	return err
}
