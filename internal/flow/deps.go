// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/authflow-tui/internal/audit"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// Settings tunes controller behavior.
type Settings struct {
	// RegisterMinPassword is the shortest password accepted at sign up.
	RegisterMinPassword int
	// ResetMinPassword is the shortest password accepted during reset.
	ResetMinPassword int
	// RedirectGrace delays the navigation after registration and reset so the
	// success message stays visible.
	RedirectGrace time.Duration
	// SubmitEvery and SubmitBurst throttle submissions per controller.
	// A zero SubmitBurst disables the throttle.
	SubmitEvery time.Duration
	SubmitBurst int
	// RequireResetToken rejects the reset form when the recovery link
	// carried no token.
	RequireResetToken bool
}

// DefaultSettings returns the standard flow settings.
func DefaultSettings() Settings {
	return Settings{
		RegisterMinPassword: validate.MinRegisterPassword,
		ResetMinPassword:    validate.MinResetPassword,
		RedirectGrace:       2 * time.Second,
		SubmitEvery:         time.Second,
		SubmitBurst:         5,
	}
}

func (s Settings) limiter() *rate.Limiter {
	if s.SubmitBurst <= 0 {
		return nil
	}
	limit := rate.Inf
	if s.SubmitEvery > 0 {
		limit = rate.Every(s.SubmitEvery)
	}
	return rate.NewLimiter(limit, s.SubmitBurst)
}

// Deps are the collaborators shared by all controllers.
type Deps struct {
	Backend   auth.Backend
	Gate      *session.Gate
	Navigator route.Navigator
	Notifier  Notifier
	Audit     *audit.Logger
	Logger    *zap.Logger
	Settings  Settings
}

// withDefaults fills optional collaborators with no-op versions.
func (d Deps) withDefaults() Deps {
	if d.Gate == nil {
		d.Gate = session.NewGate()
	}
	if d.Navigator == nil {
		d.Navigator = route.NavigatorFunc(func(route.Location) {})
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Settings == (Settings{}) {
		d.Settings = DefaultSettings()
	}
	return d
}
