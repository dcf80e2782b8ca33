// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/session"
)

// Notification text for sign out.
const (
	TitleLoggedOut = "Logged out"
	DescLoggedOut  = "You have been signed out."
)

// Dashboard is the controller behind the protected landing view.
type Dashboard struct {
	deps Deps
	log  *zap.Logger
}

// NewDashboard returns a dashboard controller.
func NewDashboard(deps Deps) *Dashboard {
	deps = deps.withDefaults()
	return &Dashboard{deps: deps, log: deps.Logger.Named("flow").With(zap.String("flow", "dashboard"))}
}

// Session returns the active session.
func (d *Dashboard) Session() (*session.Session, bool) {
	return d.deps.Gate.Current()
}

// Logout closes the session and returns to the login view.
func (d *Dashboard) Logout() {
	s := d.deps.Gate.Close()
	if s == nil {
		d.log.Debug("logout without session")
	}
	d.deps.Notifier.Notify(NoticeSuccess, TitleLoggedOut, DescLoggedOut)
	d.deps.Navigator.NavigateTo(route.To(route.Login))
}
