// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the gate between anonymous and authenticated
// views.
//
// # Gate
//
// A Gate holds at most one Session. Flows open it after a successful login
// and the dashboard closes it on logout. Nothing is persisted: the gate lives
// as long as the process.
//
//	gate := session.NewGate(session.WithIdleTimeout(15 * time.Minute))
//	s, err := gate.Open("user@example.com", session.MethodPassword, false)
//	...
//	gate.Close()
//
// The gate is a UI gate, not a security boundary. A deployment with a real
// backend must back it with a server-verified token.
//
// # Protected Views
//
// Guard redirects protected routes to the login view while the gate is
// closed. Views that need the session receive it explicitly, either as a
// value or through a context built with WithSession.
//
// # Idle Timeout
//
// With an idle timeout configured, HandleTick reports TimeoutWarningMsg and
// TimeoutMsg to the Bubble Tea program, and Current treats an idle session as
// closed.
package session
