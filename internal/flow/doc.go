// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flow implements the authentication flow controllers.
//
// Each controller (Login, Register, ForgotPassword, ResetPassword, Dashboard)
// is a small state machine:
//
//	Idle -> Submitting -> Succeeded | Failed -> Idle (on the next edit)
//
// # Submission Protocol
//
// Submit validates the form synchronously. Invalid input moves the controller
// straight to Failed without touching the backend. Valid input moves it to
// Submitting and returns a tea.Cmd that performs the backend call. The
// message that command produces must be handed back to the controller's
// Update, which applies the result: notify, open the session gate, navigate.
//
//	cmd := login.Submit()
//	// ... Bubble Tea runs cmd and delivers its message ...
//	next := login.Update(msg)
//
// Outside a Bubble Tea program, Run drives the same loop synchronously.
//
// # Lifetime
//
// A controller owns a context that ends with Close. In-flight calls are
// cancelled, and any result or delayed navigation that still arrives is
// dropped instead of applied.
//
// # Failures
//
// Failures are data, never panics: the Failed state carries the message shown
// inline and an error that matches ErrValidation, ErrThrottled or one of the
// auth sentinel errors under errors.Is.
package flow
