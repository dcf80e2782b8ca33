// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth defines the authentication backend contract and a local
// simulator that satisfies it.
//
// # Backend Contract
//
// Backend is what the flow controllers talk to. Every outcome, success or
// rejection, is reported as a Result; the error return is reserved for calls
// that were abandoned because their context ended. A real service can replace
// the Simulator without touching the flows as long as it maps its own failure
// modes onto the FailureKind values (invalid credentials, provider denial,
// network trouble, OAuth state mismatch, ...).
//
// # Simulator
//
// The Simulator waits an artificial latency before answering:
//
//	sim := auth.NewSimulator(
//	    auth.WithDemoAccount("user@example.com", "password123"),
//	    auth.WithOutcomePolicy(auth.FixedPolicy(true)),
//	)
//	res, err := sim.Login(ctx, auth.Credentials{Email: e, Password: p})
//
// Registration outcomes come from an OutcomePolicy so tests can choose them;
// the default RandomPolicy succeeds 80% of the time.
package auth
