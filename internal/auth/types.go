// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Credentials is an email/password pair held only for one submission.
type Credentials struct {
	Email    string
	Password string
}

// RegistrationRequest carries a sign up attempt.
type RegistrationRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// ResetRequest carries a new password. Token comes from the recovery link and
// may be empty.
type ResetRequest struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// Provider identifies a social login provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{ProviderGoogle, ProviderGitHub}

// Valid reports whether p is a supported provider.
func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// DisplayName returns the provider's brand name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderGitHub:
		return "GitHub"
	default:
		return string(p)
	}
}

// =============================================================================
// FAILURES
// =============================================================================

// Sentinel errors for each failure kind.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrProviderDenied      = errors.New("provider denied access")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrStateMismatch       = errors.New("oauth state mismatch")
	ErrNetwork             = errors.New("network error")
	ErrRejected            = errors.New("request rejected")
)

// FailureKind classifies why the backend rejected a request.
type FailureKind int

const (
	// FailureRejected is a generic rejection.
	FailureRejected FailureKind = iota
	FailureInvalidCredentials
	FailureRegistration
	// FailureProviderDenied means the user declined consent at the provider.
	FailureProviderDenied
	// FailureProviderUnavailable means the provider could not be reached.
	FailureProviderUnavailable
	// FailureStateMismatch means the OAuth state token did not round-trip.
	FailureStateMismatch
	// FailureNetwork is a transport failure talking to the backend.
	FailureNetwork
)

// String returns a short name for the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureInvalidCredentials:
		return "invalid_credentials"
	case FailureRegistration:
		return "registration_failed"
	case FailureProviderDenied:
		return "provider_denied"
	case FailureProviderUnavailable:
		return "provider_unavailable"
	case FailureStateMismatch:
		return "state_mismatch"
	case FailureNetwork:
		return "network"
	default:
		return "rejected"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case FailureInvalidCredentials:
		return ErrInvalidCredentials
	case FailureRegistration:
		return ErrRegistrationFailed
	case FailureProviderDenied:
		return ErrProviderDenied
	case FailureProviderUnavailable:
		return ErrProviderUnavailable
	case FailureStateMismatch:
		return ErrStateMismatch
	case FailureNetwork:
		return ErrNetwork
	default:
		return ErrRejected
	}
}

// Failure is a backend rejection with a human readable reason.
// errors.Is matches it against the sentinel for its kind.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	if f.Reason == "" {
		return f.Kind.sentinel().Error()
	}
	return f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Kind.sentinel()
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of a backend call: Success, optionally with a message,
// or a Failure. Only backends build Results.
type Result struct {
	message string
	failure *Failure
}

// Success builds a successful Result.
func Success(message string) Result {
	return Result{message: message}
}

// Failed builds a failed Result.
func Failed(kind FailureKind, reason string) Result {
	return Result{failure: &Failure{Kind: kind, Reason: reason}}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.failure == nil
}

// Message is the success message, if any.
func (r Result) Message() string {
	return r.message
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	return r.failure
}

// Reason returns the failure reason, or "" on success.
func (r Result) Reason() string {
	if r.failure == nil {
		return ""
	}
	return r.failure.Error()
}

// Kind returns the failure kind. It is meaningless on success.
func (r Result) Kind() FailureKind {
	if r.failure == nil {
		return FailureRejected
	}
	return r.failure.Kind
}

func (r Result) String() string {
	if r.OK() {
		return "Success"
	}
	return fmt.Sprintf("Failure(%s: %s)", r.failure.Kind, r.Reason())
}

// =============================================================================
// BACKEND
// =============================================================================

// Backend is the contract every authentication service must honor.
//
// Implementations report all outcomes through Result. The error return is
// non-nil only when ctx ended before the call completed.
type Backend interface {
	Login(ctx context.Context, creds Credentials) (Result, error)
	SocialLogin(ctx context.Context, provider Provider) (Result, error)
	Register(ctx context.Context, req RegistrationRequest) (Result, error)
	RequestPasswordReset(ctx context.Context, email string) (Result, error)
	ResetPassword(ctx context.Context, req ResetRequest) (Result, error)
}
