// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit records authentication events.
//
// Every flow outcome (login success/failure, registration, reset requests,
// logout) is written as one structured entry on the "audit" logger. Email
// addresses and tokens never appear in clear text: identifiers are reduced to
// a short SHA-256 prefix with MaskIdentifier.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"go.uber.org/zap"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

const (
	EventLoginSuccess      = "LOGIN_SUCCESS"
	EventLoginFailure      = "LOGIN_FAILURE"
	EventSocialLogin       = "SOCIAL_LOGIN"
	EventSocialFailure     = "SOCIAL_LOGIN_FAILURE"
	EventRegisterSuccess   = "REGISTER_SUCCESS"
	EventRegisterFailure   = "REGISTER_FAILURE"
	EventResetRequested    = "RESET_REQUESTED"
	EventPasswordReset     = "PASSWORD_RESET"
	EventPasswordResetFail = "PASSWORD_RESET_FAILURE"
	EventSessionStart      = "SESSION_START"
	EventSessionEnd        = "SESSION_END"
	EventSessionTimeout    = "SESSION_TIMEOUT"
)

// Event is a single audit entry.
type Event struct {
	Type      string
	SessionID string
	Success   bool
	Error     string
	Metadata  map[string]string
}

// Logger writes audit events to a zap logger. A nil *Logger is valid and
// drops everything.
type Logger struct {
	log *zap.Logger
}

// New returns a Logger writing under the "audit" name of base.
func New(base *zap.Logger) *Logger {
	if base == nil {
		return nil
	}
	return &Logger{log: base.Named("audit")}
}

// Log writes one event.
func (l *Logger) Log(e Event) {
	if l == nil {
		return
	}

	fields := make([]zap.Field, 0, len(e.Metadata)+4)
	fields = append(fields,
		zap.String("event_type", e.Type),
		zap.Bool("success", e.Success),
	)
	if e.SessionID != "" {
		fields = append(fields, zap.String("session_id", e.SessionID))
	}
	if e.Error != "" {
		fields = append(fields, zap.String("error", e.Error))
	}

	// Stable field order keeps log lines diffable.
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, e.Metadata[k]))
	}

	if e.Success {
		l.log.Info("auth event", fields...)
	} else {
		l.log.Warn("auth event", fields...)
	}
}

// MaskIdentifier reduces an identifier to a stable, non-reversible tag.
// Empty input stays empty.
func MaskIdentifier(id string) string {
	if id == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(id))
	return "hash:" + hex.EncodeToString(hash[:])[:12]
}
