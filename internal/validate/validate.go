// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// LIMITS AND MESSAGES
// =============================================================================

const (
	// MinRegisterPassword is the minimum password length accepted at sign up.
	MinRegisterPassword = 6

	// MinResetPassword is the minimum length for a password chosen during reset.
	MinResetPassword = 8
)

const (
	MsgEmailRequired     = "Please enter your email address."
	MsgEmailInvalid      = "Please enter a valid email address."
	MsgPasswordRequired  = "Please enter your password."
	MsgPasswordsRequired = "Please fill in both password fields."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgTokenRequired     = "This reset link is missing its token. Request a new link."
)

// TooShort returns the message shown when a password is shorter than minLen.
func TooShort(minLen int) string {
	return fmt.Sprintf("Password must be at least %d characters long.", minLen)
}

// =============================================================================
// CHECKS
// =============================================================================

// Email reports whether s has the local@domain.tld shape: a non-empty local
// part, a single "@", and a domain of at least two dot-separated labels, none
// of them empty. Whitespace anywhere rejects the address.
func Email(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}

// PasswordStrength reports whether s is at least minLen characters long.
// Length is counted in characters, not bytes.
func PasswordStrength(s string, minLen int) bool {
	return utf8.RuneCountInString(s) >= minLen
}

// Match reports whether a and b are identical.
func Match(a, b string) bool {
	return a == b
}

// Required reports whether s is non-empty.
func Required(s string) bool {
	return s != ""
}
