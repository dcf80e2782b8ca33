// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate provides the form field checks shared by every auth flow.
//
// All functions are pure and total: they never fail, they only report whether
// the input has the expected shape. The user-facing messages for each failed
// check are exported as constants so the TUI, the line-mode CLI and the tests
// render exactly the same text.
//
// # Usage
//
//	if !validate.Email(email) {
//	    return validate.MsgEmailInvalid
//	}
//	if !validate.PasswordStrength(pw, validate.MinRegisterPassword) {
//	    return validate.TooShort(validate.MinRegisterPassword)
//	}
package validate
