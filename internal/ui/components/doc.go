// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the authflow TUI.
//
// Components render state; they hold no flow logic. Pages read a controller's
// State and feed user edits back to it, and the components here draw the
// result:
//
//   - Field: a labelled textinput with password echo and an error line
//   - Spinner: the submitting indicator
//   - Header and Footer: brand, navigation links and the signed-in user
//   - Card: the centered form container
//   - Button and SocialButton: actions, disabled while a submit is in flight
//   - ToastManager: the notification stack; it implements flow.Notifier
//   - TimeoutOverlay: the idle-session warning
package components
