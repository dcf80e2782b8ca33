// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the authflow TUI.
//
// All colors are Lip Gloss AdaptiveColors so they follow the terminal
// background. Theme bundles the styles for the header, the form card,
// fields, buttons and toasts, and picks ASCII or Unicode status markers
// from the detected color profile.
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme, cfg.UI.ASCII)
//	fmt.Println(theme.RenderError("Passwords do not match."))
package styles
