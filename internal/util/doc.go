// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the authflow packages.
//
// # Key Functions
//
// Text:
//   - TruncateWidth: width-aware truncation with ellipsis
//   - PadRight: column-aligned labels
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	title := util.TruncateWidth(name, 24)
//	err := util.AtomicWriteFile(path, data, 0600, 0700)
package util
