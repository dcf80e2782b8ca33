// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages contains one view per route. A page owns its flow controller,
// translates keys into controller edits and submissions, and renders the
// controller's State with the shared components. Pages never decide an
// outcome themselves.
package pages
