// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for authflow.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AuthConfig: Simulated backend (demo account, latencies, outcomes)
//   - FlowConfig: Password limits, redirect grace, submit throttle
//   - SessionConfig: Idle timeout
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (AUTHFLOW_*)
//   - ~/.authflow/config.toml
//   - ~/.authflow/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grace := cfg.Flow.RedirectGrace()
package config
