// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the line-mode commands for
// authflow.
//
// The same flow controllers that back the TUI also back the line-mode
// commands: each command prompts for the form fields, submits through the
// controller and prints notifications as styled lines.
//
// # Usage
//
//	args := cli.Parse()
//	switch args.Command {
//	case cli.CmdLogin:
//	    return cli.NewRunner(a, prompter, os.Stdout).Login(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - tui: full-screen terminal UI (default)
//   - login, register, forgot, reset: line-mode flows
//   - config: show, path, init, get, set
//   - version, help
package cli
