// authflow - sign-in, sign-up and password recovery in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authflow-tui/internal/app"
	"github.com/jeranaias/authflow-tui/internal/cli"
	"github.com/jeranaias/authflow-tui/internal/config"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/ui/shell"
	"github.com/jeranaias/authflow-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.Parse()

	var err error
	switch args.Command {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdLogin, cli.CmdRegister, cli.CmdForgot, cli.CmdReset:
		err = runLineMode(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(os.Stdout, args)
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
	default:
		if len(args.Raw) > 0 {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Raw[0])
			cli.PrintUsage()
			os.Exit(cli.ExitUsageError)
		}
		cli.PrintUsage()
	}

	if err != nil {
		cli.DisplayError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(args cli.Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if args.ASCII {
		cfg.UI.ASCII = true
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func runTUI(args cli.Args) error {
	if !cli.IsStdoutTTY() {
		return &cli.TTYRequiredError{Operation: "start the TUI (try 'authflow login')"}
	}

	start := route.To(route.Register)
	if args.Route != "" {
		loc, err := route.Parse(args.Route)
		if err != nil {
			return cli.NewCommandError("tui", "", "invalid route "+args.Route, err)
		}
		start = loc
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	m := shell.New(shell.Options{
		Theme:     styles.NewTheme(cfg.UI.Theme, cfg.UI.ASCII),
		Deps:      a.Deps(nil, nil),
		Providers: a.Providers(),
		Names:     a.Names(),
		Start:     start,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running authflow: %w", err)
	}
	return nil
}

func runLineMode(args cli.Args) error {
	// Password prompts need a terminal to hide input.
	needsPassword := args.Command != cli.CmdForgot &&
		!(args.Command == cli.CmdLogin && args.Provider != "")
	if needsPassword {
		if err := cli.RequiresTTY("read a password"); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	prompter := cli.NewLinePrompter()
	defer prompter.Close()

	r := cli.NewRunner(a, prompter, os.Stdout)
	r.SetQuiet(args.Quiet)

	switch args.Command {
	case cli.CmdLogin:
		return r.Login(args)
	case cli.CmdRegister:
		return r.Register(args)
	case cli.CmdForgot:
		return r.Forgot(args)
	default:
		return r.Reset(args)
	}
}
