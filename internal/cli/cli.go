// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and usage for authflow.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdForgot
	CmdReset
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdLogin:
		return "login"
	case CmdRegister:
		return "register"
	case CmdForgot:
		return "forgot"
	case CmdReset:
		return "reset"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	Quiet   bool
	Verbose bool
	ASCII   bool
	Theme   string

	// Command-specific
	Route    string // tui: starting location, e.g. /login
	Email    string
	Provider string
	Remember bool
	Token    string
	Link     string
	Force    bool

	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options.
	Options map[string]string
}

const usageText = `authflow - terminal sign-in, sign-up and password recovery

Usage:
  authflow [tui] [ROUTE]          Start the TUI (default), optionally at ROUTE
  authflow login                  Sign in from the command line
  authflow register               Create an account
  authflow forgot                 Request a password reset link
  authflow reset                  Choose a new password
  authflow config [subcommand]    Configuration
  authflow version                Show version
  authflow help                   Show this help

Login Options:
  -e, --email ADDR          Email address (prompted when omitted)
  -p, --provider NAME       Sign in with google or github instead
      --remember            Remember me on this device

Forgot Options:
  -e, --email ADDR          Email address (prompted when omitted)

Reset Options:
      --token TOKEN         Reset token from the emailed link
      --link URL            The emailed link, e.g. /reset-password?token=abc

Config Commands:
  authflow config show            Show current configuration
  authflow config path            Show config file location
  authflow config init [--force]  Write the default config file
  authflow config get KEY         Show one value (e.g. flow.redirect_grace_ms)
  authflow config set KEY VALUE   Change one value
  authflow config keys            List every KEY

Global Options:
  -q, --quiet               Minimal output
  -V, --verbose             Debug logging
      --ascii               ASCII-only rendering
      --theme NAME          dark, light or auto

Routes:
  /  /login  /forgot-password  /reset-password?token=...  /dashboard

Environment:
  AUTHFLOW_HOME             Config directory (default ~/.authflow)
  NO_COLOR                  Disable colored output

Demo account: user@example.com / password123
`

// PrintUsage prints the usage information.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "authflow %s\n", Version)
	fmt.Fprintf(w, "  Commit:  %s\n", GitCommit)
	fmt.Fprintf(w, "  Built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	fmt.Fprintf(w, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() Args {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the arguments that follow the program name.
func ParseArgs(argv []string) Args {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		args.Command = CmdTUI
		return args
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]

	switch cmd {
	case "tui", "ui":
		args.Command = CmdTUI
		parseTUIArgs(&args, rest)

	case "login", "signin", "sign-in":
		args.Command = CmdLogin
		p := NewArgParser(rest, "remember")
		args.Email = p.Flag("email", "e")
		args.Provider = strings.ToLower(p.Flag("provider", "p"))
		args.Remember = p.BoolFlag("remember")
		fill(&args, p)

	case "register", "signup", "sign-up":
		args.Command = CmdRegister
		p := NewArgParser(rest)
		args.Email = p.Flag("email", "e")
		fill(&args, p)

	case "forgot", "forgot-password":
		args.Command = CmdForgot
		p := NewArgParser(rest)
		args.Email = p.Flag("email", "e")
		fill(&args, p)

	case "reset", "reset-password":
		args.Command = CmdReset
		p := NewArgParser(rest)
		args.Token = p.Flag("token", "t")
		args.Link = p.Flag("link")
		if args.Link == "" && p.PositionalCount() > 0 {
			args.Link = p.Positional(0)
		}
		fill(&args, p)

	case "config", "cfg":
		args.Command = CmdConfig
		p := NewArgParser(rest, "force", "f")
		args.Subcommand = p.Subcommand()
		args.ConfigKey = p.Positional(1)
		args.ConfigVal = p.Positional(2)
		args.Force = p.BoolFlag("force", "f")
		fill(&args, p)

	case "version", "-v", "--version":
		args.Command = CmdVersion

	case "help", "-h", "--help":
		args.Command = CmdHelp

	default:
		// A bare route starts the TUI there: "authflow /login".
		if strings.HasPrefix(cmd, "/") {
			args.Command = CmdTUI
			parseTUIArgs(&args, remaining)
			return args
		}
		args.Command = CmdHelp
		args.Raw = remaining
	}
	return args
}

func fill(args *Args, p *ArgParser) {
	args.Raw = p.Raw()
	args.Options = p.Options()
}

func parseTUIArgs(args *Args, rest []string) {
	p := NewArgParser(rest)
	args.Route = p.Flag("route", "r")
	if args.Route == "" {
		args.Route = p.Positional(0)
	}
	fill(args, p)
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	args := Args{Options: make(map[string]string)}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-V", "--verbose":
			args.Verbose = true
		case "--ascii":
			args.ASCII = true
		case "--theme":
			if i+1 < len(argv) {
				i++
				args.Theme = argv[i]
			}
		default:
			if strings.HasPrefix(arg, "--theme=") {
				args.Theme = strings.TrimPrefix(arg, "--theme=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}
	return remaining, args
}
