// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags
//
// Names passed as switches never consume the following argument, so
// "--remember user@example.com" keeps the address positional.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	switches   map[string]bool
	positional []string
	raw        []string
}

// NewArgParser parses raw. switches lists the flags that take no value.
//
// Example:
//
//	p := NewArgParser([]string{"set", "ui.theme", "light", "--force"}, "force")
//	p.Subcommand()     // "set"
//	p.Positional(1)    // "ui.theme"
//	p.BoolFlag("force") // true
func NewArgParser(raw []string, switches ...string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
		switches:  make(map[string]bool, len(switches)),
		raw:       raw,
	}
	for _, s := range switches {
		p.switches[s] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(name, "="); ok {
			// Boolean flags can be explicit: --remember=true, --remember=false
			if p.switches[k] || v == "true" || v == "false" {
				p.boolFlags[k] = v == "true" || v == "1" || v == "yes"
			} else {
				p.flags[k] = v
			}
			continue
		}

		if !p.switches[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i++
			continue
		}
		p.boolFlags[name] = true
	}
	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of a string flag, trying each name in order.
// Returns empty string if none is set.
//
//	p.Flag("email", "e") // --email a@b.co or -e a@b.co
func (p *ArgParser) Flag(names ...string) string {
	for _, name := range names {
		if val, ok := p.flags[strings.TrimLeft(name, "-")]; ok {
			return val
		}
	}
	return ""
}

// BoolFlag reports whether any of the named boolean flags is set.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if p.boolFlags[strings.TrimLeft(name, "-")] {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at index, or "".
// Index 0 is the subcommand.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Options returns the string flags as a map.
func (p *ArgParser) Options() map[string]string {
	out := make(map[string]string, len(p.flags))
	for k, v := range p.flags {
		out[k] = v
	}
	return out
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}
