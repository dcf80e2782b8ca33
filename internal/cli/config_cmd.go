// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - the config command.
//
// Usage: authflow config [show|path|init|get|set]
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/authflow-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(w io.Writer, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(w)
	case "path":
		return configPath(w)
	case "init":
		return configInit(w, args.Force)
	case "get":
		return configGet(w, args.ConfigKey)
	case "set":
		return configSet(w, args.ConfigKey, args.ConfigVal)
	case "keys":
		fmt.Fprintln(w, strings.Join(config.GetAllKeys(), "\n"))
		return nil
	default:
		return NewCommandError("config", args.Subcommand, "unknown subcommand (want show, path, init, get, set or keys)", nil)
	}
}

func configShow(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "show", "could not load configuration", err)
	}
	path, _ := config.ConfigPathTOML()

	fmt.Fprintln(w, TitleStyle.Render("authflow configuration"))
	fmt.Fprintln(w, RenderLabel("File")+ValueStyle.Render(path))
	fmt.Fprintln(w, RenderSeparator())
	fmt.Fprintln(w, cfg.String())
	return nil
}

func configPath(w io.Writer) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "path", "could not resolve config path", err)
	}
	fmt.Fprintln(w, path)
	return nil
}

func configInit(w io.Writer, force bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "init", "could not resolve config path", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return NewCommandError("config", "init", path+" already exists (use --force to overwrite)", nil)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewCommandError("config", "init", "could not check "+path, err)
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write configuration", err)
	}
	fmt.Fprintf(w, "%s Wrote %s\n", RenderStatus(true), path)
	return nil
}

func configGet(w io.Writer, key string) error {
	if key == "" {
		return NewCommandError("config", "get", "missing KEY (see 'authflow config keys')", nil)
	}
	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "get", "could not load configuration", err)
	}
	val, err := cfg.Get(key)
	if err != nil {
		return NewCommandError("config", "get", err.Error(), err)
	}
	fmt.Fprintln(w, formatValue(key, val))
	return nil
}

func configSet(w io.Writer, key, value string) error {
	if key == "" {
		return NewCommandError("config", "set", "usage: authflow config set KEY VALUE", nil)
	}
	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "set", "could not load configuration", err)
	}
	if err := cfg.Set(key, value); err != nil {
		return NewCommandError("config", "set", err.Error(), err)
	}
	if err := cfg.Validate(); err != nil {
		return NewCommandError("config", "set", "rejected", err)
	}
	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "set", "could not write configuration", err)
	}

	val, _ := cfg.Get(key)
	fmt.Fprintf(w, "%s %s = %s\n", RenderStatus(true), key, formatValue(key, val))
	return nil
}

func formatValue(key string, v interface{}) string {
	if key == "auth.demo_password" {
		return "[REDACTED]"
	}
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}
