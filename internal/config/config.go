// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for authflow.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.authflow/config.toml
//   - ~/.authflow/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/authflow-tui/internal/util"
	"github.com/jeranaias/authflow-tui/internal/validate"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete authflow configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Auth configures the simulated authentication backend.
	Auth AuthConfig `toml:"auth" json:"auth"`

	// Flow configures validation limits and submission behavior.
	Flow FlowConfig `toml:"flow" json:"flow"`

	// Session configures the session gate.
	Session SessionConfig `toml:"session" json:"session"`

	Log LogConfig `toml:"log" json:"log"`

	UI UIConfig `toml:"ui" json:"ui"`
}

// Registration outcome modes.
const (
	OutcomeRandom = "random"
	OutcomeAlways = "always"
	OutcomeNever  = "never"
)

// AuthConfig contains simulated backend settings.
type AuthConfig struct {
	// DemoEmail and DemoPassword are the only credentials login accepts.
	DemoEmail    string `toml:"demo_email" json:"demo_email"`
	DemoPassword string `toml:"demo_password" json:"demo_password"`
	// DemoName is shown on the dashboard for the demo account.
	DemoName string `toml:"demo_name" json:"demo_name"`

	// Latencies in milliseconds. Zero means the built-in default.
	LoginLatencyMs        int `toml:"login_latency_ms" json:"login_latency_ms"`
	SocialLatencyMs       int `toml:"social_latency_ms" json:"social_latency_ms"`
	RegisterLatencyMs     int `toml:"register_latency_ms" json:"register_latency_ms"`
	ResetRequestLatencyMs int `toml:"reset_request_latency_ms" json:"reset_request_latency_ms"`
	ResetLatencyMs        int `toml:"reset_latency_ms" json:"reset_latency_ms"`

	// RegistrationOutcome is "random", "always" or "never".
	RegistrationOutcome string `toml:"registration_outcome" json:"registration_outcome"`
	// RegistrationSuccessRate applies to the random outcome (0.0-1.0).
	RegistrationSuccessRate float64 `toml:"registration_success_rate" json:"registration_success_rate"`
	// Seed fixes the random outcome sequence. Zero seeds from the clock.
	Seed int64 `toml:"seed" json:"seed"`
}

// FlowConfig contains form and submission settings.
type FlowConfig struct {
	RegisterMinPassword int  `toml:"register_min_password" json:"register_min_password"`
	ResetMinPassword    int  `toml:"reset_min_password" json:"reset_min_password"`
	RedirectGraceMs     int  `toml:"redirect_grace_ms" json:"redirect_grace_ms"`
	SubmitBurst         int  `toml:"submit_burst" json:"submit_burst"`
	SubmitIntervalMs    int  `toml:"submit_interval_ms" json:"submit_interval_ms"`
	RequireResetToken   bool `toml:"require_reset_token" json:"require_reset_token"`
}

// SessionConfig contains session gate settings.
type SessionConfig struct {
	// IdleTimeoutSecs closes the session after inactivity. Zero disables.
	IdleTimeoutSecs int `toml:"idle_timeout_secs" json:"idle_timeout_secs"`
	// WarningSecs is how long before the timeout a warning is shown.
	WarningSecs int `toml:"warning_secs" json:"warning_secs"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// Path is the log file. Empty means ~/.authflow/authflow.log.
	Path string `toml:"path" json:"path"`
	// Disabled turns logging off entirely.
	Disabled bool `toml:"disabled" json:"disabled"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Providers lists the social sign-in buttons, in order.
	Providers []string `toml:"providers" json:"providers"`
	// ASCII avoids box-drawing characters and emoji.
	ASCII bool `toml:"ascii" json:"ascii"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Auth: AuthConfig{
			DemoEmail:               "user@example.com",
			DemoPassword:            "password123",
			DemoName:                "Demo User",
			LoginLatencyMs:          1500,
			SocialLatencyMs:         2000,
			RegisterLatencyMs:       1500,
			ResetRequestLatencyMs:   1500,
			ResetLatencyMs:          2000,
			RegistrationOutcome:     OutcomeRandom,
			RegistrationSuccessRate: 0.8,
		},

		Flow: FlowConfig{
			RegisterMinPassword: validate.MinRegisterPassword,
			ResetMinPassword:    validate.MinResetPassword,
			RedirectGraceMs:     2000,
			SubmitBurst:         5,
			SubmitIntervalMs:    1000,
		},

		Session: SessionConfig{
			IdleTimeoutSecs: 0,
			WarningSecs:     120,
		},

		Log: LogConfig{
			Level: "info",
		},

		UI: UIConfig{
			Theme:     "dark",
			Providers: []string{"google", "github"},
		},
	}
}

// =============================================================================
// DURATION HELPERS
// =============================================================================

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// RedirectGrace returns the delay before post-success navigation.
func (f FlowConfig) RedirectGrace() time.Duration { return ms(f.RedirectGraceMs) }

// SubmitInterval returns the throttle refill interval.
func (f FlowConfig) SubmitInterval() time.Duration { return ms(f.SubmitIntervalMs) }

// IdleTimeout returns the idle timeout, or zero when disabled.
func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSecs) * time.Second
}

// Warning returns the warning lead time.
func (s SessionConfig) Warning() time.Duration {
	return time.Duration(s.WarningSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the authflow configuration directory path.
// AUTHFLOW_HOME overrides the default ~/.authflow.
func ConfigDir() (string, error) {
	if dir := os.Getenv("AUTHFLOW_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".authflow"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the log file path, resolving the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "authflow.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	return finish(cfg)
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", filepath.Base(path), strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Values missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills fields a partial file may have zeroed.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}

	if c.Auth.DemoEmail == "" {
		c.Auth.DemoEmail = d.Auth.DemoEmail
	}
	if c.Auth.DemoPassword == "" {
		c.Auth.DemoPassword = d.Auth.DemoPassword
	}
	if c.Auth.DemoName == "" {
		c.Auth.DemoName = d.Auth.DemoName
	}
	if c.Auth.LoginLatencyMs == 0 {
		c.Auth.LoginLatencyMs = d.Auth.LoginLatencyMs
	}
	if c.Auth.SocialLatencyMs == 0 {
		c.Auth.SocialLatencyMs = d.Auth.SocialLatencyMs
	}
	if c.Auth.RegisterLatencyMs == 0 {
		c.Auth.RegisterLatencyMs = d.Auth.RegisterLatencyMs
	}
	if c.Auth.ResetRequestLatencyMs == 0 {
		c.Auth.ResetRequestLatencyMs = d.Auth.ResetRequestLatencyMs
	}
	if c.Auth.ResetLatencyMs == 0 {
		c.Auth.ResetLatencyMs = d.Auth.ResetLatencyMs
	}
	if c.Auth.RegistrationOutcome == "" {
		c.Auth.RegistrationOutcome = d.Auth.RegistrationOutcome
	}

	if c.Flow.RegisterMinPassword == 0 {
		c.Flow.RegisterMinPassword = d.Flow.RegisterMinPassword
	}
	if c.Flow.ResetMinPassword == 0 {
		c.Flow.ResetMinPassword = d.Flow.ResetMinPassword
	}

	if c.Session.WarningSecs == 0 {
		c.Session.WarningSecs = d.Session.WarningSecs
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Providers == nil {
		c.UI.Providers = d.UI.Providers
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# authflow configuration file\n")
	buf.WriteString("# Generated by authflow - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

const maxLatencyMs = 60_000

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Auth
	if !validate.Email(c.Auth.DemoEmail) {
		add("auth.demo_email", "invalid email '%s'", c.Auth.DemoEmail)
	}
	latencies := map[string]int{
		"auth.login_latency_ms":         c.Auth.LoginLatencyMs,
		"auth.social_latency_ms":        c.Auth.SocialLatencyMs,
		"auth.register_latency_ms":      c.Auth.RegisterLatencyMs,
		"auth.reset_request_latency_ms": c.Auth.ResetRequestLatencyMs,
		"auth.reset_latency_ms":         c.Auth.ResetLatencyMs,
	}
	for _, field := range sortedKeys(latencies) {
		if v := latencies[field]; v < 0 || v > maxLatencyMs {
			add(field, "must be between 0 and %d, got %d", maxLatencyMs, v)
		}
	}
	switch c.Auth.RegistrationOutcome {
	case OutcomeRandom, OutcomeAlways, OutcomeNever:
	default:
		add("auth.registration_outcome", "invalid outcome '%s', must be one of: random, always, never", c.Auth.RegistrationOutcome)
	}
	if c.Auth.RegistrationSuccessRate < 0 || c.Auth.RegistrationSuccessRate > 1 {
		add("auth.registration_success_rate", "must be between 0.0 and 1.0, got %g", c.Auth.RegistrationSuccessRate)
	}

	// Flow
	if c.Flow.RegisterMinPassword < 1 || c.Flow.RegisterMinPassword > 128 {
		add("flow.register_min_password", "must be between 1 and 128, got %d", c.Flow.RegisterMinPassword)
	}
	if c.Flow.ResetMinPassword < 1 || c.Flow.ResetMinPassword > 128 {
		add("flow.reset_min_password", "must be between 1 and 128, got %d", c.Flow.ResetMinPassword)
	}
	if c.Flow.RedirectGraceMs < 0 || c.Flow.RedirectGraceMs > 30_000 {
		add("flow.redirect_grace_ms", "must be between 0 and 30000, got %d", c.Flow.RedirectGraceMs)
	}
	if c.Flow.SubmitBurst < 0 {
		add("flow.submit_burst", "cannot be negative")
	}
	if c.Flow.SubmitIntervalMs < 0 {
		add("flow.submit_interval_ms", "cannot be negative")
	}

	// Session
	if c.Session.IdleTimeoutSecs < 0 {
		add("session.idle_timeout_secs", "cannot be negative")
	}
	if c.Session.IdleTimeoutSecs > 0 && c.Session.WarningSecs >= c.Session.IdleTimeoutSecs {
		add("session.warning_secs", "must be shorter than the idle timeout (%ds)", c.Session.IdleTimeoutSecs)
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	// UI
	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	seen := make(map[string]bool)
	for _, p := range c.UI.Providers {
		if p != "google" && p != "github" {
			add("ui.providers", "unknown provider '%s', must be google or github", p)
		}
		if seen[p] {
			add("ui.providers", "duplicate provider '%s'", p)
		}
		seen[p] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies AUTHFLOW_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AUTHFLOW_DEMO_EMAIL"); v != "" {
		c.Auth.DemoEmail = v
	}
	if v := os.Getenv("AUTHFLOW_DEMO_PASSWORD"); v != "" {
		c.Auth.DemoPassword = v
	}
	if v := os.Getenv("AUTHFLOW_REGISTRATION_OUTCOME"); v != "" {
		c.Auth.RegistrationOutcome = strings.ToLower(v)
	}
	if v := os.Getenv("AUTHFLOW_SUCCESS_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Auth.RegistrationSuccessRate = f
		}
	}
	if v := os.Getenv("AUTHFLOW_REQUIRE_RESET_TOKEN"); v != "" {
		c.Flow.RequireResetToken = parseBool(v)
	}
	if v := os.Getenv("AUTHFLOW_IDLE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.IdleTimeoutSecs = n
		}
	}
	if v := os.Getenv("AUTHFLOW_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("AUTHFLOW_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("AUTHFLOW_ASCII"); v != "" {
		c.UI.ASCII = parseBool(v)
	}
	if v := os.Getenv("AUTHFLOW_THEME"); v != "" {
		c.UI.Theme = v
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "1" || s == "true" || s == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "flow.redirect_grace_ms").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(part[:1]))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"auth.demo_email",
		"auth.demo_password",
		"auth.demo_name",
		"auth.login_latency_ms",
		"auth.social_latency_ms",
		"auth.register_latency_ms",
		"auth.reset_request_latency_ms",
		"auth.reset_latency_ms",
		"auth.registration_outcome",
		"auth.registration_success_rate",
		"auth.seed",
		"flow.register_min_password",
		"flow.reset_min_password",
		"flow.redirect_grace_ms",
		"flow.submit_burst",
		"flow.submit_interval_ms",
		"flow.require_reset_token",
		"session.idle_timeout_secs",
		"session.warning_secs",
		"log.level",
		"log.path",
		"log.disabled",
		"ui.theme",
		"ui.providers",
		"ui.ascii",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.UI.Providers != nil {
		clone.UI.Providers = append([]string(nil), c.UI.Providers...)
	}
	return &clone
}

// String returns a string representation of the config for debugging.
// The demo password is redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Auth.DemoPassword != "" {
		safe.Auth.DemoPassword = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
