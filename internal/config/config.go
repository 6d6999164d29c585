// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// twitchat.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - path given with --config
//   - ~/.twitchat/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/twitchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete twitchat configuration.
type Config struct {
	Version string `toml:"version"`

	// Connection settings
	Connection ConnectionConfig `toml:"connection"`

	// Terminal settings
	Terminal TerminalConfig `toml:"terminal"`

	// Storage settings (scrollback)
	Storage StorageConfig `toml:"storage"`

	// Filter settings
	Filters FilterConfig `toml:"filters"`

	// Logging settings
	Logging LoggingConfig `toml:"logging"`
}

// ConnectionConfig contains server and reconnect configuration.
type ConnectionConfig struct {
	// Transport selects the wire transport: "websocket" (default) or "tls".
	Transport string `toml:"transport"`
	// ServerAddr overrides the default server address for the transport.
	// Leave empty to use the Twitch production endpoints.
	ServerAddr string `toml:"server_addr"`
	// Nickname is the login name. Twitch logins are lowercase.
	Nickname string `toml:"nickname"`
	// Token is the OAuth token, with or without the "oauth:" prefix.
	// SECURITY: prefer the TWITCHAT_TOKEN environment variable over
	// storing it here; the file is forced to 0600 either way.
	Token string `toml:"token"`
	// Channel is the channel to join, with or without the "#" prefix.
	Channel string `toml:"channel"`

	// ReconnectBaseSecs is the first retry delay in seconds.
	ReconnectBaseSecs int `toml:"reconnect_base_secs"`
	// ReconnectMaxSecs caps the exponential backoff in seconds.
	ReconnectMaxSecs int `toml:"reconnect_max_secs"`
	// ReconnectMaxAttempts bounds retries before giving up.
	ReconnectMaxAttempts int `toml:"reconnect_max_attempts"`
	// IdleTimeoutSecs is the inbound silence before a liveness probe.
	IdleTimeoutSecs int `toml:"idle_timeout_secs"`
}

// TerminalConfig contains UI configuration.
type TerminalConfig struct {
	// Theme selects the color theme name.
	Theme string `toml:"theme"`
	// Timestamps prepends a HH:MM:SS stamp to every scrollback line.
	Timestamps bool `toml:"timestamps"`
	// InputTabs is how many independent message drafts to cycle through.
	InputTabs int `toml:"input_tabs"`
}

// StorageConfig contains scrollback configuration.
type StorageConfig struct {
	// ScrollbackLines is the bounded history capacity; the oldest lines
	// are evicted past it.
	ScrollbackLines int `toml:"scrollback_lines"`
}

// FilterConfig contains scrollback view filters.
type FilterConfig struct {
	// HideJoinPart suppresses join/part lines from the rendered view.
	// The lines stay in the scrollback; toggling the filter brings them back.
	HideJoinPart bool `toml:"hide_join_part"`
}

// LoggingConfig contains debug log configuration. Logs go to a file only;
// stdout and stderr belong to the terminal UI.
type LoggingConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
	File    string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the config schema version.
const CurrentVersion = "1.0"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Connection: ConnectionConfig{
			Transport:            "websocket",
			ReconnectBaseSecs:    1,
			ReconnectMaxSecs:     60,
			ReconnectMaxAttempts: 10,
			IdleTimeoutSecs:      30,
		},
		Terminal: TerminalConfig{
			Theme:      "default",
			Timestamps: true,
			InputTabs:  3,
		},
		Storage: StorageConfig{
			ScrollbackLines: 500,
		},
		Filters: FilterConfig{
			HideJoinPart: false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			File:    "twitchat.log",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the twitchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".twitchat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: the file may hold an OAuth token, so it must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.twitchat/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// No file: defaults plus environment.
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. Missing
// fields keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all filesystems; the
		// load itself still proceeds.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default path with 0600 permissions.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to the given path with 0600 permissions.
// The write is atomic so a crash mid-save never corrupts the file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies TWITCHAT_* environment variables on top of the
// loaded values. The token override exists so the secret never has to be
// written to disk.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TWITCHAT_TOKEN"); v != "" {
		c.Connection.Token = v
	}
	if v := os.Getenv("TWITCHAT_NICK"); v != "" {
		c.Connection.Nickname = v
	}
	if v := os.Getenv("TWITCHAT_CHANNEL"); v != "" {
		c.Connection.Channel = v
	}
	if v := os.Getenv("TWITCHAT_SERVER"); v != "" {
		c.Connection.ServerAddr = v
	}
	if v := os.Getenv("TWITCHAT_TRANSPORT"); v != "" {
		c.Connection.Transport = v
	}
	if v := os.Getenv("TWITCHAT_LOG"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Logging.Enabled = enabled
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates all validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for values that cannot work at runtime.
// Missing credentials are reported here rather than as a mid-session
// authentication failure.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Connection.Nickname) == "" {
		errs = append(errs, ValidationError{
			Field:   "connection.nickname",
			Message: "nickname is required (set it in the config file or TWITCHAT_NICK)",
		})
	}
	if strings.TrimSpace(c.Connection.Token) == "" {
		errs = append(errs, ValidationError{
			Field:   "connection.token",
			Message: "OAuth token is required (set TWITCHAT_TOKEN or connection.token)",
		})
	}
	if strings.TrimSpace(c.Connection.Channel) == "" {
		errs = append(errs, ValidationError{
			Field:   "connection.channel",
			Message: "channel is required",
		})
	}

	switch c.Connection.Transport {
	case "", "websocket", "ws", "tls", "irc":
	default:
		errs = append(errs, ValidationError{
			Field:   "connection.transport",
			Message: fmt.Sprintf("unknown transport %q (use websocket or tls)", c.Connection.Transport),
		})
	}

	if c.Connection.ReconnectBaseSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "connection.reconnect_base_secs",
			Message: "must not be negative",
		})
	}
	if c.Connection.ReconnectMaxSecs > 0 && c.Connection.ReconnectMaxSecs < c.Connection.ReconnectBaseSecs {
		errs = append(errs, ValidationError{
			Field:   "connection.reconnect_max_secs",
			Message: "must be at least reconnect_base_secs",
		})
	}
	if c.Connection.ReconnectMaxAttempts < 0 {
		errs = append(errs, ValidationError{
			Field:   "connection.reconnect_max_attempts",
			Message: "must not be negative",
		})
	}

	if c.Storage.ScrollbackLines < 0 {
		errs = append(errs, ValidationError{
			Field:   "storage.scrollback_lines",
			Message: "must not be negative",
		})
	}
	if c.Terminal.InputTabs < 1 {
		errs = append(errs, ValidationError{
			Field:   "terminal.input_tabs",
			Message: "need at least one input tab",
		})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
