// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Connection.Nickname = "tester"
	cfg.Connection.Token = "oauth:secret"
	cfg.Connection.Channel = "somechannel"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Connection.Transport != "websocket" {
		t.Errorf("default transport = %q, want websocket", cfg.Connection.Transport)
	}
	if cfg.Storage.ScrollbackLines != 500 {
		t.Errorf("default scrollback = %d, want 500", cfg.Storage.ScrollbackLines)
	}
	if cfg.Terminal.InputTabs != 3 {
		t.Errorf("default input tabs = %d, want 3", cfg.Terminal.InputTabs)
	}
	if cfg.Connection.ReconnectBaseSecs != 1 || cfg.Connection.ReconnectMaxSecs != 60 {
		t.Errorf("default backoff = %d/%d, want 1/60",
			cfg.Connection.ReconnectBaseSecs, cfg.Connection.ReconnectMaxSecs)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty config")
	}

	msg := err.Error()
	for _, field := range []string{"connection.nickname", "connection.token", "connection.channel"} {
		if !strings.Contains(msg, field) {
			t.Errorf("validation error missing %q: %s", field, msg)
		}
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_BadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown transport", func(c *Config) { c.Connection.Transport = "carrier-pigeon" }, "connection.transport"},
		{"negative base", func(c *Config) { c.Connection.ReconnectBaseSecs = -1 }, "connection.reconnect_base_secs"},
		{"max below base", func(c *Config) { c.Connection.ReconnectBaseSecs = 10; c.Connection.ReconnectMaxSecs = 5 }, "connection.reconnect_max_secs"},
		{"zero tabs", func(c *Config) { c.Terminal.InputTabs = 0 }, "terminal.input_tabs"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error does not mention %q: %v", tt.field, err)
			}
		})
	}
}

func TestLoadFromPath_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	want := validConfig()
	want.Terminal.Timestamps = false
	want.Storage.ScrollbackLines = 1000
	if err := SaveTOML(want, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	// Saved file must be private; it can hold the token.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if got.Connection.Channel != "somechannel" {
		t.Errorf("channel = %q", got.Connection.Channel)
	}
	if got.Terminal.Timestamps {
		t.Error("timestamps should have loaded as false")
	}
	if got.Storage.ScrollbackLines != 1000 {
		t.Errorf("scrollback = %d, want 1000", got.Storage.ScrollbackLines)
	}
}

func TestSave_CreatesDirAndFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("template config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}
}

func TestLoadFromPath_FixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[connection]\nnickname = \"tester\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions not tightened: %o", perm)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[connection]\nnickname = \"tester\"\nchannel = \"#go\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Connection.Nickname != "tester" {
		t.Errorf("nickname = %q", cfg.Connection.Nickname)
	}
	if cfg.Storage.ScrollbackLines != 500 {
		t.Errorf("unset field lost its default: %d", cfg.Storage.ScrollbackLines)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TWITCHAT_TOKEN", "oauth:fromenv")
	t.Setenv("TWITCHAT_NICK", "envnick")
	t.Setenv("TWITCHAT_CHANNEL", "envchannel")

	cfg := Default()
	cfg.Connection.Token = "oauth:fromfile"
	cfg.ApplyEnvOverrides()

	if cfg.Connection.Token != "oauth:fromenv" {
		t.Errorf("token = %q, env should win over file", cfg.Connection.Token)
	}
	if cfg.Connection.Nickname != "envnick" {
		t.Errorf("nickname = %q", cfg.Connection.Nickname)
	}
	if cfg.Connection.Channel != "envchannel" {
		t.Errorf("channel = %q", cfg.Connection.Channel)
	}
}
