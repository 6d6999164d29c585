// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// twitchat.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ConnectionConfig: Server address, credentials, reconnect policy
//   - TerminalConfig: Theme, timestamps, input tabs
//   - StorageConfig: Scrollback capacity
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TWITCHAT_*)
//   - ~/.twitchat/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	channel := cfg.Connection.Channel
//	capacity := cfg.Storage.ScrollbackLines
package config
