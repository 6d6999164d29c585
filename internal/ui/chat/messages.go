// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea messages that feed the update loop from
// outside the terminal: connection events pumped through Program.Send and
// the periodic bookkeeping tick.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twitchat-tui/internal/config"
	"github.com/jeranaias/twitchat-tui/internal/conn"
)

// ConnEventMsg wraps a connection-manager event produced by an I/O
// goroutine. The update loop routes it into Manager.HandleEvent.
type ConnEventMsg struct {
	Event conn.Event
}

// TickMsg drives time-based bookkeeping: reconnect scheduling, keepalive
// probes, and the status-bar countdown.
type TickMsg struct {
	Time time.Time
}

// ConfigReloadedMsg carries a freshly reloaded configuration after the
// config file changed on disk. Only display settings are applied live.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// tickInterval is the bookkeeping cadence. Coarse on purpose: every timeout
// in the connection manager is measured in seconds.
const tickInterval = 250 * time.Millisecond

// tickCmd schedules the next bookkeeping tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
