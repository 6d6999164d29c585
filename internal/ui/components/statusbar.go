// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the twitchat TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twitchat-tui/internal/conn"
	"github.com/jeranaias/twitchat-tui/internal/ui/styles"
	"github.com/jeranaias/twitchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom bar: connection state, channel, mode, input tab,
// and the scroll/filter indicators.
type StatusBar struct {
	ConnStatus conn.Status
	Channel    string
	Nickname   string
	Mode       string // current window layer name (NORMAL, INPUT, HELP)

	TabIndex int
	TabCount int

	ScrollOffset int  // lines away from the live tail, 0 = live
	FilterActive bool // join/part lines hidden

	Width         int
	ShowShortcuts bool
	Spinner       string // reconnect spinner frame, empty when idle

	theme *styles.Theme
	now   func() time.Time
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
		now:           time.Now,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetClock replaces the time source used for the retry countdown. Test hook.
func (s *StatusBar) SetClock(now func() time.Time) {
	s.now = now
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [*] #channel [2/3] ^
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		s.stateStyle().Render(s.stateIndicator()),
		s.theme.ChannelName.Render("#" + util.TruncateWidth(s.Channel, 16)),
	}

	if s.TabCount > 1 {
		parts = append(parts, fmt.Sprintf("[%d/%d]", s.TabIndex+1, s.TabCount))
	}
	if s.ScrollOffset > 0 {
		parts = append(parts, s.theme.ScrollIndicator.Render("^"))
	}
	if s.FilterActive {
		parts = append(parts, s.theme.FilterIndicator.Render("F"))
	}

	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, " "))
}

// viewWide renders the full status bar.
// Format: [*] LIVE | #channel | nick | tab 2/3 | SCROLL -120 ... ? help  q quit
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{
		s.stateStyle().Render(s.stateIndicator() + " " + s.stateText()),
		s.theme.ChannelName.Render("#" + s.Channel),
	}

	if s.Nickname != "" {
		leftParts = append(leftParts, lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(s.Nickname))
	}
	if s.Mode != "" {
		leftParts = append(leftParts, lipgloss.NewStyle().Foreground(styles.Purple).Bold(true).Render(s.Mode))
	}
	if s.TabCount > 1 {
		leftParts = append(leftParts, fmt.Sprintf("tab %d/%d", s.TabIndex+1, s.TabCount))
	}
	if s.ScrollOffset > 0 {
		leftParts = append(leftParts, s.theme.ScrollIndicator.Render(fmt.Sprintf("SCROLL -%d", s.ScrollOffset)))
	}
	if s.FilterActive {
		leftParts = append(leftParts, s.theme.FilterIndicator.Render("no join/part"))
	}

	leftSection := strings.Join(leftParts, separator)

	rightSection := ""
	if s.ShowShortcuts {
		rightSection = s.renderShortcuts()
	}

	spacing := s.Width - lipgloss.Width(leftSection) - lipgloss.Width(rightSection) - 2
	if spacing < 1 {
		spacing = 1
	}

	return s.theme.StatusBar.Width(s.Width).Render(
		leftSection + strings.Repeat(" ", spacing) + rightSection)
}

// stateIndicator returns the shape indicator for the connection state.
// ACCESSIBILITY: shapes alongside colors for colorblind users.
func (s *StatusBar) stateIndicator() string {
	switch s.ConnStatus.State {
	case conn.StateJoined:
		return styles.StatusIndicators.Live
	case conn.StateConnecting, conn.StateAuthenticating:
		return styles.StatusIndicators.Connecting
	case conn.StateReconnecting:
		if s.Spinner != "" {
			return s.Spinner
		}
		return styles.StatusIndicators.Reconnecting
	default:
		return styles.StatusIndicators.Dead
	}
}

// stateText returns the display text, including the retry countdown while
// reconnecting.
func (s *StatusBar) stateText() string {
	st := s.ConnStatus
	if st.State == conn.StateReconnecting && !st.NextRetry.IsZero() {
		wait := st.NextRetry.Sub(s.now()).Round(time.Second)
		if wait < 0 {
			wait = 0
		}
		return fmt.Sprintf("%s %s (retry %d)", st.State, wait, st.Attempt)
	}
	return st.State.String()
}

func (s *StatusBar) stateStyle() lipgloss.Style {
	switch s.ConnStatus.State {
	case conn.StateJoined:
		return s.theme.StateLive
	case conn.StateConnecting, conn.StateAuthenticating, conn.StateReconnecting:
		return s.theme.StateConnecting
	default:
		return s.theme.StateDead
	}
}

// renderShortcuts renders keyboard shortcut hints for the current mode.
func (s *StatusBar) renderShortcuts() string {
	key := s.theme.ShortcutKey
	desc := s.theme.ShortcutDesc

	var shortcuts []string
	switch s.Mode {
	case "INPUT":
		shortcuts = []string{
			key.Render("Enter") + desc.Render(" send"),
			key.Render("Tab") + desc.Render(" draft"),
			key.Render("Esc") + desc.Render(" back"),
		}
	default:
		shortcuts = []string{
			key.Render("i") + desc.Render(" input"),
			key.Render("?") + desc.Render(" help"),
			key.Render("q") + desc.Render(" quit"),
		}
	}
	return strings.Join(shortcuts, "  ")
}
