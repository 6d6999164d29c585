// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the twitchat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// CHAT LINE STYLES
	// ==========================================================================

	Timestamp  lipgloss.Style
	ChatBody   lipgloss.Style
	ActionBody lipgloss.Style
	OwnNick    lipgloss.Style
	Notice     lipgloss.Style
	FatalLine  lipgloss.Style
	JoinPart   lipgloss.Style
	ClearChat  lipgloss.Style
	Badge      lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputCursor      lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style
	TabActive        lipgloss.Style
	TabInactive      lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar        lipgloss.Style
	StateLive        lipgloss.Style
	StateConnecting  lipgloss.Style
	StateDead        lipgloss.Style
	ChannelName      lipgloss.Style
	ScrollIndicator  lipgloss.Style
	FilterIndicator  lipgloss.Style
	ShortcutKey      lipgloss.Style
	ShortcutDesc     lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY STYLES
	// ==========================================================================

	HelpBox     lipgloss.Style
	HelpTitle   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpSection lipgloss.Style

	// Spinner for the reconnecting indicator
	Spinner lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Chat lines
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ChatBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ActionBody = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Italic(true)

	t.OwnNick = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Notice = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.FatalLine = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.JoinPart = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ClearChat = lipgloss.NewStyle().
		Foreground(Amber)

	t.Badge = lipgloss.NewStyle().
		Foreground(Purple)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.InputCursor = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Align(lipgloss.Right)

	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Align(lipgloss.Right)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StateLive = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StateConnecting = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StateDead = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ChannelName = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ScrollIndicator = lipgloss.NewStyle().
		Foreground(Amber)

	t.FilterIndicator = lipgloss.NewStyle().
		Foreground(Purple)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Help overlay
	t.HelpBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.HelpTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Width(14)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.HelpSection = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true).
		MarginTop(1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)
}

// Nick returns the style for a user's name, colored per the server tag or
// the deterministic fallback palette.
func (t *Theme) Nick(login, colorTag string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(NickColor(login, colorTag)).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
