// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the twitchat TUI.

This package contains styled components built on top of the Bubble Tea and
Lip Gloss libraries, consistent with the twitchat design language.

# Core Components

StatusBar (statusbar.go) - Bottom status bar with connection state, channel,
input tab indicator, scroll and filter indicators, and keyboard shortcuts.

InlineSpinner (spinner.go) - Minimal spinner shown while reconnecting.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	view := bar.View()
*/
package components
