// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the twitchat TUI.

This package defines the color palette and themed styles used throughout
the application. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for selections and help keys
  - Cyan - Brand color for the user's own messages and shortcuts
  - Emerald - Connected/live indicator
  - Amber - Warnings and the reconnecting state
  - Rose - Errors and the disconnected state

## User Nick Colors

Chat nicknames use the server-provided color tag when present. Users
without one hash into a deterministic fallback palette, so a user keeps
the same color across messages and reconnects:

	color := styles.NickColor(login, tagColor)

## Text Colors

Hierarchical text color system:

	TextPrimary   - Message bodies
	TextSecondary - Supporting text
	TextMuted     - Timestamps, join/part lines
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

# Usage Example

	import "github.com/jeranaias/twitchat-tui/internal/ui/styles"

	theme := styles.NewTheme()
	line := theme.Nick(msg.Login, msg.Color).Render(msg.User) +
		": " + theme.ChatBody.Render(msg.Body)
*/
package styles
