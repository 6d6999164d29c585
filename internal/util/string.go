// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the twitchat application.
package util

import "github.com/mattn/go-runewidth"

// UNICODE: chat text mixes ASCII, CJK and emoji freely. All width math
// goes through go-runewidth so double-width characters occupy two columns
// and the cursor lands where the glyph actually renders.

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PrefixWidth returns the display width of the first n runes. This is the
// cursor column for a cursor sitting at rune index n.
func PrefixWidth(runes []rune, n int) int {
	if n > len(runes) {
		n = len(runes)
	}
	width := 0
	for _, r := range runes[:n] {
		width += runewidth.RuneWidth(r)
	}
	return width
}

// TruncateWidth truncates a string to a maximum display width, appending
// "..." when something was cut. Safe for double-width characters.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
