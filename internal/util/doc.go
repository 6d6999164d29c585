// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the twitchat application.
//
// This package contains common helper functions used throughout the
// application for terminal width math and file operations.
//
// # Key Functions
//
// String Utilities:
//   - StringWidth, PrefixWidth: Display-column math for CJK and emoji
//   - TruncateWidth: Safe truncation for display
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Place the cursor where the glyph actually renders
//	col := util.PrefixWidth(runes, cursor)
//
//	// Truncate long names safely for the status bar
//	display := util.TruncateWidth(channel, 20)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
