// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main Bubble Tea model for twitchat.
//
// The model is the event loop: one Update goroutine owns the window layer
// stack, the scrollback buffer, the draft tabs and the connection manager's
// state machine. Network goroutines deliver conn.Event values through
// Program.Send as ConnEventMsg; a 250ms tick drives keepalive and reconnect
// bookkeeping.
//
// # Window Layers
//
// The UI is modal. A stack of layers decides how keys are interpreted:
//
//   - Normal (bottom, always present): scrolling and navigation. `i` opens
//     the input layer, `?` the help overlay, `q` or Esc quits.
//   - Input: the multi-tab line editor with emacs-style bindings. Esc
//     returns to Normal with the draft intact.
//   - Help: a read-only overlay; the layer below keeps its state.
//
// Esc pops the topmost layer; popping the bottom layer quits the program.
package chat
