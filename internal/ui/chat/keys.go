// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings for the chat interface, along with
// help text generation for the help overlay.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
// Each binding supports multiple keys and includes help text.
type KeyMap struct {
	// Normal layer
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Input      key.Binding
	Chat       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ToggleJoin key.Binding

	// Input layer: editing
	Submit        key.Binding
	Back          key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	CursorLeft    key.Binding
	CursorRight   key.Binding
	WordLeft      key.Binding
	WordRight     key.Binding
	LineStart     key.Binding
	LineEnd       key.Binding
	DeleteLeft    key.Binding
	DeleteRight   key.Binding
	KillToStart   key.Binding
	KillToEnd     key.Binding
	KillWordBack  key.Binding
	Yank          key.Binding
	TransposeChar key.Binding
	TransposeWord key.Binding

	// Always active
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
// Editing bindings follow the usual emacs/readline conventions.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "oldest line"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "back to live"),
		),
		Input: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "compose message"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat focus"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ToggleJoin: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "toggle join/part lines"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next draft"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous draft"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("left", "ctrl+b"),
			key.WithHelp("left/C-b", "cursor left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right", "ctrl+f"),
			key.WithHelp("right/C-f", "cursor right"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("alt+b", "ctrl+left"),
			key.WithHelp("M-b", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("alt+f", "ctrl+right"),
			key.WithHelp("M-f", "word right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("ctrl+a", "home"),
			key.WithHelp("C-a", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("ctrl+e", "end"),
			key.WithHelp("C-e", "line end"),
		),
		DeleteLeft: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("Bksp", "delete left"),
		),
		DeleteRight: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("Del/C-d", "delete right"),
		),
		KillToStart: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "kill to start"),
		),
		KillToEnd: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "kill to end"),
		),
		KillWordBack: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "kill word back"),
		),
		Yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "yank last kill"),
		),
		TransposeChar: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "transpose chars"),
		),
		TransposeWord: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("M-t", "transpose words"),
		),

		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// HELP TEXT DATA
// =============================================================================

// HelpItem represents a single help entry with key and description.
type HelpItem struct {
	Key  string
	Desc string
}

// HelpSection groups help items for the overlay.
type HelpSection struct {
	Title string
	Items []HelpItem
}

// GetHelpSections returns the help overlay content, grouped by mode.
func GetHelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Normal mode",
			Items: []HelpItem{
				{"i", "Compose a message"},
				{"c", "Chat focus"},
				{"up/down, k/j", "Scroll chat history"},
				{"PgUp/PgDn", "Scroll by page"},
				{"Home/End, g/G", "Oldest line / back to live"},
				{"J", "Toggle join/part lines"},
				{"?", "Toggle this help"},
				{"q", "Quit"},
			},
		},
		{
			Title: "Input mode",
			Items: []HelpItem{
				{"Enter", "Send message"},
				{"Tab / S-Tab", "Cycle message drafts"},
				{"Esc", "Back to normal mode"},
				{"C-a / C-e", "Start / end of line"},
				{"M-b / M-f", "Word left / right"},
				{"C-u / C-k", "Kill to start / end"},
				{"C-w", "Kill word backwards"},
				{"C-y", "Yank last kill"},
				{"C-t / M-t", "Transpose chars / words"},
			},
		},
		{
			Title: "Anywhere",
			Items: []HelpItem{
				{"C-c", "Quit immediately"},
				{"/me <action>", "Send an action message"},
			},
		},
	}
}
