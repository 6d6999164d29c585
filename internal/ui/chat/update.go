// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twitchat-tui/internal/editor"
)

// =============================================================================
// KEY DISPATCH
// =============================================================================

// handleKey routes a key press to the handler for the topmost layer. Lower
// layers are frozen: a Help overlay over Input leaves the draft untouched
// until Help is popped.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.layers.Top() {
	case LayerInput:
		return m.handleInputKey(msg)
	case LayerHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

// quit closes the connection and leaves the program. No pending sends are
// flushed.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.mgr.Close()
	return m, tea.Quit
}

// handleNormalKey handles scrolling and layer navigation.
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Back):
		if !m.layers.Pop() {
			return m.quit()
		}
		return m, nil

	case key.Matches(msg, m.keys.Input):
		// Entering input mode always resumes the draft at end-of-text,
		// wherever the cursor sat when the layer was last popped.
		m.tabs.Active().MoveToEnd()
		m.layers.Push(LayerInput)
		return m, nil

	case key.Matches(msg, m.keys.Chat):
		// Chat focus is the bottom layer; in Normal mode this is a no-op.
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.layers.Push(LayerHelp)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.history.Scroll(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.history.Scroll(-1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.history.Scroll(m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.history.Scroll(-m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.history.ScrollToOldest()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.history.ResetOffset()
		return m, nil

	case key.Matches(msg, m.keys.ToggleJoin):
		m.hideJoinPart = !m.hideJoinPart
		return m, nil
	}
	return m, nil
}

// handleInputKey handles the line editor. Editing bindings are matched
// before the scroll bindings because Ctrl+U and Ctrl+D mean kill-to-start
// and delete-right while composing.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.tabs.Active()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.layers.Pop()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.tabs.Cycle(editor.Forward)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tabs.Cycle(editor.Backward)
		return m, nil

	case key.Matches(msg, m.keys.CursorLeft):
		ed.MoveChar(editor.Backward)
		return m, nil

	case key.Matches(msg, m.keys.CursorRight):
		ed.MoveChar(editor.Forward)
		return m, nil

	case key.Matches(msg, m.keys.WordLeft):
		ed.MoveWord(editor.Backward)
		return m, nil

	case key.Matches(msg, m.keys.WordRight):
		ed.MoveWord(editor.Forward)
		return m, nil

	case key.Matches(msg, m.keys.LineStart):
		ed.MoveToStart()
		return m, nil

	case key.Matches(msg, m.keys.LineEnd):
		ed.MoveToEnd()
		return m, nil

	case key.Matches(msg, m.keys.DeleteLeft):
		ed.DeleteLeft()
		return m, nil

	case key.Matches(msg, m.keys.DeleteRight):
		ed.DeleteRight()
		return m, nil

	case key.Matches(msg, m.keys.KillToStart):
		ed.KillToStart()
		return m, nil

	case key.Matches(msg, m.keys.KillToEnd):
		ed.KillToEnd()
		return m, nil

	case key.Matches(msg, m.keys.KillWordBack):
		ed.KillWordBack()
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		ed.Yank()
		return m, nil

	case key.Matches(msg, m.keys.TransposeChar):
		ed.TransposeChar()
		return m, nil

	case key.Matches(msg, m.keys.TransposeWord):
		ed.TransposeWord()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.history.Scroll(m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.history.Scroll(-m.pageSize())
		return m, nil

	// Help opens from every layer, so "?" is not typeable in a draft.
	case key.Matches(msg, m.keys.Help):
		m.layers.Push(LayerHelp)
		return m, nil
	}

	// Everything else with a printable payload goes into the draft. Space
	// arrives as a named key with a " " rune.
	switch msg.Type {
	case tea.KeyRunes:
		ed.InsertString(string(msg.Runes))
	case tea.KeySpace:
		ed.Insert(' ')
	}
	return m, nil
}

// handleHelpKey dismisses the overlay. The layer below resumes untouched.
func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back),
		key.Matches(msg, m.keys.Help),
		key.Matches(msg, m.keys.Quit):
		m.layers.Pop()
	}
	return m, nil
}

// pageSize is one viewport worth of lines minus a row of overlap.
func (m Model) pageSize() int {
	if n := m.chatHeight() - 1; n > 1 {
		return n
	}
	return 1
}
