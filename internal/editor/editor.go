// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the line editing engine for composing outgoing
// messages: a cursor-addressed rune buffer with emacs-style movement and
// kill operations.
//
// Every operation is defined as a no-op at the buffer edges. There is no
// out-of-bounds failure mode; callers never need to range-check before
// dispatching a keystroke.
package editor

import (
	"unicode"
)

// =============================================================================
// DIRECTION
// =============================================================================

// Direction selects which way a movement or word operation travels.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// =============================================================================
// EDITOR
// =============================================================================

// Editor is a single line buffer. The cursor is an insertion point in
// [0, len(text)]; index i means "before the i-th rune".
type Editor struct {
	text     []rune
	cursor   int
	lastKill []rune // most recent kill, restorable with Yank
}

// New creates an empty editor.
func New() *Editor {
	return &Editor{}
}

// Text returns the buffer contents.
func (e *Editor) Text() string {
	return string(e.text)
}

// Cursor returns the insertion point.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Len returns the buffer length in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// SetText replaces the buffer and clamps the cursor into range.
func (e *Editor) SetText(s string) {
	e.text = []rune(s)
	if e.cursor > len(e.text) {
		e.cursor = len(e.text)
	}
}

// =============================================================================
// INSERTION AND DELETION
// =============================================================================

// Insert splices a rune at the cursor and advances past it.
func (e *Editor) Insert(r rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// InsertString splices a string at the cursor.
func (e *Editor) InsertString(s string) {
	for _, r := range s {
		e.Insert(r)
	}
}

// DeleteRight removes the rune at the cursor without moving it.
func (e *Editor) DeleteRight() {
	if e.cursor >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
}

// DeleteLeft removes the rune before the cursor (backspace).
func (e *Editor) DeleteLeft() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

// =============================================================================
// MOVEMENT
// =============================================================================

// MoveChar shifts the cursor one rune in the given direction, bounds-clamped.
func (e *Editor) MoveChar(dir Direction) {
	e.cursor += int(dir)
	e.clamp()
}

// MoveToStart places the cursor before the first rune.
func (e *Editor) MoveToStart() {
	e.cursor = 0
}

// MoveToEnd places the cursor after the last rune.
func (e *Editor) MoveToEnd() {
	e.cursor = len(e.text)
}

// MoveWord moves the cursor to the next word boundary in the given
// direction. A word is a maximal run of non-whitespace.
func (e *Editor) MoveWord(dir Direction) {
	if dir == Forward {
		e.cursor = e.nextWordEnd(e.cursor)
	} else {
		e.cursor = e.prevWordStart(e.cursor)
	}
}

// nextWordEnd returns the position just past the word at or after pos.
func (e *Editor) nextWordEnd(pos int) int {
	n := len(e.text)
	for pos < n && unicode.IsSpace(e.text[pos]) {
		pos++
	}
	for pos < n && !unicode.IsSpace(e.text[pos]) {
		pos++
	}
	return pos
}

// prevWordStart returns the position of the first rune of the word before pos.
func (e *Editor) prevWordStart(pos int) int {
	for pos > 0 && unicode.IsSpace(e.text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(e.text[pos-1]) {
		pos--
	}
	return pos
}

// =============================================================================
// KILL OPERATIONS
// =============================================================================

// KillToStart deletes from the beginning of the line to the cursor.
func (e *Editor) KillToStart() {
	if e.cursor == 0 {
		return
	}
	e.rememberKill(e.text[:e.cursor])
	e.text = append([]rune{}, e.text[e.cursor:]...)
	e.cursor = 0
}

// KillToEnd deletes from the cursor to the end of the line.
func (e *Editor) KillToEnd() {
	if e.cursor >= len(e.text) {
		return
	}
	e.rememberKill(e.text[e.cursor:])
	e.text = e.text[:e.cursor]
}

// KillWordBack deletes the word before the cursor, including any trailing
// whitespace between it and the cursor.
func (e *Editor) KillWordBack() {
	if e.cursor == 0 {
		return
	}
	start := e.prevWordStart(e.cursor)
	e.rememberKill(e.text[start:e.cursor])
	e.text = append(e.text[:start], e.text[e.cursor:]...)
	e.cursor = start
}

// Yank re-inserts the most recent kill at the cursor. No-op when nothing
// has been killed yet.
func (e *Editor) Yank() {
	if len(e.lastKill) == 0 {
		return
	}
	for _, r := range e.lastKill {
		e.Insert(r)
	}
}

// rememberKill stores a copy of the deleted span for Yank.
func (e *Editor) rememberKill(span []rune) {
	e.lastKill = append(e.lastKill[:0], span...)
}

// =============================================================================
// TRANSPOSITION
// =============================================================================

// TransposeChar swaps the rune before the cursor with the one at it and
// advances the cursor, emacs style. At end of line the last two runes are
// swapped. No-op when fewer than two runes precede the operation.
func (e *Editor) TransposeChar() {
	n := len(e.text)
	if n < 2 || e.cursor == 0 {
		return
	}
	if e.cursor == n {
		e.text[n-2], e.text[n-1] = e.text[n-1], e.text[n-2]
		return
	}
	e.text[e.cursor-1], e.text[e.cursor] = e.text[e.cursor], e.text[e.cursor-1]
	e.cursor++
}

// TransposeWord swaps the word before the cursor with the word at or after
// it, leaving the cursor after the second word. No-op when there are not
// two words to swap.
func (e *Editor) TransposeWord() {
	// Word before the cursor.
	leftEnd := e.cursor
	for leftEnd > 0 && unicode.IsSpace(e.text[leftEnd-1]) {
		leftEnd--
	}
	leftStart := leftEnd
	for leftStart > 0 && !unicode.IsSpace(e.text[leftStart-1]) {
		leftStart--
	}
	if leftStart == leftEnd {
		return
	}

	// Word at or after the cursor.
	rightStart := e.cursor
	for rightStart < len(e.text) && unicode.IsSpace(e.text[rightStart]) {
		rightStart++
	}
	rightEnd := rightStart
	for rightEnd < len(e.text) && !unicode.IsSpace(e.text[rightEnd]) {
		rightEnd++
	}
	if rightStart == rightEnd || rightStart < leftEnd {
		return
	}

	left := string(e.text[leftStart:leftEnd])
	sep := string(e.text[leftEnd:rightStart])
	right := string(e.text[rightStart:rightEnd])

	swapped := []rune(right + sep + left)
	tail := append([]rune{}, e.text[rightEnd:]...)
	e.text = append(append(e.text[:leftStart], swapped...), tail...)
	e.cursor = leftStart + len(swapped)
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit returns the buffer contents and resets the editor to empty with
// the cursor at 0. The last-kill text survives so Yank still works in the
// next draft.
func (e *Editor) Submit() string {
	out := string(e.text)
	e.text = e.text[:0]
	e.cursor = 0
	return out
}

// Clear empties the buffer without returning it.
func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.cursor = 0
}

func (e *Editor) clamp() {
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor > len(e.text) {
		e.cursor = len(e.text)
	}
}
