// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the line editing engine for composing outgoing
// messages.
//
// This file adds draft tabs: several independent line buffers the user can
// cycle through while composing, so a half-written message survives
// switching to another draft.
package editor

// Tabs is a fixed set of draft buffers with one active index.
type Tabs struct {
	drafts []*Editor
	active int
}

// DefaultTabCount is the number of drafts when the configured count is not
// positive.
const DefaultTabCount = 3

// NewTabs creates count independent drafts with the first one active.
func NewTabs(count int) *Tabs {
	if count <= 0 {
		count = DefaultTabCount
	}
	drafts := make([]*Editor, count)
	for i := range drafts {
		drafts[i] = New()
	}
	return &Tabs{drafts: drafts}
}

// Active returns the currently selected draft.
func (t *Tabs) Active() *Editor {
	return t.drafts[t.active]
}

// ActiveIndex returns the selected draft index.
func (t *Tabs) ActiveIndex() int {
	return t.active
}

// Count returns the number of drafts.
func (t *Tabs) Count() int {
	return len(t.drafts)
}

// Cycle switches the active draft by one in the given direction, wrapping
// modulo the tab count. Buffer contents are untouched.
func (t *Tabs) Cycle(dir Direction) {
	n := len(t.drafts)
	t.active = ((t.active+int(dir))%n + n) % n
}

// Get returns the draft at index i, clamped into range.
func (t *Tabs) Get(i int) *Editor {
	if i < 0 {
		i = 0
	}
	if i >= len(t.drafts) {
		i = len(t.drafts) - 1
	}
	return t.drafts[i]
}
