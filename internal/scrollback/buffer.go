// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scrollback provides the bounded chat history buffer.
//
// The buffer stores events in arrival order with FIFO eviction at capacity,
// and tracks a view offset measured in entries back from the newest event.
// Offset 0 is live tail; a non-zero offset pins the view so new arrivals do
// not yank the reader away from history. The buffer is owned and mutated by
// the update loop only, so it needs no internal locking.
package scrollback

import (
	"github.com/jeranaias/twitchat-tui/internal/irc"
)

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is a fixed-capacity ring of chat events plus the user's view offset.
type Buffer struct {
	events   []irc.Event // ring storage
	head     int         // index of the oldest entry
	size     int         // number of stored entries
	capacity int

	offset int // entries back from the tail; 0 = live tail
}

// DefaultCapacity is used when the configured capacity is not positive.
const DefaultCapacity = 500

// New creates a buffer holding at most capacity events.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		events:   make([]irc.Event, capacity),
		capacity: capacity,
	}
}

// Len returns the number of stored events.
func (b *Buffer) Len() int {
	return b.size
}

// Capacity returns the maximum number of stored events.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Offset returns the current view offset.
func (b *Buffer) Offset() int {
	return b.offset
}

// Append stores an event, evicting the oldest entry at capacity.
//
// When the reader is scrolled back the offset grows with the tail so the
// visible window stays put; it only snaps back to live on ResetOffset.
func (b *Buffer) Append(ev irc.Event) {
	if b.size == b.capacity {
		b.events[b.head] = ev
		b.head = (b.head + 1) % b.capacity
		// The pinned window can no longer grow past the evicted entry.
		if b.offset > 0 && b.offset < b.size-1 {
			b.offset++
		}
		b.clampOffset()
		return
	}

	b.events[(b.head+b.size)%b.capacity] = ev
	b.size++
	if b.offset > 0 {
		b.offset++
		b.clampOffset()
	}
}

// at returns the stored event at logical index i (0 = oldest).
func (b *Buffer) at(i int) irc.Event {
	return b.events[(b.head+i)%b.capacity]
}

// =============================================================================
// VIEW AND SCROLL
// =============================================================================

// View returns the events visible in a viewport of height rows ending offset
// rows back from the tail, oldest first. The window is clamped at both ends
// and returns fewer than height entries near the start of history.
func (b *Buffer) View(offset, height int) []irc.Event {
	if height <= 0 || b.size == 0 {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	if offset > b.size-1 {
		offset = b.size - 1
	}

	end := b.size - offset // exclusive
	start := end - height
	if start < 0 {
		start = 0
	}

	out := make([]irc.Event, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, b.at(i))
	}
	return out
}

// ViewFiltered is View restricted to events accepted by keep. Filtering is a
// read-side projection: storage is untouched, so toggling a filter off
// restores the full history.
func (b *Buffer) ViewFiltered(offset, height int, keep func(irc.Event) bool) []irc.Event {
	if keep == nil {
		return b.View(offset, height)
	}
	if height <= 0 || b.size == 0 {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	if offset > b.size-1 {
		offset = b.size - 1
	}

	// Walk backwards from the window end collecting matches, then reverse.
	end := b.size - offset
	out := make([]irc.Event, 0, height)
	for i := end - 1; i >= 0 && len(out) < height; i-- {
		if ev := b.at(i); keep(ev) {
			out = append(out, ev)
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Scroll adjusts the view offset by delta (positive = further into history)
// and returns the resulting offset, clamped to [0, Len()).
func (b *Buffer) Scroll(delta int) int {
	b.offset += delta
	b.clampOffset()
	return b.offset
}

// ScrollToOldest pins the view at the start of history.
func (b *Buffer) ScrollToOldest() {
	if b.size > 0 {
		b.offset = b.size - 1
	}
}

// ResetOffset snaps the view back to the live tail. This is the only way
// the offset returns to 0 besides symmetric scrolling.
func (b *Buffer) ResetOffset() {
	b.offset = 0
}

func (b *Buffer) clampOffset() {
	if b.offset < 0 {
		b.offset = 0
	}
	if max := b.size - 1; b.offset > max {
		if max < 0 {
			max = 0
		}
		b.offset = max
	}
}

// =============================================================================
// FILTER HELPERS
// =============================================================================

// KeepChat drops join/part noise, keeping messages, moderation events and
// notices.
func KeepChat(ev irc.Event) bool {
	switch ev.(type) {
	case irc.Join, irc.Part:
		return false
	default:
		return true
	}
}

// KeepUser keeps only chat messages authored by the given login or display
// name.
func KeepUser(user string) func(irc.Event) bool {
	return func(ev irc.Event) bool {
		msg, ok := ev.(irc.Message)
		if !ok {
			return false
		}
		return msg.User == user || msg.Login == user
	}
}
