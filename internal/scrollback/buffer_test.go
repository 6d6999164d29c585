// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scrollback provides the bounded chat history buffer.
package scrollback

import (
	"strconv"
	"testing"

	"github.com/jeranaias/twitchat-tui/internal/irc"
)

// makeMessage builds a chat message with a numbered body for ordering checks.
func makeMessage(n int) irc.Message {
	return irc.Message{ID: strconv.Itoa(n), User: "user", Body: "msg-" + strconv.Itoa(n)}
}

func body(ev irc.Event) string {
	return ev.(irc.Message).Body
}

// =============================================================================
// CAPACITY AND EVICTION
// =============================================================================

func TestBuffer_EvictsOldestAtCapacity(t *testing.T) {
	buf := New(5)
	for i := 0; i < 12; i++ {
		buf.Append(makeMessage(i))
	}

	if buf.Len() != 5 {
		t.Fatalf("Expected len 5 after overflow, got %d", buf.Len())
	}

	// The buffer holds exactly the 5 most recent, in arrival order.
	view := buf.View(0, 5)
	want := []string{"msg-7", "msg-8", "msg-9", "msg-10", "msg-11"}
	for i, w := range want {
		if body(view[i]) != w {
			t.Errorf("view[%d]: expected %s, got %s", i, w, body(view[i]))
		}
	}
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	if got := New(0).Capacity(); got != DefaultCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultCapacity, got)
	}
	if got := New(-3).Capacity(); got != DefaultCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultCapacity, got)
	}
}

// =============================================================================
// VIEW WINDOW
// =============================================================================

func TestBuffer_ViewClamping(t *testing.T) {
	buf := New(10)
	for i := 0; i < 4; i++ {
		buf.Append(makeMessage(i))
	}

	tests := []struct {
		name   string
		offset int
		height int
		want   []string
	}{
		{"live tail", 0, 2, []string{"msg-2", "msg-3"}},
		{"full window", 0, 4, []string{"msg-0", "msg-1", "msg-2", "msg-3"}},
		{"taller than history", 0, 50, []string{"msg-0", "msg-1", "msg-2", "msg-3"}},
		{"offset into history", 2, 2, []string{"msg-0", "msg-1"}},
		{"offset beyond history", 99, 2, []string{"msg-0"}},
		{"negative offset", -5, 2, []string{"msg-2", "msg-3"}},
		{"zero height", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := buf.View(tt.offset, tt.height)
			if len(view) != len(tt.want) {
				t.Fatalf("Expected %d entries, got %d", len(tt.want), len(view))
			}
			for i, w := range tt.want {
				if body(view[i]) != w {
					t.Errorf("view[%d]: expected %s, got %s", i, w, body(view[i]))
				}
			}
		})
	}
}

func TestBuffer_ViewEmpty(t *testing.T) {
	if view := New(5).View(0, 10); view != nil {
		t.Errorf("Expected nil view on empty buffer, got %v", view)
	}
}

// =============================================================================
// SCROLLING
// =============================================================================

func TestBuffer_ScrollSymmetry(t *testing.T) {
	buf := New(100)
	for i := 0; i < 50; i++ {
		buf.Append(makeMessage(i))
	}

	buf.Scroll(10)
	start := buf.Offset()

	// Opposite scrolls of equal magnitude cancel out.
	buf.Scroll(-7)
	buf.Scroll(7)
	if buf.Offset() != start {
		t.Errorf("Expected offset %d after symmetric scroll, got %d", start, buf.Offset())
	}
}

func TestBuffer_ScrollClamping(t *testing.T) {
	buf := New(100)
	for i := 0; i < 10; i++ {
		buf.Append(makeMessage(i))
	}

	if got := buf.Scroll(-5); got != 0 {
		t.Errorf("Expected clamp at 0, got %d", got)
	}
	if got := buf.Scroll(500); got != 9 {
		t.Errorf("Expected clamp at len-1, got %d", got)
	}
}

func TestBuffer_AppendWhileScrolledKeepsView(t *testing.T) {
	buf := New(100)
	for i := 0; i < 20; i++ {
		buf.Append(makeMessage(i))
	}

	buf.Scroll(5)
	before := buf.View(buf.Offset(), 3)

	// New arrivals must not move the reader's window.
	for i := 20; i < 25; i++ {
		buf.Append(makeMessage(i))
	}
	after := buf.View(buf.Offset(), 3)

	for i := range before {
		if body(before[i]) != body(after[i]) {
			t.Errorf("Window moved: entry %d was %s, now %s", i, body(before[i]), body(after[i]))
		}
	}

	// Only an explicit reset returns to the live tail.
	buf.ResetOffset()
	if buf.Offset() != 0 {
		t.Errorf("Expected offset 0 after reset, got %d", buf.Offset())
	}
	tail := buf.View(0, 1)
	if body(tail[0]) != "msg-24" {
		t.Errorf("Expected live tail to show msg-24, got %s", body(tail[0]))
	}
}

func TestBuffer_ScrollToOldest(t *testing.T) {
	buf := New(10)
	for i := 0; i < 6; i++ {
		buf.Append(makeMessage(i))
	}
	buf.ScrollToOldest()
	if buf.Offset() != 5 {
		t.Errorf("Expected offset 5, got %d", buf.Offset())
	}
	view := buf.View(buf.Offset(), 1)
	if body(view[0]) != "msg-0" {
		t.Errorf("Expected oldest entry, got %s", body(view[0]))
	}
}

// =============================================================================
// FILTERS
// =============================================================================

func TestBuffer_FilterIsReadSideOnly(t *testing.T) {
	buf := New(20)
	buf.Append(irc.Message{ID: "1", User: "a", Body: "one"})
	buf.Append(irc.Join{ID: "2", User: "b"})
	buf.Append(irc.Message{ID: "3", User: "b", Body: "two"})
	buf.Append(irc.Part{ID: "4", User: "b"})

	filtered := buf.ViewFiltered(0, 10, KeepChat)
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 chat events, got %d", len(filtered))
	}

	// Raw history is fully recoverable once the filter is off.
	if full := buf.View(0, 10); len(full) != 4 {
		t.Errorf("Expected 4 raw events, got %d", len(full))
	}
}

func TestBuffer_KeepUser(t *testing.T) {
	buf := New(20)
	buf.Append(irc.Message{ID: "1", User: "Alice", Login: "alice", Body: "hi"})
	buf.Append(irc.Message{ID: "2", User: "Bob", Login: "bob", Body: "yo"})
	buf.Append(irc.SystemNotice{ID: "3", Text: "notice"})

	got := buf.ViewFiltered(0, 10, KeepUser("alice"))
	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	if body(got[0]) != "hi" {
		t.Errorf("Expected alice's message, got %s", body(got[0]))
	}
}
