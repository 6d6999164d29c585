// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNickColor_UsesServerTag(t *testing.T) {
	got := NickColor("somebody", "#1E90FF")
	if got != lipgloss.Color("#1E90FF") {
		t.Errorf("NickColor = %v, want server tag color", got)
	}
}

func TestNickColor_RejectsMalformedTag(t *testing.T) {
	bad := []string{"1E90FF", "#12345", "#GGGGGG", "red", "#1E90FF; rm -rf"}
	for _, tag := range bad {
		got := string(NickColor("somebody", tag))
		if !strings.HasPrefix(got, "#") || len(got) != 7 {
			t.Errorf("NickColor(%q) = %q, want a palette color", tag, got)
		}
		if got == tag {
			t.Errorf("malformed tag %q passed through", tag)
		}
	}
}

func TestNickColor_DeterministicFallback(t *testing.T) {
	a := NickColor("somebody", "")
	b := NickColor("somebody", "")
	if a != b {
		t.Errorf("same login produced different colors: %v vs %v", a, b)
	}
}

func TestNickColor_SpreadsAcrossPalette(t *testing.T) {
	logins := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	seen := make(map[lipgloss.Color]bool)
	for _, login := range logins {
		seen[NickColor(login, "")] = true
	}
	if len(seen) < 3 {
		t.Errorf("only %d distinct colors for %d logins", len(seen), len(logins))
	}
}
