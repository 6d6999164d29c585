// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "testing"

func TestLayerStack_BottomIsAlwaysNormal(t *testing.T) {
	s := NewLayerStack()
	if s.Top() != LayerNormal {
		t.Errorf("Expected LayerNormal on a fresh stack, got %v", s.Top())
	}
	if s.Depth() != 1 {
		t.Errorf("Expected depth 1, got %d", s.Depth())
	}
}

func TestLayerStack_PushPop(t *testing.T) {
	s := NewLayerStack()
	s.Push(LayerInput)
	s.Push(LayerHelp)

	if s.Top() != LayerHelp {
		t.Errorf("Expected LayerHelp on top, got %v", s.Top())
	}
	if !s.Contains(LayerInput) {
		t.Error("Expected LayerInput below the overlay")
	}

	if !s.Pop() {
		t.Error("Pop above the bottom should succeed")
	}
	if s.Top() != LayerInput {
		t.Errorf("Expected LayerInput after pop, got %v", s.Top())
	}
}

func TestLayerStack_PopAtBottomSignalsQuit(t *testing.T) {
	s := NewLayerStack()
	if s.Pop() {
		t.Error("Pop at the bottom must return false")
	}
	if s.Depth() != 1 {
		t.Errorf("Bottom layer must survive the pop, depth = %d", s.Depth())
	}
}

func TestLayer_String(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerNormal, "NORMAL"},
		{LayerInput, "INPUT"},
		{LayerHelp, "HELP"},
	}
	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}
