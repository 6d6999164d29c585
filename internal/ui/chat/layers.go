// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the modal window layers. Keys are dispatched to the
// top layer only; lower layers keep their state frozen underneath, so a
// half-typed draft survives opening the help overlay.
package chat

// =============================================================================
// WINDOW LAYERS
// =============================================================================

// Layer identifies one modal window layer.
type Layer int

const (
	LayerNormal Layer = iota // navigation and commands
	LayerInput               // composing a message
	LayerHelp                // help overlay
)

// String returns the display string for the layer.
func (l Layer) String() string {
	switch l {
	case LayerNormal:
		return "NORMAL"
	case LayerInput:
		return "INPUT"
	case LayerHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// LayerStack is the stack of active window layers. The bottom element is
// always LayerNormal; pop on the last layer is a no-op and signals quit
// to the caller instead.
type LayerStack struct {
	layers []Layer
}

// NewLayerStack returns a stack holding just the normal layer.
func NewLayerStack() *LayerStack {
	return &LayerStack{layers: []Layer{LayerNormal}}
}

// Top returns the active layer.
func (s *LayerStack) Top() Layer {
	return s.layers[len(s.layers)-1]
}

// Push activates a new layer on top of the stack.
func (s *LayerStack) Push(l Layer) {
	s.layers = append(s.layers, l)
}

// Pop removes the top layer. It returns false when the stack is already at
// the bottom, leaving the normal layer in place.
func (s *LayerStack) Pop() bool {
	if len(s.layers) <= 1 {
		return false
	}
	s.layers = s.layers[:len(s.layers)-1]
	return true
}

// Contains reports whether the given layer is anywhere in the stack.
func (s *LayerStack) Contains(l Layer) bool {
	for _, have := range s.layers {
		if have == l {
			return true
		}
	}
	return false
}

// Depth returns the number of active layers.
func (s *LayerStack) Depth() int {
	return len(s.layers)
}
