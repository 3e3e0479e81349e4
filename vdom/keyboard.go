// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package vdom

import "github.com/wusyong/corgo/eventloop"

// KeyboardData is the payload of keydown/keyup/keypress events.
type KeyboardData struct {
	Key       eventloop.Key
	Code      eventloop.Code
	Location  KeyLocation
	Repeat    bool
	Modifiers eventloop.Modifiers
}

// MouseData is the payload of mouse events: cursor position in layout
// units and the button involved (mouse moves carry MouseLeft).
type MouseData struct {
	X, Y      float32
	Button    eventloop.MouseButton
	Modifiers eventloop.Modifiers
}

// WheelData is the payload of wheel events.
type WheelData struct {
	DeltaX, DeltaY float32
}
