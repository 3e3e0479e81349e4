// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package eventloop

// WindowID identifies a native window for the lifetime of the process.
// Multi-window fan-out filters on it at every dispatch step.
type WindowID uint64

// Event is a single item delivered by the host loop: either a window
// event translated from the OS, or a User event injected through a Proxy.
type Event interface {
	isEvent()
}

// ButtonState reports whether a key or mouse button transitioned to
// pressed or released.
type ButtonState uint8

const (
	Pressed ButtonState = iota
	Released
)

// String returns "pressed" or "released".
func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Size is a window size in physical (device) pixels.
type Size struct {
	Width  float32
	Height float32
}

// CloseRequested reports that the user asked the window to close.
type CloseRequested struct {
	Window WindowID
}

// Resized reports a new inner size for the window, in physical pixels.
type Resized struct {
	Window WindowID
	Size   Size
}

// KeyboardInput reports a key transition on the window.
type KeyboardInput struct {
	Window WindowID
	State  ButtonState
	Key    Key
	Code   Code
	Repeat bool
}

// ModifiersChanged reports the new modifier set for the window.
type ModifiersChanged struct {
	Window    WindowID
	Modifiers Modifiers
}

// CursorMoved reports the cursor position in physical pixels relative to
// the window origin.
type CursorMoved struct {
	Window WindowID
	X, Y   float32
}

// CursorLeft reports that the cursor left the window.
type CursorLeft struct {
	Window WindowID
}

// MouseInput reports a mouse button transition at the last cursor position.
type MouseInput struct {
	Window WindowID
	State  ButtonState
	Button MouseButton
}

// MouseWheel reports scroll deltas in lines.
type MouseWheel struct {
	Window         WindowID
	DeltaX, DeltaY float32
}

// User carries an injected payload through the host loop. The payload's
// meaning is up to the injector; corgo uses it for the renderer wake-up
// protocol.
type User struct {
	Payload any
}

func (CloseRequested) isEvent()   {}
func (Resized) isEvent()          {}
func (KeyboardInput) isEvent()    {}
func (ModifiersChanged) isEvent() {}
func (CursorMoved) isEvent()      {}
func (CursorLeft) isEvent()       {}
func (MouseInput) isEvent()       {}
func (MouseWheel) isEvent()       {}
func (User) isEvent()             {}
