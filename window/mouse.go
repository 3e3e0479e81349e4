// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/state"
	"github.com/wusyong/corgo/vdom"
)

// mouseState tracks the cursor in layout units plus the hovered and
// pressed nodes, owned by the window task.
type mouseState struct {
	x, y    float32
	hover   dom.NodeID
	pressed dom.NodeID
}

// forget drops references to a destroyed node.
func (m *mouseState) forget(id dom.NodeID) {
	if m.hover == id {
		m.hover = 0
	}
	if m.pressed == id {
		m.pressed = 0
	}
}

// hitTest returns the topmost node containing the point: the last match
// in document order, which is the deepest (or latest-painted) node.
func hitTest(t *dom.Tree[state.NodeState], x, y float32) dom.NodeID {
	var hit dom.NodeID
	t.WalkDepthFirst(func(n *dom.Node[state.NodeState]) {
		if n.State.Layout.Ready && n.State.Layout.Rect.Contains(x, y) {
			hit = n.ID
		}
	})
	return hit
}

// cursorMoved updates hover tracking and fires mousemove plus the
// enter/leave and over/out pairs when the hovered node changes.
func (t *task) cursorMoved(x, y float32) {
	t.mouse.x, t.mouse.y = x, y
	target := hitTest(t.tree, x, y)

	if target != t.mouse.hover {
		if old := t.mouse.hover; old != 0 {
			t.fireMouse(old, "mouseout", eventloop.MouseLeft)
			t.fireMouse(old, "mouseleave", eventloop.MouseLeft)
		}
		if target != 0 {
			t.fireMouse(target, "mouseover", eventloop.MouseLeft)
			t.fireMouse(target, "mouseenter", eventloop.MouseLeft)
		}
		t.mouse.hover = target
	}

	if target != 0 {
		t.fireMouse(target, "mousemove", eventloop.MouseLeft)
	}
}

// cursorLeft clears hover tracking when the cursor exits the window.
func (t *task) cursorLeft() {
	if old := t.mouse.hover; old != 0 {
		t.fireMouse(old, "mouseout", eventloop.MouseLeft)
		t.fireMouse(old, "mouseleave", eventloop.MouseLeft)
		t.mouse.hover = 0
	}
}

// mouseInput fires button events at the hovered node. Pressing a
// focusable node focuses it unless the node suppresses focus; releasing
// over the pressed node fires click (or contextmenu for the right
// button).
func (t *task) mouseInput(e eventloop.MouseInput) {
	target := t.mouse.hover

	switch e.State {
	case eventloop.Pressed:
		t.mouse.pressed = target
		if target == 0 {
			return
		}
		t.fireMouse(target, "mousedown", e.Button)

		if n, ok := t.tree.Get(target); ok &&
			n.State.Focus.AcceptsFocus() &&
			!state.Suppressed(t.tree, target, "focus") {
			if t.focus.Set(t.tree, target) {
				t.fireMouse(target, "focus", e.Button)
				t.sendDirty()
			}
		}

	case eventloop.Released:
		pressed := t.mouse.pressed
		t.mouse.pressed = 0
		if target == 0 {
			return
		}
		t.fireMouse(target, "mouseup", e.Button)
		if target == pressed {
			name := "click"
			if e.Button == eventloop.MouseRight {
				name = "contextmenu"
			}
			t.fireMouse(target, name, e.Button)
		}
	}
}

// wheel fires a wheel event at the hovered node.
func (t *task) wheel(e eventloop.MouseWheel) {
	if t.mouse.hover == 0 {
		return
	}
	if state.Suppressed(t.tree, t.mouse.hover, "wheel") {
		return
	}
	t.engine.SendEvent(vdom.Event{
		Target:   t.mouse.hover,
		Priority: vdom.PriorityMedium,
		Name:     "wheel",
		Data:     vdom.WheelData{DeltaX: e.DeltaX, DeltaY: e.DeltaY},
		Bubbles:  true,
	})
}

func (t *task) fireMouse(target dom.NodeID, name string, button eventloop.MouseButton) {
	t.fire(vdom.Event{
		Target:   target,
		Priority: vdom.PriorityMedium,
		Name:     name,
		Data: vdom.MouseData{
			X: t.mouse.x, Y: t.mouse.y,
			Button:    button,
			Modifiers: t.mods,
		},
		Bubbles: true,
	})
}
