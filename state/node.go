// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package state maintains per-node derived state over the shadow tree:
// resolved layout geometry, focus eligibility, and event suppression.
// The reducer recomputes exactly the fields a mutation batch could have
// affected and reports which nodes may need repainting.
package state

import (
	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/layout"
)

// NodeState is the derived-state record attached to every shadow node.
type NodeState struct {
	Layout         LayoutState
	Focus          FocusLevel
	Focused        bool
	PreventDefault PreventDefault
}

// LayoutState ties a shadow node to its measurement node in the box
// model solver, plus the geometry resolved by the last compute pass.
// Node is created lazily on the reducer's first visit and never
// recreated while the shadow node exists.
type LayoutState struct {
	Node  layout.NodeHandle
	Rect  layout.Rect
	Ready bool

	// Last inputs pushed into the solver, kept to suppress no-op writes.
	style    layout.Style
	text     string
	children []layout.NodeHandle
}

// FocusLevel is a node's focus eligibility.
type FocusLevel uint8

const (
	// Unfocusable nodes never receive focus.
	Unfocusable FocusLevel = iota
	// Focusable nodes participate in tab order and accept click focus.
	Focusable
	// Programmatic nodes accept focus only through an explicit request
	// (click or API), never from tab traversal.
	Programmatic
)

// AcceptsFocus reports whether the level allows receiving focus at all.
func (l FocusLevel) AcceptsFocus() bool { return l != Unfocusable }

// PreventDefault is the event-suppression category carried by the
// "prevent-default" attribute. When a node's category matches an event
// about to be delivered, the event (and its default action) is skipped.
type PreventDefault uint8

const (
	// Unknown is the absent/unrecognized category; it suppresses nothing.
	Unknown PreventDefault = iota
	PreventFocus
	PreventKeyPress
	PreventKeyDown
	PreventKeyUp
	PreventClick
	PreventMouseDown
	PreventMouseUp
	PreventMouseEnter
	PreventMouseLeave
	PreventMouseOver
	PreventMouseOut
	PreventContextMenu
	PreventWheel
)

// preventDefaultValues maps the attribute value to its category.
var preventDefaultValues = map[string]PreventDefault{
	"onfocus":       PreventFocus,
	"onkeypress":    PreventKeyPress,
	"onkeydown":     PreventKeyDown,
	"onkeyup":       PreventKeyUp,
	"onclick":       PreventClick,
	"onmousedown":   PreventMouseDown,
	"onmouseup":     PreventMouseUp,
	"onmouseenter":  PreventMouseEnter,
	"onmouseleave":  PreventMouseLeave,
	"onmouseover":   PreventMouseOver,
	"onmouseout":    PreventMouseOut,
	"oncontextmenu": PreventContextMenu,
	"onwheel":       PreventWheel,
}

// suppressedEvents maps a category to the event name it suppresses.
var suppressedEvents = map[PreventDefault]string{
	PreventFocus:       "focus",
	PreventKeyPress:    "keypress",
	PreventKeyDown:     "keydown",
	PreventKeyUp:       "keyup",
	PreventClick:       "click",
	PreventMouseDown:   "mousedown",
	PreventMouseUp:     "mouseup",
	PreventMouseEnter:  "mouseenter",
	PreventMouseLeave:  "mouseleave",
	PreventMouseOver:   "mouseover",
	PreventMouseOut:    "mouseout",
	PreventContextMenu: "contextmenu",
	PreventWheel:       "wheel",
}

// Suppresses reports whether delivery of the named event to this node
// should be skipped.
func (p PreventDefault) Suppresses(event string) bool {
	return p != Unknown && suppressedEvents[p] == event
}

// Suppressed is a convenience over the tree: it reports whether the
// named event should be skipped for the node. A stale handle suppresses
// nothing.
func Suppressed(t *dom.Tree[NodeState], id dom.NodeID, event string) bool {
	n, ok := t.Get(id)
	if !ok {
		return false
	}
	return n.State.PreventDefault.Suppresses(event)
}
