// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"github.com/wusyong/corgo/dom"
)

// FocusState tracks the single focus target of one window. It is owned
// by the window task and destroyed with the window.
//
// The machine has two states: unfocused (Last() == 0) and focused on a
// live node. At most one node in the tree carries Focused == true at any
// time; FocusState is the only writer of that flag.
type FocusState struct {
	last  dom.NodeID
	dirty bool
}

// Last returns the currently focused handle, or 0 when unfocused.
func (f *FocusState) Last() dom.NodeID { return f.last }

// Progress moves focus to the tab-order successor (forward) or
// predecessor (!forward) of the current target. Tab order is depth-first
// document order filtered to Focusable nodes, wrapping at the ends.
// Programmatic nodes are skipped. It returns true when the focus target
// changed. With no Focusable node in the tree the machine stays (or
// becomes) unfocused.
func (f *FocusState) Progress(t *dom.Tree[NodeState], forward bool) bool {
	var order []dom.NodeID
	t.WalkDepthFirst(func(n *dom.Node[NodeState]) {
		if n.State.Focus == Focusable {
			order = append(order, n.ID)
		}
	})
	if len(order) == 0 {
		return f.Set(t, 0)
	}

	idx := -1
	for i, id := range order {
		if id == f.last {
			idx = i
			break
		}
	}
	var next dom.NodeID
	switch {
	case idx < 0 && forward:
		next = order[0]
	case idx < 0:
		next = order[len(order)-1]
	case forward:
		next = order[(idx+1)%len(order)]
	default:
		next = order[(idx-1+len(order))%len(order)]
	}
	return f.Set(t, next)
}

// Set focuses an explicit target (0 clears focus). Unlike Progress it
// accepts Programmatic nodes. Unfocusable or stale handles clear focus.
// It returns true when the focus target changed.
func (f *FocusState) Set(t *dom.Tree[NodeState], id dom.NodeID) bool {
	if id != 0 {
		n, ok := t.Get(id)
		if !ok || !n.State.Focus.AcceptsFocus() {
			id = 0
		}
	}
	if id == f.last {
		return false
	}
	if prev, ok := t.Get(f.last); ok {
		prev.State.Focused = false
	}
	if n, ok := t.Get(id); ok {
		n.State.Focused = true
	}
	f.last = id
	f.dirty = true
	return true
}

// Prune reacts to one structural mutation before it is applied: when the
// mutation destroys the focused node or any ancestor of it, the machine
// transitions to unfocused. Must run strictly before the reducer
// processes the same batch, while the doomed subtree is still readable.
func (f *FocusState) Prune(m dom.Mutation, t *dom.Tree[NodeState]) {
	if f.last == 0 {
		return
	}
	root := dom.RemovesSubtree(m)
	if root == 0 {
		return
	}
	if t.IsAncestor(root, f.last) {
		if n, ok := t.Get(f.last); ok {
			n.State.Focused = false
		}
		f.last = 0
		f.dirty = true
	}
}

// Clean reports whether focus changed since the last call and resets the
// flag. A true result forces a full repaint: focus decoration may touch
// visual regions far from either node, so per-node tracking is not worth
// it.
func (f *FocusState) Clean() bool {
	d := f.dirty
	f.dirty = false
	return d
}
