// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import "github.com/wusyong/corgo/dom"

// DirtyNodes tracks which nodes must repaint: either an explicit set of
// handles or the absorbing All marker used after bulk structural changes
// such as a resize. It is a sound over-approximation: a node whose
// visual output changed is always a member (or the value is All).
//
// The zero value is the bottom element (nothing dirty).
type DirtyNodes struct {
	all   bool
	nodes map[dom.NodeID]struct{}
}

// AllDirty returns the top element.
func AllDirty() DirtyNodes { return DirtyNodes{all: true} }

// MarkAll raises the value to All. Any later Mark is absorbed.
func (d *DirtyNodes) MarkAll() {
	d.all = true
	d.nodes = nil
}

// Mark inserts one handle. No-op when the value is already All.
func (d *DirtyNodes) Mark(id dom.NodeID) {
	if d.all {
		return
	}
	if d.nodes == nil {
		d.nodes = make(map[dom.NodeID]struct{})
	}
	d.nodes[id] = struct{}{}
}

// Drop removes a destroyed node's handle. All stays All: the destroyed
// region still needs repainting.
func (d *DirtyNodes) Drop(id dom.NodeID) {
	if d.all {
		return
	}
	delete(d.nodes, id)
}

// IsEmpty reports whether nothing needs repainting. All is never empty.
func (d *DirtyNodes) IsEmpty() bool {
	return !d.all && len(d.nodes) == 0
}

// IsAll reports whether the value is the absorbing top element.
func (d *DirtyNodes) IsAll() bool { return d.all }

// Contains reports membership. All contains every handle.
func (d *DirtyNodes) Contains(id dom.NodeID) bool {
	if d.all {
		return true
	}
	_, ok := d.nodes[id]
	return ok
}

// Take returns the current value and resets the receiver to bottom.
// Used exactly once per paint cycle so marks landing concurrently with a
// paint decision are never lost.
func (d *DirtyNodes) Take() DirtyNodes {
	out := *d
	*d = DirtyNodes{}
	return out
}
