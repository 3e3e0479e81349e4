// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package dom

// NodeID is a stable integer handle for a shadow-tree node, unique for
// the node's lifetime. Handles are never reused within a window; the UI
// engine allocates them monotonically. Zero is never a valid handle.
type NodeID uint64

// Mutation is one operation in a mutation batch produced by the UI
// description engine. A batch is ordered; corgo applies it in order and
// never rolls back a partially applied batch.
type Mutation interface {
	isMutation()
}

// CreateElement stages a new element node. The node is detached until an
// AppendChildren or ReplaceWith links it into the tree.
type CreateElement struct {
	ID  NodeID
	Tag string
}

// CreateText stages a new text node.
type CreateText struct {
	ID   NodeID
	Text string
}

// AppendChildren links staged or existing nodes as the trailing children
// of Parent.
type AppendChildren struct {
	Parent   NodeID
	Children []NodeID
}

// ReplaceWith removes the node and splices the given nodes into its
// place in the parent's child list.
type ReplaceWith struct {
	ID    NodeID
	Nodes []NodeID
}

// Remove detaches the node and destroys it together with its subtree.
type Remove struct {
	ID NodeID
}

// SetAttribute writes one attribute on an element node.
type SetAttribute struct {
	ID    NodeID
	Name  string
	Value string
}

// RemoveAttribute deletes one attribute from an element node.
type RemoveAttribute struct {
	ID   NodeID
	Name string
}

// SetText replaces the content of a text node.
type SetText struct {
	ID   NodeID
	Text string
}

func (CreateElement) isMutation()   {}
func (CreateText) isMutation()      {}
func (AppendChildren) isMutation()  {}
func (ReplaceWith) isMutation()     {}
func (Remove) isMutation()          {}
func (SetAttribute) isMutation()    {}
func (RemoveAttribute) isMutation() {}
func (SetText) isMutation()         {}

// RemovesSubtree reports the root of the subtree a mutation destroys,
// or 0 if it destroys nothing. Focus pruning keys off this before the
// batch is applied.
func RemovesSubtree(m Mutation) NodeID {
	switch m := m.(type) {
	case Remove:
		return m.ID
	case ReplaceWith:
		return m.ID
	}
	return 0
}
