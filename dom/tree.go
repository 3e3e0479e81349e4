// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dom implements the shadow tree: a mutable tree of nodes
// mirroring the declarative UI description, with per-node derived state
// of the caller's choosing.
//
// The tree is exclusively owned by one window task and is not safe for
// concurrent use. Other contexts only ever see immutable values resolved
// from it (display lists), never references into it.
package dom

// NodeKind distinguishes element nodes from text nodes.
type NodeKind uint8

const (
	Element NodeKind = iota
	Text
)

// RootID is the handle of the implicit root element every tree starts
// with. The UI engine's first real node becomes its child.
const RootID NodeID = 1

// Node is one shadow-tree node. Parent/child relations are owned by the
// tree structure itself; no node owns another outside the tree.
type Node[S any] struct {
	ID         NodeID
	Kind       NodeKind
	Tag        string
	Text       string
	Attributes map[string]string
	Parent     NodeID
	Children   []NodeID

	// State is the derived-state record maintained by the reducer.
	State S
}

// Attribute returns the attribute value and whether it is present.
// Text nodes have no attributes.
func (n *Node[S]) Attribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// Change records how a batch touched one node, so the reducer can skip
// fields whose watched attributes were untouched.
type Change struct {
	// Created is set when the node first appeared in this batch.
	Created bool
	// Attrs lists attribute names written or removed.
	Attrs []string
	// Text is set when a text node's content changed.
	Text bool
	// Structure is set when the node's child list changed.
	Structure bool
}

// Removed reports a destroyed node together with its final derived
// state, so callers can release external resources (solver nodes) and
// drop the handle from focus and dirty records.
type Removed[S any] struct {
	ID    NodeID
	State S
}

// Tree is the shadow tree. Newly created nodes stage detached until a
// structural mutation links them under the root.
type Tree[S any] struct {
	nodes map[NodeID]*Node[S]
}

// NewTree creates a tree holding only the implicit root element.
func NewTree[S any]() *Tree[S] {
	t := &Tree[S]{nodes: make(map[NodeID]*Node[S])}
	t.nodes[RootID] = &Node[S]{ID: RootID, Kind: Element, Tag: "root"}
	return t
}

// Root returns the implicit root handle.
func (t *Tree[S]) Root() NodeID { return RootID }

// Get returns the node for a handle. A stale handle yields (nil, false),
// never a panic: an inconsistent handle is treated as absent.
func (t *Tree[S]) Get(id NodeID) (*Node[S], bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Contains reports whether the handle resolves to a live node.
func (t *Tree[S]) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of live nodes, including the root and any
// staged detached nodes.
func (t *Tree[S]) Len() int { return len(t.nodes) }

// IsAncestor reports whether anc is id itself or a proper ancestor of it.
func (t *Tree[S]) IsAncestor(anc, id NodeID) bool {
	if anc == 0 || id == 0 {
		return false
	}
	for id != 0 {
		if id == anc {
			return true
		}
		n, ok := t.nodes[id]
		if !ok {
			return false
		}
		id = n.Parent
	}
	return false
}

// Depth returns the number of edges from the root to id. Detached nodes
// report the depth within their staged fragment.
func (t *Tree[S]) Depth(id NodeID) int {
	d := 0
	for {
		n, ok := t.nodes[id]
		if !ok || n.Parent == 0 {
			return d
		}
		id = n.Parent
		d++
	}
}

// WalkDepthFirst visits every node reachable from the root in document
// order (parent before children, children in list order). Detached
// staged nodes are not visited.
func (t *Tree[S]) WalkDepthFirst(visit func(*Node[S])) {
	t.walk(RootID, visit)
}

func (t *Tree[S]) walk(id NodeID, visit func(*Node[S])) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	visit(n)
	for _, c := range n.Children {
		t.walk(c, visit)
	}
}

// Apply runs one mutation batch against the tree. It returns a change
// record per touched node and the set of destroyed nodes (whole
// subtrees, deepest first). Mutations referencing unknown handles are
// defensive no-ops: the condition they describe is treated as already
// resolved.
func (t *Tree[S]) Apply(batch []Mutation) (map[NodeID]*Change, []Removed[S]) {
	changes := make(map[NodeID]*Change)
	var removed []Removed[S]

	touch := func(id NodeID) *Change {
		c, ok := changes[id]
		if !ok {
			c = &Change{}
			changes[id] = c
		}
		return c
	}

	for _, m := range batch {
		switch m := m.(type) {
		case CreateElement:
			if t.Contains(m.ID) {
				continue
			}
			t.nodes[m.ID] = &Node[S]{ID: m.ID, Kind: Element, Tag: m.Tag}
			touch(m.ID).Created = true

		case CreateText:
			if t.Contains(m.ID) {
				continue
			}
			t.nodes[m.ID] = &Node[S]{ID: m.ID, Kind: Text, Text: m.Text}
			touch(m.ID).Created = true

		case AppendChildren:
			parent, ok := t.nodes[m.Parent]
			if !ok {
				continue
			}
			for _, id := range m.Children {
				child, ok := t.nodes[id]
				if !ok {
					continue
				}
				// Re-parenting shrinks the old parent's child list too.
				if child.Parent != 0 && child.Parent != parent.ID {
					touch(child.Parent).Structure = true
				}
				t.detach(child)
				child.Parent = parent.ID
				parent.Children = append(parent.Children, id)
			}
			touch(parent.ID).Structure = true

		case ReplaceWith:
			old, ok := t.nodes[m.ID]
			if !ok {
				continue
			}
			parentID := old.Parent
			parent, hasParent := t.nodes[parentID]
			if hasParent {
				idx := childIndex(parent, m.ID)
				rest := append([]NodeID(nil), parent.Children[idx+1:]...)
				parent.Children = parent.Children[:idx]
				for _, id := range m.Nodes {
					child, ok := t.nodes[id]
					if !ok {
						continue
					}
					if child.Parent != 0 && child.Parent != parentID {
						touch(child.Parent).Structure = true
					}
					t.detach(child)
					child.Parent = parentID
					parent.Children = append(parent.Children, id)
				}
				parent.Children = append(parent.Children, rest...)
				touch(parentID).Structure = true
			}
			old.Parent = 0
			removed = t.destroy(old, changes, removed)

		case Remove:
			n, ok := t.nodes[m.ID]
			if !ok {
				continue
			}
			// The former parent's child list shrinks; record that so a
			// removal-only batch still reaches the reducer and repaints
			// the vacated region.
			if n.Parent != 0 {
				touch(n.Parent).Structure = true
			}
			t.detach(n)
			removed = t.destroy(n, changes, removed)

		case SetAttribute:
			n, ok := t.nodes[m.ID]
			if !ok || n.Kind != Element {
				continue
			}
			if n.Attributes == nil {
				n.Attributes = make(map[string]string)
			}
			if old, ok := n.Attributes[m.Name]; ok && old == m.Value {
				continue
			}
			n.Attributes[m.Name] = m.Value
			c := touch(m.ID)
			c.Attrs = append(c.Attrs, m.Name)

		case RemoveAttribute:
			n, ok := t.nodes[m.ID]
			if !ok || n.Attributes == nil {
				continue
			}
			if _, ok := n.Attributes[m.Name]; !ok {
				continue
			}
			delete(n.Attributes, m.Name)
			c := touch(m.ID)
			c.Attrs = append(c.Attrs, m.Name)

		case SetText:
			n, ok := t.nodes[m.ID]
			if !ok || n.Kind != Text {
				continue
			}
			if n.Text == m.Text {
				continue
			}
			n.Text = m.Text
			touch(m.ID).Text = true
		}
	}

	// A destroyed node must not surface as a touched node.
	for _, r := range removed {
		delete(changes, r.ID)
	}
	return changes, removed
}

// detach unlinks a node from its current parent without destroying it.
func (t *Tree[S]) detach(n *Node[S]) {
	parent, ok := t.nodes[n.Parent]
	if !ok {
		return
	}
	idx := childIndex(parent, n.ID)
	if idx >= 0 {
		parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	}
	n.Parent = 0
}

// destroy deletes a detached subtree, deepest nodes first.
func (t *Tree[S]) destroy(n *Node[S], changes map[NodeID]*Change, removed []Removed[S]) []Removed[S] {
	for _, c := range n.Children {
		if child, ok := t.nodes[c]; ok {
			removed = t.destroy(child, changes, removed)
		}
	}
	delete(t.nodes, n.ID)
	return append(removed, Removed[S]{ID: n.ID, State: n.State})
}

func childIndex[S any](parent *Node[S], id NodeID) int {
	for i, c := range parent.Children {
		if c == id {
			return i
		}
	}
	return -1
}
