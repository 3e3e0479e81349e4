// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/layout"
)

// dependency is the direction a derived field's inputs flow from.
type dependency uint8

const (
	// depNode fields read only the node's own attributes.
	depNode dependency = iota
	// depChild fields read the node's children and must be recomputed
	// bottom-up, children before parents.
	depChild
)

// field describes one derived field for the reducer: where its inputs
// come from, which attribute names can invalidate it, and how to
// recompute it. The recompute func reports whether the stored value
// changed; an unchanged result must not cascade dirtiness.
type field struct {
	name  string
	dep   dependency
	attrs []string
	apply func(r *Reducer, t *dom.Tree[NodeState], n *dom.Node[NodeState]) bool
}

// fields is iterated in fixed dependency order: attribute-driven fields
// first, then child-driven ones.
var fields = []field{
	{
		name:  "prevent-default",
		dep:   depNode,
		attrs: []string{"prevent-default"},
		apply: reducePreventDefault,
	},
	{
		name:  "focus",
		dep:   depNode,
		attrs: []string{"focusable", "tabindex"},
		apply: reduceFocus,
	},
	{
		name:  "layout",
		dep:   depChild,
		attrs: []string{"width", "height", "padding"},
		apply: reduceLayout,
	},
}

// Reducer recomputes derived state for nodes touched by a mutation
// batch. It owns the binding between shadow nodes and solver nodes.
type Reducer struct {
	solver layout.Solver
	logger *slog.Logger
}

// NewReducer creates a reducer pushing measurements into solver.
func NewReducer(solver layout.Solver, logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reducer{solver: solver, logger: logger}
}

// Solver returns the box-model solver the reducer feeds.
func (r *Reducer) Solver() layout.Solver { return r.solver }

// Update recomputes derived state for every node the batch touched and
// returns the handles whose rendered appearance may have changed. The
// result is a sound over-approximation: a changed node is always
// present; an unchanged node may be.
func (r *Reducer) Update(t *dom.Tree[NodeState], changes map[dom.NodeID]*Change) []dom.NodeID {
	rerender := make(map[dom.NodeID]struct{})

	// Attribute-driven fields: only nodes whose watched attributes were
	// written, plus created nodes, are recomputed.
	for _, f := range fields {
		if f.dep != depNode {
			continue
		}
		for id, c := range changes {
			if !c.Created && !touchesAny(c.Attrs, f.attrs) {
				continue
			}
			n, ok := t.Get(id)
			if !ok {
				continue
			}
			if f.apply(r, t, n) {
				rerender[id] = struct{}{}
			}
		}
	}

	// Child-driven fields: seed with every touched node, then walk
	// upward while a recompute reports change. Deeper nodes first so a
	// parent always sees its children's fresh state.
	for _, f := range fields {
		if f.dep != depChild {
			continue
		}
		seed := make([]dom.NodeID, 0, len(changes))
		for id, c := range changes {
			if c.Created || c.Text || c.Structure || touchesAny(c.Attrs, f.attrs) {
				seed = append(seed, id)
			}
		}
		sort.Slice(seed, func(i, j int) bool {
			return t.Depth(seed[i]) > t.Depth(seed[j])
		})

		visited := make(map[dom.NodeID]struct{})
		for len(seed) > 0 {
			id := seed[0]
			seed = seed[1:]
			if _, done := visited[id]; done {
				continue
			}
			visited[id] = struct{}{}
			n, ok := t.Get(id)
			if !ok {
				continue
			}
			if f.apply(r, t, n) {
				rerender[id] = struct{}{}
				if n.Parent != 0 {
					seed = append(seed, n.Parent)
				}
			}
		}
	}

	out := make([]dom.NodeID, 0, len(rerender))
	for id := range rerender {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	r.logger.Debug("derived state updated", "touched", len(changes), "rerender", len(out))
	return out
}

// Change aliases dom.Change for callers that hold the reducer but not
// the dom package.
type Change = dom.Change

// Release destroys the measurement node bound to a removed shadow node.
func (r *Reducer) Release(s NodeState) {
	if s.Layout.Node.Valid() {
		r.solver.Release(s.Layout.Node)
	}
}

func touchesAny(changed, watched []string) bool {
	for _, c := range changed {
		for _, w := range watched {
			if c == w {
				return true
			}
		}
	}
	return false
}

func reducePreventDefault(_ *Reducer, _ *dom.Tree[NodeState], n *dom.Node[NodeState]) bool {
	next := Unknown
	if v, ok := n.Attribute("prevent-default"); ok {
		if p, ok := preventDefaultValues[v]; ok {
			next = p
		}
	}
	if next == n.State.PreventDefault {
		return false
	}
	n.State.PreventDefault = next
	return true
}

func reduceFocus(_ *Reducer, _ *dom.Tree[NodeState], n *dom.Node[NodeState]) bool {
	next := Unfocusable
	if v, ok := n.Attribute("focusable"); ok {
		switch v {
		case "true", "":
			next = Focusable
		case "programmatic":
			next = Programmatic
		}
	} else if _, ok := n.Attribute("tabindex"); ok {
		next = Focusable
	}
	if next == n.State.Focus {
		return false
	}
	n.State.Focus = next
	return true
}

// reduceLayout pushes the node's measurement into the solver. The
// measurement node is created on first visit and kept for the shadow
// node's lifetime. It reports change only when the solver inputs moved,
// so unchanged ancestors don't cascade; the final geometry diff happens
// after the compute pass.
func reduceLayout(r *Reducer, t *dom.Tree[NodeState], n *dom.Node[NodeState]) bool {
	changed := false
	style := styleOf(n)
	if !n.State.Layout.Node.Valid() {
		n.State.Layout.Node = r.solver.NewNode(style)
		n.State.Layout.style = style
		changed = true
	} else if style != n.State.Layout.style {
		r.solver.SetStyle(n.State.Layout.Node, style)
		n.State.Layout.style = style
		changed = true
	}

	if n.Kind == dom.Text {
		if n.Text != n.State.Layout.text || changed {
			r.solver.SetText(n.State.Layout.Node, n.Text)
			n.State.Layout.text = n.Text
			changed = true
		}
		return changed
	}

	children := make([]layout.NodeHandle, 0, len(n.Children))
	for _, id := range n.Children {
		c, ok := t.Get(id)
		if !ok {
			continue
		}
		if !c.State.Layout.Node.Valid() {
			// Child not visited yet: create its measurement node now so
			// the parent's child list is complete. Bottom-up order makes
			// this rare, but created-then-appended fragments can race it.
			cs := styleOf(c)
			c.State.Layout.Node = r.solver.NewNode(cs)
			c.State.Layout.style = cs
			if c.Kind == dom.Text {
				r.solver.SetText(c.State.Layout.Node, c.Text)
				c.State.Layout.text = c.Text
			}
		}
		children = append(children, c.State.Layout.Node)
	}
	if !handlesEqual(children, n.State.Layout.children) {
		r.solver.SetChildren(n.State.Layout.Node, children)
		n.State.Layout.children = children
		changed = true
	}
	return changed
}

func handlesEqual(a, b []layout.NodeHandle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// styleOf derives the solver style from a node's attributes.
func styleOf(n *dom.Node[NodeState]) layout.Style {
	s := layout.DefaultStyle()
	if v, ok := n.Attribute("width"); ok {
		if px, err := strconv.ParseFloat(v, 32); err == nil {
			s.Width = layout.Px(float32(px))
		}
	}
	if v, ok := n.Attribute("height"); ok {
		if px, err := strconv.ParseFloat(v, 32); err == nil {
			s.Height = layout.Px(float32(px))
		}
	}
	if v, ok := n.Attribute("padding"); ok {
		if px, err := strconv.ParseFloat(v, 32); err == nil {
			s.Padding = float32(px)
		}
	}
	return s
}
