// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

// Built-in solver: vertical block flow. Children stack top to bottom
// inside the parent's content box; auto width fills the parent, auto
// height wraps the children. Text measures at a fixed glyph advance,
// which keeps the solver deterministic and shaping-free.

const (
	textAdvance    = 8  // layout units per rune
	textLineHeight = 16 // layout units per text line
)

type blockNode struct {
	style    Style
	children []NodeHandle
	text     string
	hasText  bool
	rect     Rect
	computed bool
	dead     bool
}

// BlockSolver is the built-in block-flow Solver.
type BlockSolver struct {
	nodes []*blockNode
}

// NewBlockSolver creates an empty solver.
func NewBlockSolver() *BlockSolver {
	return &BlockSolver{}
}

var _ Solver = (*BlockSolver)(nil)

// NewNode creates a measurement node with the given style.
func (s *BlockSolver) NewNode(style Style) NodeHandle {
	s.nodes = append(s.nodes, &blockNode{style: style})
	return NodeHandle(len(s.nodes))
}

func (s *BlockSolver) node(h NodeHandle) *blockNode {
	i := int(h) - 1
	if i < 0 || i >= len(s.nodes) || s.nodes[i].dead {
		return nil
	}
	return s.nodes[i]
}

// SetStyle replaces the style of a node.
func (s *BlockSolver) SetStyle(h NodeHandle, style Style) {
	if n := s.node(h); n != nil {
		n.style = style
	}
}

// SetChildren replaces the child list of a node.
func (s *BlockSolver) SetChildren(h NodeHandle, children []NodeHandle) {
	if n := s.node(h); n != nil {
		n.children = append(n.children[:0], children...)
	}
}

// SetText attaches measurable text content to a node.
func (s *BlockSolver) SetText(h NodeHandle, text string) {
	if n := s.node(h); n != nil {
		n.text = text
		n.hasText = true
	}
}

// Compute resolves geometry for the subtree under root.
func (s *BlockSolver) Compute(root NodeHandle, available Size) error {
	n := s.node(root)
	if n == nil {
		return ErrUnknownNode
	}
	s.arrange(n, 0, 0, available)
	return nil
}

// arrange assigns the node's rect at the given origin within the
// available space, then stacks children inside the content box.
func (s *BlockSolver) arrange(n *blockNode, x, y float32, available Size) {
	w := available.Width
	if !n.style.Width.IsAuto() {
		w = n.style.Width.Value()
	}

	pad := n.style.Padding
	inner := Size{Width: w - 2*pad, Height: available.Height - 2*pad}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}

	cursor := float32(0)
	for _, ch := range n.children {
		c := s.node(ch)
		if c == nil {
			continue
		}
		remaining := Size{Width: inner.Width, Height: inner.Height - cursor}
		if remaining.Height < 0 {
			remaining.Height = 0
		}
		s.arrange(c, x+pad, y+pad+cursor, remaining)
		cursor += c.rect.Height
	}

	h := cursor + 2*pad
	if n.hasText {
		th := textLineHeight
		tw := float32(len([]rune(n.text))) * textAdvance
		if th > int(h) {
			h = float32(th)
		}
		if n.style.Width.IsAuto() && tw < w {
			w = tw
		}
	}
	if !n.style.Height.IsAuto() {
		h = n.style.Height.Value()
	}

	n.rect = Rect{X: x, Y: y, Width: w, Height: h}
	n.computed = true
}

// Rect returns the resolved geometry of a node.
func (s *BlockSolver) Rect(h NodeHandle) (Rect, error) {
	n := s.node(h)
	if n == nil {
		return Rect{}, ErrUnknownNode
	}
	if !n.computed {
		return Rect{}, ErrNotComputed
	}
	return n.rect, nil
}

// Release destroys a measurement node. Handles are never reused: the
// slot is tombstoned.
func (s *BlockSolver) Release(h NodeHandle) {
	i := int(h) - 1
	if i >= 0 && i < len(s.nodes) {
		s.nodes[i].dead = true
	}
}
