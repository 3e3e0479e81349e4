// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout defines the boundary to the external box-model solver
// that resolves per-node geometry, and ships a small block-flow solver
// good enough for tests and headless demos.
//
// The solver's internals are not part of the contract: the window task
// only pushes measurement nodes, asks for a compute pass at a given
// available size, and reads back resolved rectangles.
package layout

import "errors"

// Solver errors. Compute failures are transient: the caller skips the
// affected paint cycle and retries on the next mutation batch.
var (
	// ErrUnknownNode is returned when a handle does not resolve to a
	// measurement node.
	ErrUnknownNode = errors.New("layout: unknown measurement node")

	// ErrNotComputed is returned by Rect before any compute pass has
	// visited the node.
	ErrNotComputed = errors.New("layout: node has no resolved geometry")
)

// Size is a box size in layout units.
type Size struct {
	Width  float32
	Height float32
}

// Rect is resolved geometry: the node's box relative to the window
// origin, in layout units.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Dimension is a styled length: either automatic or a fixed number of
// layout units.
type Dimension struct {
	auto bool
	px   float32
}

// Auto is the automatic dimension.
var Auto = Dimension{auto: true}

// Px returns a fixed dimension.
func Px(v float32) Dimension { return Dimension{px: v} }

// IsAuto reports whether the dimension is automatic.
func (d Dimension) IsAuto() bool { return d.auto }

// Value returns the fixed length; zero for Auto.
func (d Dimension) Value() float32 {
	if d.auto {
		return 0
	}
	return d.px
}

// Style is the styled input to the solver for one node.
type Style struct {
	Width   Dimension
	Height  Dimension
	Padding float32
}

// DefaultStyle is fully automatic with no padding.
func DefaultStyle() Style {
	return Style{Width: Auto, Height: Auto}
}

// NodeHandle references a measurement node inside a Solver. Zero is
// never a valid handle. Handles are created lazily on a node's first
// reducer visit and live until the shadow node is destroyed.
type NodeHandle int32

// Valid reports whether the handle references a node.
func (h NodeHandle) Valid() bool { return h != 0 }

// Solver is the pluggable box-model solver.
//
// Implementations need not be safe for concurrent use; a solver is owned
// by exactly one window task.
type Solver interface {
	// NewNode creates a measurement node with the given style.
	NewNode(Style) NodeHandle

	// SetStyle replaces the style of a node. Unknown handles are ignored.
	SetStyle(NodeHandle, Style)

	// SetChildren replaces the child list of a node. Unknown handles are
	// ignored.
	SetChildren(NodeHandle, []NodeHandle)

	// SetText attaches measurable text content to a node.
	SetText(NodeHandle, string)

	// Compute resolves geometry for the subtree under root within the
	// available size. A failure poisons only this pass; previously
	// resolved rectangles stay readable.
	Compute(root NodeHandle, available Size) error

	// Rect returns the resolved geometry of a node.
	Rect(NodeHandle) (Rect, error)

	// Release destroys a measurement node. Unknown handles are ignored.
	Release(NodeHandle)
}
