// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a resolved shadow tree into an immutable display
// list (a gogpu/gg scene) and drives the asynchronous paint consumer
// that rasterizes submitted display lists and reports frame readiness.
//
// Nothing in this package holds references into the shadow tree: a
// display list is fully resolved at build time on the window task, and
// the backend only ever sees that immutable payload.
package render

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/state"
)

// focusRingWidth is the stroke width of the focus decoration, in layout
// units.
const focusRingWidth = 2

var focusRingColor = gg.RGB(0.26, 0.59, 0.98)

// BuildDisplayList walks the tree in document order and encodes one fill
// per node with a background, plus a focus ring around the focused node.
// Geometry is in layout units; scale is the device pixel ratio baked
// into the scene transform. Nodes without resolved geometry are skipped;
// they will be picked up by the paint cycle that follows their first
// compute pass.
func BuildDisplayList(t *dom.Tree[state.NodeState], focused dom.NodeID, scale float32) *scene.Scene {
	b := scene.NewSceneBuilder()
	if scale != 1 {
		b.Scale(scale, scale)
	}
	t.WalkDepthFirst(func(n *dom.Node[state.NodeState]) {
		if !n.State.Layout.Ready {
			return
		}
		r := n.State.Layout.Rect
		if c, ok := backgroundOf(n); ok {
			b.FillRect(r.X, r.Y, r.Width, r.Height, scene.SolidBrush(c))
		}
	})
	if focused != 0 {
		if n, ok := t.Get(focused); ok && n.State.Layout.Ready {
			r := n.State.Layout.Rect
			b.StrokeRect(r.X, r.Y, r.Width, r.Height,
				scene.SolidBrush(focusRingColor), focusRingWidth)
		}
	}
	return b.Scene()
}

func backgroundOf(n *dom.Node[state.NodeState]) (gg.RGBA, bool) {
	v, ok := n.Attribute("background")
	if !ok {
		return gg.RGBA{}, false
	}
	return ParseColor(v)
}
