// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/layout"
	"github.com/wusyong/corgo/render"
)

// RendererEvent is the three-phase wake-up protocol coordinating the
// window task with the presentation context. Every phase carries the
// window identity so multi-window fan-out filters at each step:
//
//	Dirty:    window task -> host loop. Content became stale; compute a
//	          display list for the current layout size. Idempotent.
//	Redraw:   host loop -> window task. Carries the resolved layout
//	          size; builds and submits the paint payload.
//	Rerender: paint backend -> host loop. A submitted frame is ready;
//	          run the swap/present step.
//
// Collapsing any two phases reintroduces redundant-paint races; keep all
// three.
type RendererEvent interface {
	isRendererEvent()

	// Window is the identity the event is addressed to.
	Window() eventloop.WindowID
}

// Dirty signals stale content for a window.
type Dirty struct {
	ID eventloop.WindowID
}

// Redraw asks the window task to produce a paint payload at the given
// layout size.
type Redraw struct {
	ID         eventloop.WindowID
	LayoutSize layout.Size
}

// Rerender signals that the frame with the given epoch is ready to
// present.
type Rerender struct {
	ID    eventloop.WindowID
	Epoch render.Epoch
}

func (Dirty) isRendererEvent()    {}
func (Redraw) isRendererEvent()   {}
func (Rerender) isRendererEvent() {}

// Window returns the addressed window identity.
func (d Dirty) Window() eventloop.WindowID { return d.ID }

// Window returns the addressed window identity.
func (r Redraw) Window() eventloop.WindowID { return r.ID }

// Window returns the addressed window identity.
func (r Rerender) Window() eventloop.WindowID { return r.ID }
