// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package corgo drives a native window whose contents are described by
// a declarative UI tree.
//
// The pipeline has two cooperating contexts per window. The window task
// owns the shadow tree: it drains the UI engine's mutation batches,
// recomputes derived per-node state (layout geometry, focus
// eligibility, event suppression), and tracks exactly which regions
// became stale. The presentation context owns the renderer and the
// swap/present step, driven by the single process-wide host loop. They
// coordinate through the three-phase Dirty/Redraw/Rerender wake-up
// protocol; no locks, no shared mutable state.
//
// Typical use:
//
//	engine := vdom.NewQueueEngine(initialMutations)
//	app := corgo.NewApp(engine)
//	if err := app.Run(); err != nil { ... }
package corgo

import (
	"github.com/gogpu/gg"

	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/vdom"
	"github.com/wusyong/corgo/window"
)

// Option adjusts window construction.
type Option func(*window.Config)

// WithSize sets the initial inner size in physical pixels.
func WithSize(width, height float32) Option {
	return func(c *window.Config) {
		c.Size = eventloop.Size{Width: width, Height: height}
	}
}

// WithScaleFactor sets the device pixel ratio.
func WithScaleFactor(scale float32) Option {
	return func(c *window.Config) { c.ScaleFactor = scale }
}

// WithBackground sets the clear color behind the UI.
func WithBackground(c gg.RGBA) Option {
	return func(cfg *window.Config) { cfg.Background = c }
}

// WithPresenter installs a custom presenter for the swap/present step.
func WithPresenter(p window.Presenter) Option {
	return func(c *window.Config) { c.Presenter = p }
}

// App owns the host event loop and one window.
type App struct {
	loop *eventloop.Loop
	win  *window.Window
}

// NewApp creates the host loop and spawns a window task for the engine.
// The window immediately rebuilds the engine's initial tree and
// schedules the first full paint.
func NewApp(engine vdom.Engine, opts ...Option) *App {
	cfg := window.Config{
		Size:   eventloop.Size{Width: 800, Height: 600},
		Logger: Logger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	loop := eventloop.New()
	win := window.New(engine, loop.Proxy(), cfg)
	return &App{loop: loop, win: win}
}

// Window returns the presentation-side window handle.
func (a *App) Window() *window.Window { return a.win }

// Proxy returns a handle for injecting events into the host loop from
// any goroutine. The platform layer feeds translated OS events through
// it; tests and headless demos drive the app the same way.
func (a *App) Proxy() *eventloop.Proxy { return a.loop.Proxy() }

// Run executes the host dispatch loop until the window closes, then
// tears the window down. It must be called on the goroutine that owns
// the presentation context.
//
// Dispatch implements the outer half of the wake-up protocol: a Dirty
// addressed to the window resolves the layout size fresh (which makes
// Dirty idempotent) and routes a Redraw back to the window task; a
// Rerender runs the swap/present step. Everything else is forwarded to
// the window task, which discards events addressed elsewhere.
func (a *App) Run() error {
	id := a.win.ID()
	a.loop.Run(func(ev eventloop.Event, flow *eventloop.ControlFlow) {
		switch e := ev.(type) {
		case eventloop.User:
			switch re := e.Payload.(type) {
			case window.Dirty:
				if re.ID == id {
					a.win.SendEvent(eventloop.User{Payload: window.Redraw{
						ID:         id,
						LayoutSize: a.win.LayoutSize(),
					}})
				}
			case window.Rerender:
				if re.ID == id {
					a.win.Rerender()
				}
			default:
				a.win.SendEvent(ev)
			}
		case eventloop.CloseRequested:
			a.win.SendEvent(ev)
			if e.Window == id {
				flow.Exit()
			}
		default:
			a.win.SendEvent(ev)
		}
	})
	return a.win.Deinit()
}

// Launch is the one-call entry point: build the app and run it to
// completion.
func Launch(engine vdom.Engine, opts ...Option) error {
	return NewApp(engine, opts...).Run()
}
