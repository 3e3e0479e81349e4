// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window implements the per-window half of corgo: the window
// task that owns the shadow tree, focus state and dirty set, and the
// presentation-side Window that owns the renderer and the swap/present
// step.
//
// The two halves never share mutable state. The window task runs on its
// own goroutine; everything it owns stays there. The presentation side
// only ever sees resolved, immutable paint payloads, handed over through
// the three-phase wake-up protocol in RendererEvent.
package window

import (
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/sync/errgroup"

	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/layout"
	"github.com/wusyong/corgo/render"
	"github.com/wusyong/corgo/state"
	"github.com/wusyong/corgo/vdom"
)

// defaultWorkBudget bounds one unit of mutation work requested from the
// UI engine. On timeout the partial batch is still applied.
const defaultWorkBudget = 4 * time.Millisecond

// taskQueueDepth bounds the window task's inbound event queue.
const taskQueueDepth = 256

// Config carries window construction parameters.
type Config struct {
	// Size is the initial inner size in physical pixels.
	Size eventloop.Size

	// ScaleFactor is the device pixel ratio; 0 means 1.
	ScaleFactor float32

	// Background is the clear color behind the UI.
	Background gg.RGBA

	// Presenter owns the swap/present step; nil selects a
	// PixmapPresenter.
	Presenter Presenter

	// Solver is the box-model solver; nil selects the built-in block
	// solver.
	Solver layout.Solver

	// WorkBudget is the per-iteration mutation work deadline; 0 selects
	// the default.
	WorkBudget time.Duration

	// Logger receives diagnostics; nil silences them.
	Logger *slog.Logger
}

// Window is the presentation-context handle for one native window. It
// lives on the host-loop thread.
type Window struct {
	id        eventloop.WindowID
	events    chan eventloop.Event
	quit      chan struct{}
	renderer  *render.Renderer
	presenter Presenter
	logger    *slog.Logger
	scale     float32
	inner     eventloop.Size
	group     errgroup.Group
}

// New spawns a window task in the background and returns the
// presentation-side Window. The task immediately rebuilds the UI
// engine's initial tree and requests the first (always full) paint.
func New(engine vdom.Engine, proxy *eventloop.Proxy, cfg Config) *Window {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	scale := cfg.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	solver := cfg.Solver
	if solver == nil {
		solver = layout.NewBlockSolver()
	}
	presenter := cfg.Presenter
	if presenter == nil {
		presenter = NewPixmapPresenter()
	}
	budget := cfg.WorkBudget
	if budget == 0 {
		budget = defaultWorkBudget
	}

	w := &Window{
		id:        eventloop.NewWindowID(),
		events:    make(chan eventloop.Event, taskQueueDepth),
		quit:      make(chan struct{}),
		presenter: presenter,
		logger:    logger,
		scale:     scale,
		inner:     cfg.Size,
	}

	notifier := &frameNotifier{id: w.id, proxy: proxy, logger: logger}
	renderer, api := render.NewRenderer(notifier, logger)
	w.renderer = renderer

	t := &task{
		id:         w.id,
		events:     w.events,
		quit:       w.quit,
		proxy:      proxy,
		engine:     engine,
		api:        api,
		logger:     logger,
		scale:      scale,
		size:       cfg.Size,
		background: cfg.Background,
		workBudget: budget,
		reducer:    state.NewReducer(solver, logger),
	}
	w.group.Go(t.run)
	return w
}

// ID returns the window identity.
func (w *Window) ID() eventloop.WindowID { return w.id }

// InnerSize returns the current inner size in physical pixels, as
// tracked from forwarded Resized events.
func (w *Window) InnerSize() eventloop.Size { return w.inner }

// ScaleFactor returns the device pixel ratio.
func (w *Window) ScaleFactor() float32 { return w.scale }

// LayoutSize resolves the current layout-unit size from the inner size
// and scale factor. The host loop recomputes this fresh on every Dirty,
// which is what makes Dirty idempotent.
func (w *Window) LayoutSize() layout.Size {
	return layout.Size{
		Width:  w.inner.Width / w.scale,
		Height: w.inner.Height / w.scale,
	}
}

// SendEvent forwards an event to the window task. Best-effort: when the
// task is gone or saturated the event is logged and dropped, never
// fatal, because a closing window races naturally with in-flight
// messages.
func (w *Window) SendEvent(ev eventloop.Event) {
	if r, ok := ev.(eventloop.Resized); ok && r.Window == w.id {
		w.inner = r.Size
	}
	select {
	case <-w.quit:
		w.logger.Debug("window: task gone, dropping event")
		return
	default:
	}
	select {
	case w.events <- ev:
	case <-w.quit:
		w.logger.Debug("window: task gone, dropping event")
	default:
		w.logger.Warn("window: task queue full, dropping event")
	}
}

// Rerender runs the swap/present step: adopt the newest ready frame and
// hand it to the presenter. Before the first ready frame this is a
// no-op.
func (w *Window) Rerender() {
	w.renderer.Update()
	f, err := w.renderer.Render()
	if err != nil {
		w.logger.Debug("window: nothing to present", "error", err)
		return
	}
	if err := w.presenter.Present(f); err != nil {
		w.logger.Warn("window: present failed", "error", err)
	}
}

// Presenter returns the presenter, letting callers read back presented
// frames.
func (w *Window) Presenter() Presenter { return w.presenter }

// Deinit tears the window down: stops the task, drains the paint
// backend, closes the presenter. In-flight paint work completes or is
// discarded; there is no state to roll back.
func (w *Window) Deinit() error {
	close(w.quit)
	err := w.group.Wait()
	w.renderer.Deinit()
	if cerr := w.presenter.Close(); err == nil {
		err = cerr
	}
	return err
}

// frameNotifier bridges the paint backend's frame-ready callback into
// the host loop as a Rerender wake-up.
type frameNotifier struct {
	id     eventloop.WindowID
	proxy  *eventloop.Proxy
	logger *slog.Logger
}

func (n *frameNotifier) NewFrameReady(e render.Epoch) {
	if err := n.proxy.SendUser(Rerender{ID: n.id, Epoch: e}); err != nil {
		n.logger.Debug("window: rerender wake-up dropped", "epoch", e, "error", err)
	}
}
