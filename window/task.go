// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"context"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/internal/trace"
	"github.com/wusyong/corgo/layout"
	"github.com/wusyong/corgo/render"
	"github.com/wusyong/corgo/state"
	"github.com/wusyong/corgo/vdom"
)

// task is the single-threaded cooperative loop owning one window's
// shadow tree, UI engine instance, focus state and dirty set. Nothing it
// owns is ever touched from another goroutine.
type task struct {
	id     eventloop.WindowID
	events <-chan eventloop.Event
	quit   <-chan struct{}
	proxy  *eventloop.Proxy
	engine vdom.Engine
	api    *render.API
	logger *slog.Logger

	scale      float32
	size       eventloop.Size
	background gg.RGBA
	workBudget time.Duration

	tree    *dom.Tree[state.NodeState]
	reducer *state.Reducer
	focus   state.FocusState
	dirty   DirtyNodes
	mouse   mouseState
	mods    eventloop.Modifiers
	epoch   render.Epoch
	resize  *eventloop.Size
}

// run drives the loop until CloseRequested or teardown. The first frame
// is always a full repaint by construction: the dirty set starts at All
// before the initial Dirty is emitted.
func (t *task) run() error {
	t.tree = dom.NewTree[state.NodeState]()

	initial := t.engine.Rebuild()
	t.applyBatch(initial)
	if err := t.computeLayout(); err != nil {
		t.logger.Warn("task: initial layout failed", "error", err)
	}
	t.dirty.MarkAll()
	t.sendDirty()

	for {
		ev, ok := t.nextEvent()
		if !ok {
			return nil
		}
		if ev != nil && !t.handle(ev) {
			return nil
		}

		t.engine.ProcessAllMessages()

		if t.resize != nil || t.engine.HasWork() {
			t.pump()
		}
	}
}

// nextEvent blocks for an inbound event unless the engine already has
// pending work (or a resize is pending), in which case it polls so
// progress continues. The second result is false on teardown.
func (t *task) nextEvent() (eventloop.Event, bool) {
	if t.resize != nil || t.engine.HasWork() {
		select {
		case ev, ok := <-t.events:
			return ev, ok
		case <-t.quit:
			return nil, false
		default:
			return nil, true
		}
	}
	select {
	case ev, ok := <-t.events:
		return ev, ok
	case <-t.quit:
		return nil, false
	}
}

// handle dispatches one inbound event. It returns false when the loop
// should terminate. Events addressed to another window are discarded.
func (t *task) handle(ev eventloop.Event) bool {
	switch e := ev.(type) {
	case eventloop.CloseRequested:
		if e.Window == t.id {
			t.logger.Info("task: close requested")
			return false
		}

	case eventloop.Resized:
		if e.Window == t.id {
			s := e.Size
			t.resize = &s
		}

	case eventloop.ModifiersChanged:
		if e.Window == t.id {
			t.mods = e.Modifiers
		}

	case eventloop.KeyboardInput:
		if e.Window == t.id {
			t.keyboard(e)
		}

	case eventloop.CursorMoved:
		if e.Window == t.id {
			t.cursorMoved(e.X/t.scale, e.Y/t.scale)
		}

	case eventloop.CursorLeft:
		if e.Window == t.id {
			t.cursorLeft()
		}

	case eventloop.MouseInput:
		if e.Window == t.id {
			t.mouseInput(e)
		}

	case eventloop.MouseWheel:
		if e.Window == t.id {
			t.wheel(e)
		}

	case eventloop.User:
		if r, ok := e.Payload.(Redraw); ok && r.ID == t.id {
			t.redraw(r.LayoutSize)
		}
	}
	return true
}

// pump requests one bounded unit of mutation work and runs it through
// the reconciliation pipeline: prune focus, apply the batch, reduce
// derived state, resolve a pending resize, recompute layout, merge
// dirtiness, and emit Dirty.
func (t *task) pump() {
	batch := t.engine.WorkWithDeadline(time.Now().Add(t.workBudget))
	rerender := t.applyBatch(batch)

	if len(rerender) == 0 && t.resize == nil {
		return
	}

	if t.resize != nil {
		// Bulk structural change: precise tracking is not worth the
		// bookkeeping.
		t.dirty.MarkAll()
		t.size = *t.resize
		t.resize = nil
	}

	if err := t.computeLayout(); err != nil {
		// Transient: skip this paint cycle, retry on the next batch.
		t.logger.Warn("task: layout compute failed, skipping paint cycle", "error", err)
		return
	}

	for _, id := range rerender {
		t.dirty.Mark(id)
	}
	t.sendDirty()
}

// applyBatch runs focus pruning for every mutation, applies the batch to
// the tree, releases resources of destroyed nodes, and reduces derived
// state. It returns the to-rerender set.
func (t *task) applyBatch(batch []dom.Mutation) []dom.NodeID {
	if len(batch) == 0 {
		return nil
	}
	if t.logger.Enabled(context.Background(), slog.LevelDebug) {
		if b, err := trace.EncodeBatch(batch); err == nil {
			t.logger.Debug("task: applying mutations", "batch", string(b))
		}
	}

	// Prune strictly before the reducer sees the batch: a doomed subtree
	// must not be dereferenced through stale focus handles.
	for _, m := range batch {
		t.focus.Prune(m, t.tree)
	}

	changes, removed := t.tree.Apply(batch)
	for _, r := range removed {
		t.reducer.Release(r.State)
		t.dirty.Drop(r.ID)
		t.mouse.forget(r.ID)
	}
	return t.reducer.Update(t.tree, changes)
}

// computeLayout runs the solver over the whole tree at the current
// window size and copies resolved rectangles back onto the nodes. Any
// node whose rectangle moved is marked dirty, which keeps dirty tracking
// sound when a node's geometry shifts because of a sibling's change.
func (t *task) computeLayout() error {
	root, _ := t.tree.Get(t.tree.Root())
	if !root.State.Layout.Node.Valid() {
		root.State.Layout.Node = t.reducer.Solver().NewNode(layout.DefaultStyle())
	}

	avail := layout.Size{
		Width:  t.size.Width / t.scale,
		Height: t.size.Height / t.scale,
	}
	if err := t.reducer.Solver().Compute(root.State.Layout.Node, avail); err != nil {
		return err
	}

	t.tree.WalkDepthFirst(func(n *dom.Node[state.NodeState]) {
		if !n.State.Layout.Node.Valid() {
			return
		}
		r, err := t.reducer.Solver().Rect(n.State.Layout.Node)
		if err != nil {
			return
		}
		if !n.State.Layout.Ready || r != n.State.Layout.Rect {
			n.State.Layout.Rect = r
			n.State.Layout.Ready = true
			t.dirty.Mark(n.ID)
		}
	})
	return nil
}

// redraw services one Redraw wake-up: decide what is stale, build the
// display list, and submit it with the next epoch. An empty dirty set
// with clean focus means the wake-up was redundant (a second Dirty
// raced an in-flight paint) and is dropped without submitting, so
// consecutive Dirty signals collapse into one paint cycle.
func (t *task) redraw(layoutSize layout.Size) {
	nodes := t.dirty.Take()
	if t.focus.Clean() {
		nodes.MarkAll()
	}
	if nodes.IsEmpty() {
		return
	}

	s := render.BuildDisplayList(t.tree, t.focus.Last(), t.scale)
	t.epoch++
	err := t.api.SendTransaction(render.Transaction{
		Epoch:      t.epoch,
		LayoutSize: layoutSize,
		DeviceSize: layout.Size{Width: t.size.Width, Height: t.size.Height},
		Background: t.background,
		Scene:      s,
	})
	if err != nil {
		t.logger.Debug("task: transaction dropped", "epoch", t.epoch, "error", err)
	}
}

// sendDirty emits phase 1 of the wake-up protocol. Losing the signal is
// recoverable: the next batch emits a fresh one.
func (t *task) sendDirty() {
	if err := t.proxy.SendUser(Dirty{ID: t.id}); err != nil {
		t.logger.Debug("task: dirty wake-up dropped", "error", err)
	}
}

// keyboard fires keypress (printable keys, on press) before keydown or
// keyup, and runs tab-order focus traversal as the keydown default
// action.
func (t *task) keyboard(e eventloop.KeyboardInput) {
	data := vdom.KeyboardData{
		Key:       e.Key,
		Code:      e.Code,
		Location:  vdom.LocationStandard,
		Repeat:    e.Repeat,
		Modifiers: t.mods,
	}

	if e.State == eventloop.Pressed {
		if e.Key.IsPrintable() {
			t.fire(vdom.Event{
				Target:   t.tree.Root(),
				Priority: vdom.PriorityMedium,
				Name:     "keypress",
				Data:     data,
				Bubbles:  true,
			})
		}

		if e.Key == eventloop.KeyTab && !state.Suppressed(t.tree, t.focus.Last(), "keydown") {
			if t.focus.Progress(t.tree, !t.mods.Has(eventloop.ModShift)) {
				t.sendDirty()
			}
		}
	}

	name := "keydown"
	if e.State == eventloop.Released {
		name = "keyup"
	}
	t.fire(vdom.Event{
		Target:   t.focus.Last(),
		Priority: vdom.PriorityMedium,
		Name:     name,
		Data:     data,
		Bubbles:  true,
	})
}

// fire delivers an event to the UI engine unless the target node
// suppresses it.
func (t *task) fire(ev vdom.Event) {
	if state.Suppressed(t.tree, ev.Target, ev.Name) {
		t.logger.Debug("task: event suppressed", "name", ev.Name, "target", ev.Target)
		return
	}
	t.engine.SendEvent(ev)
}
