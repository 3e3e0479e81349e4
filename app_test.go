// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package corgo_test

import (
	"testing"
	"time"

	"github.com/wusyong/corgo"
	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/eventloop"
	"github.com/wusyong/corgo/vdom"
	"github.com/wusyong/corgo/window"
)

func initialTree() []dom.Mutation {
	return []dom.Mutation{
		dom.CreateElement{ID: 2, Tag: "div"},
		dom.SetAttribute{ID: 2, Name: "background", Value: "red"},
		dom.SetAttribute{ID: 2, Name: "height", Value: "40"},
		dom.CreateElement{ID: 3, Tag: "button"},
		dom.SetAttribute{ID: 3, Name: "background", Value: "blue"},
		dom.SetAttribute{ID: 3, Name: "height", Value: "40"},
		dom.SetAttribute{ID: 3, Name: "focusable", Value: "true"},
		dom.AppendChildren{Parent: dom.RootID, Children: []dom.NodeID{2, 3}},
	}
}

// harness runs an app on a background goroutine and tears it down with
// the test.
type harness struct {
	app       *corgo.App
	engine    *vdom.QueueEngine
	presenter *window.PixmapPresenter
	proxy     *eventloop.Proxy
	id        eventloop.WindowID
	done      chan error
}

func startApp(t *testing.T, initial []dom.Mutation) *harness {
	t.Helper()
	h := &harness{
		engine:    vdom.NewQueueEngine(initial),
		presenter: window.NewPixmapPresenter(),
		done:      make(chan error, 1),
	}
	h.app = corgo.NewApp(h.engine,
		corgo.WithSize(400, 300),
		corgo.WithPresenter(h.presenter),
	)
	h.proxy = h.app.Proxy()
	h.id = h.app.Window().ID()
	go func() { h.done <- h.app.Run() }()

	t.Cleanup(func() {
		h.proxy.Send(eventloop.CloseRequested{Window: h.id})
		select {
		case err := <-h.done:
			if err != nil {
				t.Errorf("run: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("app did not shut down")
		}
	})
	return h
}

func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// settle waits until the present count holds still for a moment,
// meaning no paint cycle is in flight.
func settle(t *testing.T, p *window.PixmapPresenter) int {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		n := p.Presents()
		time.Sleep(100 * time.Millisecond)
		if p.Presents() == n && n > 0 {
			return n
		}
	}
	t.Fatal("present count never settled")
	return 0
}

func TestFirstFramePresented(t *testing.T) {
	h := startApp(t, initialTree())

	waitUntil(t, "first present", func() bool { return h.presenter.Presents() >= 1 })
	f := h.presenter.Frame()
	if f == nil {
		t.Fatal("no frame recorded")
	}
	if f.Epoch < 1 {
		t.Errorf("epoch = %d, want >= 1", f.Epoch)
	}
	b := f.Pixmap.ToImage().Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("frame size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestConsecutiveDirtySignalsCollapse(t *testing.T) {
	h := startApp(t, initialTree())
	base := settle(t, h.presenter)

	// One batch of real work, but two Dirty wake-ups racing it. The
	// second Redraw finds nothing stale and must not submit: exactly one
	// paint cycle results.
	h.engine.Push([]dom.Mutation{
		dom.SetAttribute{ID: 2, Name: "background", Value: "green"},
	})
	h.proxy.SendUser(window.Dirty{ID: h.id})
	h.proxy.SendUser(window.Dirty{ID: h.id})

	waitUntil(t, "repaint", func() bool { return h.presenter.Presents() > base })
	time.Sleep(300 * time.Millisecond)
	if got := h.presenter.Presents(); got != base+1 {
		t.Errorf("presents = %d, want %d (redundant wake-up must not repaint)", got, base+1)
	}
}

func TestResizeRepaintsAtNewSize(t *testing.T) {
	h := startApp(t, initialTree())
	base := settle(t, h.presenter)

	h.proxy.Send(eventloop.Resized{
		Window: h.id,
		Size:   eventloop.Size{Width: 200, Height: 150},
	})
	waitUntil(t, "resize repaint", func() bool { return h.presenter.Presents() > base })

	waitUntil(t, "frame at new size", func() bool {
		b := h.presenter.Frame().Pixmap.ToImage().Bounds()
		return b.Dx() == 200 && b.Dy() == 150
	})
}

func TestResizeAloneForcesRepaint(t *testing.T) {
	// Even with an empty tree and no engine work, a resize is a bulk
	// structural change and must trigger a full paint cycle.
	h := startApp(t, nil)
	base := settle(t, h.presenter)

	h.proxy.Send(eventloop.Resized{
		Window: h.id,
		Size:   eventloop.Size{Width: 100, Height: 100},
	})
	waitUntil(t, "repaint after bare resize", func() bool {
		return h.presenter.Presents() > base
	})
}

func TestTabFocusRepaints(t *testing.T) {
	h := startApp(t, initialTree())
	base := settle(t, h.presenter)

	keydown := make(chan vdom.Event, 16)
	h.engine.HandleFunc(func(ev vdom.Event) {
		if ev.Name == "keydown" {
			keydown <- ev
		}
	})

	h.proxy.Send(eventloop.KeyboardInput{
		Window: h.id, State: eventloop.Pressed,
		Key: eventloop.KeyTab, Code: "Tab",
	})

	// Focus moved: the decoration forces a repaint.
	waitUntil(t, "focus repaint", func() bool { return h.presenter.Presents() > base })

	select {
	case ev := <-keydown:
		if ev.Target != 3 {
			t.Errorf("keydown target = %d, want 3 (the focused node)", ev.Target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("keydown never delivered")
	}
}

func TestEngineEventRoundTrip(t *testing.T) {
	h := startApp(t, initialTree())
	base := settle(t, h.presenter)

	// The engine reacts to input by pushing a mutation, which must flow
	// through to a new frame.
	h.engine.HandleFunc(func(ev vdom.Event) {
		if ev.Name == "keypress" {
			h.engine.Push([]dom.Mutation{
				dom.SetAttribute{ID: 2, Name: "background", Value: "yellow"},
			})
		}
	})
	h.proxy.Send(eventloop.KeyboardInput{
		Window: h.id, State: eventloop.Pressed, Key: "y", Code: "KeyY",
	})

	waitUntil(t, "mutation-driven repaint", func() bool {
		return h.presenter.Presents() > base
	})
}
