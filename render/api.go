// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/wusyong/corgo/layout"
)

// Epoch is the generation counter identifying a submitted display list.
// Strictly increasing per window; a frame carries the epoch of the
// display list it was built from.
type Epoch uint32

// Transaction is one submitted paint payload: an immutable display list
// plus the sizes it was resolved against.
type Transaction struct {
	Epoch      Epoch
	LayoutSize layout.Size
	DeviceSize layout.Size
	Background gg.RGBA
	Scene      *scene.Scene
}

// Frame is a rasterized transaction, ready to present.
type Frame struct {
	Epoch  Epoch
	Pixmap *gg.Pixmap
}

// Notifier receives frame-readiness callbacks from the backend. The
// implementation typically injects a Rerender wake-up into the host
// loop; it must not block.
type Notifier interface {
	NewFrameReady(Epoch)
}

// ErrBackendClosed is returned when a transaction is submitted after
// Deinit. Submissions race naturally with window close; callers log and
// drop.
var ErrBackendClosed = errors.New("render: backend closed")

// txDepth bounds in-flight transactions. The wake-up protocol submits at
// most one payload per Dirty/Redraw cycle, so depth beyond a couple of
// frames only adds latency.
const txDepth = 4

// API is the window task's sender side of the paint consumer. It is the
// only way paint work crosses the thread boundary.
type API struct {
	tx     chan<- Transaction
	done   <-chan struct{}
	logger *slog.Logger
}

// SendTransaction submits a display list for rasterization. Best-effort:
// when the backend is gone the payload is dropped and the error
// returned; a full queue drops the payload the same way (the next Dirty
// cycle resubmits fresher content anyway).
func (a *API) SendTransaction(t Transaction) error {
	select {
	case <-a.done:
		return ErrBackendClosed
	default:
	}
	select {
	case a.tx <- t:
		return nil
	case <-a.done:
		return ErrBackendClosed
	default:
		a.logger.Warn("render: transaction queue full, dropping payload", "epoch", t.Epoch)
		return nil
	}
}

// backend rasterizes transactions on its own goroutine and feeds ready
// frames to the presentation side. It plays the role of the GPU-facing
// renderer's scene-building thread.
type backend struct {
	tx       chan Transaction
	ready    chan *Frame
	done     chan struct{}
	notifier Notifier
	logger   *slog.Logger
}

func (b *backend) run() {
	for t := range b.tx {
		f, err := rasterize(t)
		if err != nil {
			// Transient failure: skip this payload, the next mutation
			// batch retries. Never fatal.
			b.logger.Warn("render: rasterization failed", "epoch", t.Epoch, "error", err)
			continue
		}
		// Keep only the latest frame: an unconsumed older frame is
		// superseded the moment a newer one exists.
		for {
			select {
			case b.ready <- f:
				b.notifier.NewFrameReady(f.Epoch)
			default:
				select {
				case <-b.ready:
				default:
				}
				continue
			}
			break
		}
	}
	close(b.done)
}

// rasterize renders a transaction into a device-sized pixmap.
func rasterize(t Transaction) (*Frame, error) {
	w, h := int(t.DeviceSize.Width), int(t.DeviceSize.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	pm := gg.NewPixmap(w, h)
	pm.Clear(t.Background)
	r := scene.NewRenderer(w, h)
	defer r.Close()
	if err := r.Render(pm, t.Scene); err != nil {
		return nil, err
	}
	return &Frame{Epoch: t.Epoch, Pixmap: pm}, nil
}
