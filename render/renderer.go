// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"log/slog"
)

// ErrNoFrame is returned by Render before any frame has become ready.
var ErrNoFrame = errors.New("render: no frame ready")

// Renderer is the presentation side of the paint consumer: it adopts
// frames the backend finished and hands the newest one to the caller for
// the swap/present step. It lives on the host-loop thread; only Update,
// Render and Deinit are called on it, and only from that thread.
type Renderer struct {
	backend *backend
	current *Frame
}

// NewRenderer starts a paint backend and returns the presentation-side
// renderer plus the window task's submission API. The notifier fires on
// the backend goroutine whenever a submitted display list has been
// rasterized; it must only inject a wake-up, never paint.
func NewRenderer(notifier Notifier, logger *slog.Logger) (*Renderer, *API) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &backend{
		tx:       make(chan Transaction, txDepth),
		ready:    make(chan *Frame, 1),
		done:     make(chan struct{}),
		notifier: notifier,
		logger:   logger,
	}
	go b.run()
	api := &API{tx: b.tx, done: b.done, logger: logger}
	return &Renderer{backend: b}, api
}

// Update adopts the newest ready frame, if any.
func (r *Renderer) Update() {
	for {
		select {
		case f := <-r.backend.ready:
			r.current = f
		default:
			return
		}
	}
}

// Render returns the frame to present. ErrNoFrame before the first
// ready frame.
func (r *Renderer) Render() (*Frame, error) {
	if r.current == nil {
		return nil, ErrNoFrame
	}
	return r.current, nil
}

// Deinit stops the backend. In-flight transactions finish or are
// discarded; Deinit returns once the backend goroutine exited.
func (r *Renderer) Deinit() {
	close(r.backend.tx)
	<-r.backend.done
}
