// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"

	"github.com/wusyong/corgo/render"
)

// Presenter owns the swap/present step: it receives the ready frame and
// makes it visible. Called only from the host-loop thread.
type Presenter interface {
	Present(*render.Frame) error
	Close() error
}

// PixmapPresenter keeps the latest presented frame in memory. It is the
// headless presenter used by tests and demos; callers read back the
// frame to assert on or save it.
type PixmapPresenter struct {
	mu       sync.Mutex
	last     *render.Frame
	presents int
}

// NewPixmapPresenter creates an empty presenter.
func NewPixmapPresenter() *PixmapPresenter {
	return &PixmapPresenter{}
}

// Present stores the frame as the currently visible one.
func (p *PixmapPresenter) Present(f *render.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = f
	p.presents++
	return nil
}

// Close releases nothing; the presenter is plain memory.
func (p *PixmapPresenter) Close() error { return nil }

// Frame returns the currently visible frame, or nil before the first
// present.
func (p *PixmapPresenter) Frame() *render.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Presents returns how many swap/present calls have happened.
func (p *PixmapPresenter) Presents() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presents
}

// CanvasPresenter presents frames through a GPU texture via
// gogpu/gpucontext: each frame is drawn into a ggcanvas, uploaded, and
// rendered to the device's texture drawer.
type CanvasPresenter struct {
	canvas *ggcanvas.Canvas
	drawer gpucontext.TextureDrawer
}

// NewCanvasPresenter creates a presenter targeting the given device.
func NewCanvasPresenter(provider gpucontext.DeviceProvider, drawer gpucontext.TextureDrawer, width, height int) (*CanvasPresenter, error) {
	c, err := ggcanvas.New(provider, width, height)
	if err != nil {
		return nil, err
	}
	return &CanvasPresenter{canvas: c, drawer: drawer}, nil
}

// Present uploads the frame and draws it to the device texture.
func (p *CanvasPresenter) Present(f *render.Frame) error {
	buf := gg.ImageBufFromImage(f.Pixmap.ToImage())
	if err := p.canvas.Draw(func(dc *gg.Context) {
		dc.DrawImage(buf, 0, 0)
	}); err != nil {
		return err
	}
	return p.canvas.RenderTo(p.drawer)
}

// Close releases the canvas and its GPU texture.
func (p *CanvasPresenter) Close() error {
	return p.canvas.Close()
}
