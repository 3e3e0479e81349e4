// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gg"

	"github.com/wusyong/corgo/dom"
	"github.com/wusyong/corgo/layout"
	"github.com/wusyong/corgo/state"
)

type readyChan chan Epoch

func (c readyChan) NewFrameReady(e Epoch) { c <- e }

func testTransaction(epoch Epoch) Transaction {
	return Transaction{
		Epoch:      epoch,
		LayoutSize: layout.Size{Width: 64, Height: 64},
		DeviceSize: layout.Size{Width: 64, Height: 64},
		Background: gg.RGB(0, 0, 0),
		Scene:      BuildDisplayList(dom.NewTree[state.NodeState](), 0, 1),
	}
}

func waitEpoch(t *testing.T, ready readyChan) Epoch {
	t.Helper()
	select {
	case e := <-ready:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("frame never became ready")
		return 0
	}
}

func TestBackendRoundTrip(t *testing.T) {
	ready := make(readyChan, 8)
	r, api := NewRenderer(ready, nil)
	defer r.Deinit()

	if _, err := r.Render(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("err = %v before first frame, want ErrNoFrame", err)
	}

	if err := api.SendTransaction(testTransaction(1)); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := waitEpoch(t, ready); got != 1 {
		t.Errorf("ready epoch = %d, want 1", got)
	}

	r.Update()
	f, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if f.Epoch != 1 {
		t.Errorf("frame epoch = %d, want 1", f.Epoch)
	}
}

func TestNewestFrameWins(t *testing.T) {
	ready := make(readyChan, 8)
	r, api := NewRenderer(ready, nil)
	defer r.Deinit()

	// Two payloads submitted without a consume in between: the
	// presentation side must adopt the newest frame.
	api.SendTransaction(testTransaction(1))
	api.SendTransaction(testTransaction(2))
	waitEpoch(t, ready)
	waitEpoch(t, ready)

	r.Update()
	f, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if f.Epoch != 2 {
		t.Errorf("adopted epoch = %d, want 2", f.Epoch)
	}
}

func TestSendAfterDeinit(t *testing.T) {
	ready := make(readyChan, 8)
	r, api := NewRenderer(ready, nil)
	r.Deinit()

	if err := api.SendTransaction(testTransaction(1)); !errors.Is(err, ErrBackendClosed) {
		t.Errorf("err = %v, want ErrBackendClosed", err)
	}
}
