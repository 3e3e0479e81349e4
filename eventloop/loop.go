// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package eventloop provides the process-wide host event loop that
// corgo's windows are driven by.
//
// The loop is single-threaded: it blocks waiting for events (translated
// OS window events or user payloads injected through a Proxy) and hands
// each one to a dispatch function. It stands in for the platform event
// loop (Win32, AppKit, X11) behind a small seam so the rest of the
// pipeline can be exercised headless.
package eventloop

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Sentinel errors returned by Proxy sends.
var (
	// ErrLoopClosed is returned when the loop has finished running.
	ErrLoopClosed = errors.New("eventloop: loop closed")

	// ErrLoopFull is returned when the inbound queue is saturated and the
	// event was dropped. Sends are best-effort by contract.
	ErrLoopFull = errors.New("eventloop: queue full, event dropped")
)

// queueDepth bounds the inbound queue. Injected events are coalescable
// by design (the wake-up protocol is idempotent), so a bounded queue
// with drop-on-overflow is safe.
const queueDepth = 256

var windowIDs atomic.Uint64

// NewWindowID allocates a process-unique window identity. The platform
// layer normally supplies these; headless callers allocate their own.
func NewWindowID() WindowID {
	return WindowID(windowIDs.Add(1))
}

// ControlFlow lets the dispatch function stop the loop.
type ControlFlow struct {
	exit bool
}

// Exit stops the loop after the current dispatch returns.
func (c *ControlFlow) Exit() { c.exit = true }

// Loop is the single process-wide dispatch loop. It must be run on one
// goroutine; Proxy sends may come from any goroutine.
type Loop struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{
		events: make(chan Event, queueDepth),
		done:   make(chan struct{}),
	}
}

// Proxy returns a handle for injecting events into the loop from any
// goroutine.
func (l *Loop) Proxy() *Proxy {
	return &Proxy{loop: l}
}

// Run blocks, delivering events to dispatch until dispatch calls
// ControlFlow.Exit. Events still queued at exit are discarded; a closing
// window races naturally with in-flight messages.
func (l *Loop) Run(dispatch func(Event, *ControlFlow)) {
	defer l.close()
	var flow ControlFlow
	for ev := range l.events {
		dispatch(ev, &flow)
		if flow.exit {
			return
		}
	}
}

func (l *Loop) close() {
	l.once.Do(func() { close(l.done) })
}

// Proxy injects events into a Loop. Sends never block: if the loop is
// gone or saturated the event is dropped and an error returned. Callers
// log and continue; a lost wake-up is recovered by the next one.
type Proxy struct {
	loop *Loop
}

// Send injects an already-formed event.
func (p *Proxy) Send(ev Event) error {
	select {
	case <-p.loop.done:
		return ErrLoopClosed
	default:
	}
	select {
	case p.loop.events <- ev:
		return nil
	case <-p.loop.done:
		return ErrLoopClosed
	default:
		return ErrLoopFull
	}
}

// SendUser wraps payload in a User event and injects it.
func (p *Proxy) SendUser(payload any) error {
	return p.Send(User{Payload: payload})
}
