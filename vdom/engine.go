// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vdom defines the boundary to the declarative UI description
// engine: the component of the system that diffs the declarative tree
// and emits mutation batches. Its internal diffing algorithm is not
// corgo's concern; the window task only drives it through Engine.
package vdom

import (
	"sync"
	"time"

	"github.com/wusyong/corgo/dom"
)

// Priority orders injected events inside the engine.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// KeyLocation distinguishes otherwise identical keys (left/right shift,
// numpad digits).
type KeyLocation uint8

const (
	LocationStandard KeyLocation = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// Event is an input event injected into the engine: a target-node hint
// (0 for none), the event name, and an arbitrary payload. Events are
// accepted unordered; the engine serializes processing.
type Event struct {
	Target   dom.NodeID
	Priority Priority
	Name     string
	Data     any
	Bubbles  bool
}

// Engine is the UI description engine seen from the window task. All
// methods are called from the window task goroutine only, except
// SendEvent which may be called from any goroutine.
type Engine interface {
	// Rebuild produces the initial full mutation batch.
	Rebuild() []dom.Mutation

	// HasWork reports whether the engine has pending diff work.
	HasWork() bool

	// ProcessAllMessages lets the engine consume its queued internal
	// messages. Non-blocking.
	ProcessAllMessages()

	// WorkWithDeadline produces one bounded unit of mutation work. The
	// engine stops diffing at the deadline; the partial batch is still
	// applied, progress is forward only.
	WorkWithDeadline(deadline time.Time) []dom.Mutation

	// SendEvent injects an input event.
	SendEvent(Event)
}

// QueueEngine is an Engine fed by hand with prepared mutation batches.
// It is the reference engine for tests and headless demos: batches
// pushed with Push become pending work; injected events are delivered to
// the handler during ProcessAllMessages, which may push further batches.
type QueueEngine struct {
	mu      sync.Mutex
	initial []dom.Mutation
	queue   [][]dom.Mutation
	inbox   []Event
	handler func(Event)
}

var _ Engine = (*QueueEngine)(nil)

// NewQueueEngine creates an engine whose Rebuild returns initial.
func NewQueueEngine(initial []dom.Mutation) *QueueEngine {
	return &QueueEngine{initial: initial}
}

// HandleFunc installs the event handler invoked from ProcessAllMessages.
func (e *QueueEngine) HandleFunc(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = fn
}

// Push enqueues a mutation batch as pending work.
func (e *QueueEngine) Push(batch []dom.Mutation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = append(e.queue, batch)
}

// Rebuild produces the initial full mutation batch.
func (e *QueueEngine) Rebuild() []dom.Mutation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initial
}

// HasWork reports whether batches are queued.
func (e *QueueEngine) HasWork() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue) > 0
}

// ProcessAllMessages drains the event inbox through the handler.
func (e *QueueEngine) ProcessAllMessages() {
	for {
		e.mu.Lock()
		if len(e.inbox) == 0 {
			e.mu.Unlock()
			return
		}
		ev := e.inbox[0]
		e.inbox = e.inbox[1:]
		fn := e.handler
		e.mu.Unlock()
		if fn != nil {
			fn(ev)
		}
	}
}

// WorkWithDeadline pops queued batches until the deadline passes or the
// queue empties. At least one batch is returned when work is pending, so
// progress is always forward.
func (e *QueueEngine) WorkWithDeadline(deadline time.Time) []dom.Mutation {
	var out []dom.Mutation
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return out
		}
		batch := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()
		out = append(out, batch...)
		if time.Now().After(deadline) {
			return out
		}
	}
}

// SendEvent appends to the inbox. Safe from any goroutine.
func (e *QueueEngine) SendEvent(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inbox = append(e.inbox, ev)
}
