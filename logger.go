// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package corgo

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger for corgo and all its sub-packages.
// By default, corgo produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by corgo:
//   - [slog.LevelDebug]: mutation batches, wake-up traffic, suppressed
//     events
//   - [slog.LevelInfo]: window lifecycle
//   - [slog.LevelWarn]: dropped payloads, transient layout or
//     rasterization failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by corgo. Sub-packages receive
// it at construction time so they share the same configuration without
// import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
