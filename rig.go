package rig

import (
	"fmt"
	"os"
	"sync"
)

// DebugHandler receives diagnostic output from a rig backend. The backend
// calls it synchronously from whatever goroutine performs hardware I/O.
// A nil error tells the backend the message was handled; handlers must
// never panic across this boundary.
type DebugHandler func(level DebugLevel, format string, args ...any) error

// Rig is the narrow surface the debug sink needs from a backend: a place
// to hang its callback and a way to forward the configured threshold so
// the backend can pre-filter what it emits at all.
type Rig interface {
	// SetDebugCallback replaces the backend's debug handler.
	// Passing nil restores the backend's built-in default handler.
	SetDebugCallback(cb DebugHandler)
	// SetDebugLevel tells the backend the maximum level worth emitting.
	SetDebugLevel(level DebugLevel)
}

// debugState implements the Rig debug plumbing. Backends embed it and
// report through debugf; whatever handler is registered (or the built-in
// stderr fallback) receives the message.
type debugState struct {
	mu    sync.Mutex
	cb    DebugHandler
	level DebugLevel
}

func (d *debugState) SetDebugCallback(cb DebugHandler) {
	d.mu.Lock()
	d.cb = cb
	d.mu.Unlock()
}

func (d *debugState) SetDebugLevel(level DebugLevel) {
	if !level.valid() {
		return
	}
	d.mu.Lock()
	d.level = level
	d.mu.Unlock()
}

// debugf routes a message to the registered handler, applying the
// backend's own level filter first. With no handler registered the
// message goes straight to stderr.
func (d *debugState) debugf(level DebugLevel, format string, args ...any) {
	d.mu.Lock()
	cb := d.cb
	threshold := d.level
	d.mu.Unlock()

	if level > threshold {
		return
	}
	if cb == nil {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	// Handler errors are deliberately dropped: diagnostics must never
	// disturb the hardware control path.
	_ = cb(level, format, args...)
}
