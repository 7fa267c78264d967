package fibdrv

import "sync/atomic"

// Gate admits one session at a time. Acquisition never waits: a second
// caller is turned away until the holder releases.
//
// A Gate is created once and shared by every Device that fronts the same
// resource.
type Gate struct {
	held atomic.Bool
}

// NewGate returns an unheld Gate.
func NewGate() *Gate { return &Gate{} }

// TryAcquire takes the gate and reports whether it succeeded.
func (g *Gate) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release frees the gate. It reports false if the gate was not held.
func (g *Gate) Release() bool {
	return g.held.CompareAndSwap(true, false)
}

// Held reports whether a session currently holds the gate.
func (g *Gate) Held() bool { return g.held.Load() }
