// Package oneflight provides a single-slot action gate: at most one record
// id may be mid-mutation at a time, and a hung holder is evicted after a
// bounded hold so the console is never locked out permanently.
package oneflight

import (
	"errors"
	"sync"
	"time"
)

var ErrHeld = errors.New("another action is already in flight")

type Gate struct {
	mu       sync.Mutex
	id       string
	gen      uint64
	deadline time.Time
	hold     time.Duration
	now      func() time.Time
}

const defaultHold = 30 * time.Second

func NewGate(hold time.Duration) *Gate {
	if hold <= 0 {
		hold = defaultHold
	}
	return &Gate{
		hold: hold,
		now:  time.Now,
	}
}

// Acquire claims the gate for id. It fails synchronously with ErrHeld when
// another id is in flight and its hold has not yet expired. The returned
// release func is owner-scoped: once the hold expires and someone else
// acquires, the stale owner's release is a no-op.
func (g *Gate) Acquire(id string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.id != "" && g.now().Before(g.deadline) {
		return nil, ErrHeld
	}

	g.gen++
	gen := g.gen
	g.id = id
	g.deadline = g.now().Add(g.hold)

	return func() { g.release(gen) }, nil
}

func (g *Gate) release(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen != gen {
		return
	}
	g.id = ""
	g.deadline = time.Time{}
}

// InFlight reports the id currently being processed, if any. An expired
// hold no longer counts as in flight.
func (g *Gate) InFlight() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.id == "" || !g.now().Before(g.deadline) {
		return "", false
	}
	return g.id, true
}
