package sync

import (
	"time"

	"github.com/tazorax/futexsync/internal/task"
)

// Cond implements a condition variable, a rendezvous point for goroutines
// waiting for or announcing the occurrence of an event.
//
// Unlike the standard library Cond, a Cond is not bound to a Locker: the lock
// protecting the condition is passed to every Wait call. Waiting on one Cond
// with different locks is a bug in the caller that Cond cannot detect.
//
// The zero value is ready to use. A Cond must not be copied after first use.
type Cond struct {
	// Incremented on every notification. Only inequality is meaningful, so
	// wrapping around is harmless.
	generation task.Futex
}

// Wait atomically unlocks l and suspends execution of the calling goroutine.
// After later resuming execution, Wait locks l before returning. The caller
// must hold l when calling Wait.
//
// Wait can return without a notification, so callers check their condition
// in a loop:
//
//	mu.Lock()
//	for !condition() {
//	    c.Wait(&mu)
//	}
//	... make use of condition ...
//	mu.Unlock()
func (c *Cond) Wait(l Locker) {
	// Examine the generation before unlocking. A notification sent after
	// this point changes the futex word, so the wait below can't miss it.
	gen := c.generation.Load()
	l.Unlock()
	c.generation.Wait(gen)
	l.Lock()
}

// WaitTimeout is like Wait, but gives up waiting after d. It reports whether
// it returned because d elapsed without a notification. The lock is held
// again on return in either case. A non-positive d only checks for a
// notification that raced with the unlock.
func (c *Cond) WaitTimeout(l Locker, d time.Duration) (timedOut bool) {
	gen := c.generation.Load()
	l.Unlock()
	timedOut = c.generation.WaitTimeout(gen, d)
	l.Lock()
	return timedOut
}

// Signal wakes one goroutine waiting on c, if there is any.
func (c *Cond) Signal() {
	c.generation.Add(1)
	c.generation.Wake()
}

// Broadcast wakes all goroutines waiting on c.
func (c *Cond) Broadcast() {
	c.generation.Add(1)
	c.generation.WakeAll()
}
