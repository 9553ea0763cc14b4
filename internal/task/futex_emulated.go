//go:build !linux || futex.emulated

package task

import "time"

// Atomically check for cmp to still be equal to the futex value and if so, go
// to sleep. Return true if we were definitely awoken by a call to Wake or
// WakeAll, and false if we can't be sure of that.
//
// The emulation has no spurious wake-ups, so a true result is exact.
func (f *Futex) Wait(cmp uint32) bool {
	if verbose {
		println("*** futex wait:", f.addr(), cmp)
	}
	return park(f.addr(), cmp)
}

// Like Wait, but gives up after timeout. Reports whether the timeout elapsed
// before the futex was woken or its value changed.
func (f *Futex) WaitTimeout(cmp uint32, timeout time.Duration) (timedOut bool) {
	if timeout < 0 {
		timeout = 0
	}
	if verbose {
		println("*** futex wait timeout:", f.addr(), cmp, int64(timeout))
	}
	_, timedOut = parkTimeout(f.addr(), cmp, timeout)
	return timedOut
}

// Wake a single waiter.
func (f *Futex) Wake() {
	woken := unpark(f.addr(), 1)
	if verbose {
		println("*** futex wake:", f.addr(), 1, "woke", woken)
	}
}

// Wake all waiters.
func (f *Futex) WakeAll() {
	woken := unpark(f.addr(), wakeAll)
	if verbose {
		println("*** futex wake:", f.addr(), wakeAll, "woke", woken)
	}
}
