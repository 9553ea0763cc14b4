//go:build linux && !futex.emulated

package task

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// From <linux/futex.h>. All futex words in this module live in process-private
// memory, so the private variants are used.
const (
	futexWaitPrivate = 0 | 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 1 | 128 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

// Atomically check for cmp to still be equal to the futex value and if so, go
// to sleep. Return true if we were definitely awoken by a call to Wake or
// WakeAll, and false if we can't be sure of that.
func (f *Futex) Wait(cmp uint32) bool {
	if verbose {
		println("*** futex wait:", f.addr(), cmp, "tid", unix.Gettid())
	}
	_, errno := futex(f.addr(), futexWaitPrivate, cmp, nil)
	switch errno {
	case 0, unix.EAGAIN, unix.EINTR:
		// EAGAIN: the value was no longer cmp when the kernel looked.
		// EINTR: interrupted by a signal.
	default:
		panic(fmt.Errorf("futex: wait: %w", errno))
	}

	// A zero return could mean we were woken by Wake or WakeAll, but the
	// manual page warns that unrelated code which previously used the same
	// memory location can cause wake-ups too. Callers always re-check the
	// futex word, so report that we can't be sure.
	return false
}

// Like Wait, but gives up after timeout. Reports whether the timeout elapsed
// before the futex was woken or its value changed.
func (f *Futex) WaitTimeout(cmp uint32, timeout time.Duration) (timedOut bool) {
	if timeout < 0 {
		timeout = 0
	}
	if verbose {
		println("*** futex wait timeout:", f.addr(), cmp, int64(timeout), "tid", unix.Gettid())
	}

	// FUTEX_WAIT takes a relative timeout, measured against CLOCK_MONOTONIC.
	ts := unix.NsecToTimespec(int64(timeout))
	_, errno := futex(f.addr(), futexWaitPrivate, cmp, &ts)
	switch errno {
	case unix.ETIMEDOUT:
		return true
	case 0, unix.EAGAIN, unix.EINTR:
		return false
	default:
		panic(fmt.Errorf("futex: wait: %w", errno))
	}
}

// Wake a single waiter.
func (f *Futex) Wake() {
	f.wake(1)
}

// Wake all waiters.
func (f *Futex) WakeAll() {
	f.wake(wakeAll)
}

func (f *Futex) wake(n uint32) {
	woken, errno := futex(f.addr(), futexWakePrivate, n, nil)
	if errno != 0 {
		panic(fmt.Errorf("futex: wake: %w", errno))
	}
	if verbose {
		println("*** futex wake:", f.addr(), n, "woke", woken, "tid", unix.Gettid())
	}
}

func futex(addr *uint32, op uintptr, val uint32, ts *unix.Timespec) (uintptr, syscall.Errno) {
	r1, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		op,
		uintptr(val),
		uintptr(unsafe.Pointer(ts)),
		0,
		0)
	return r1, errno
}
