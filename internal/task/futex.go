// Package task provides the futex word that every lock in this module is
// built on.
package task

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// If true, print verbose debug logs.
const verbose = false

// Number of waiters passed to the wake call to wake everybody.
const wakeAll = math.MaxInt32

// A futex is a way for userspace to wait with the pointer as the key, and for
// another thread to wake one or all waiting threads keyed on the same pointer.
//
// A futex does not change the underlying value, it only reads it before going
// to sleep (atomically) to prevent lost wake-ups. The zero value is ready to
// use. A Futex must not be copied after first use, since waiters are keyed on
// its address.
type Futex struct {
	atomic.Uint32
}

// addr returns the address of the futex word, the key for waits and wakes.
func (f *Futex) addr() *uint32 {
	return (*uint32)(unsafe.Pointer(&f.Uint32))
}
