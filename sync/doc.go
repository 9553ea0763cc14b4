// Package sync provides futex-based synchronization primitives: a mutual
// exclusion lock, a reader/writer lock, a condition variable and a one-time
// initializer.
//
// Every primitive is a single 32-bit futex word, so the zero value is ready
// to use and nothing needs to be released. On Linux, blocked goroutines park
// in the kernel with futex(2) and hold their OS thread while parked. Other
// targets, or builds with the futex.emulated tag, use an emulated futex.
package sync
