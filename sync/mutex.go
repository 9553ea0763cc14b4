package sync

import (
	"github.com/tazorax/futexsync/internal/task"
)

const (
	mutexUnlocked = uint32(0)
	mutexLocked   = uint32(1)
)

// A Mutex is a mutual exclusion lock. The zero value is an unlocked mutex.
//
// A Mutex is not reentrant: a goroutine that calls Lock twice without an
// Unlock in between deadlocks itself. Like the standard library mutex, a
// locked Mutex is not associated with a particular goroutine.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	futex task.Futex
}

// Lock locks m. If the lock is already in use, the calling goroutine blocks
// until the mutex is available.
func (m *Mutex) Lock() {
	for !m.futex.CompareAndSwap(mutexUnlocked, mutexLocked) {
		// Wait until we get resumed in Unlock. If the mutex was unlocked in
		// the meantime the wait returns immediately.
		m.futex.Wait(mutexLocked)
	}
}

// TryLock tries to lock m and reports whether it succeeded. It never blocks.
//
// Note that while correct uses of TryLock do exist, they are rare,
// and use of TryLock is often a sign of a deeper problem
// in a particular use of mutexes.
func (m *Mutex) TryLock() bool {
	return m.futex.CompareAndSwap(mutexUnlocked, mutexLocked)
}

// Unlock unlocks m. It is a run-time error if m is not locked on entry to
// Unlock.
func (m *Mutex) Unlock() {
	// Unlock first, then wake, so the woken goroutine finds the mutex free.
	// Any other goroutine may still win the race for it.
	if old := m.futex.Swap(mutexUnlocked); old == mutexUnlocked {
		panic("sync: unlock of unlocked Mutex")
	}
	m.futex.Wake()
}

// A Locker represents an object that can be locked and unlocked.
type Locker interface {
	Lock()
	Unlock()
}
