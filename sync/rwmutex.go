package sync

import (
	"github.com/tazorax/futexsync/internal/task"
)

const (
	rwMutexStateUnlocked = uint32(0)
	rwMutexStateWLocked  = ^uint32(0)
	rwMutexMaxReaders    = rwMutexStateWLocked - 1
)

// An RWMutex is a reader/writer mutual exclusion lock. The lock can be held by
// an arbitrary number of readers or a single writer. The zero value is an
// unlocked mutex.
//
// There is no fairness between readers and writers: as long as some reader
// holds the lock, new readers get in, so a steady stream of readers can keep
// a writer waiting indefinitely.
//
// An RWMutex must not be copied after first use.
type RWMutex struct {
	// state is the current state of the RWMutex.
	// Iff the mutex is completely unlocked, it contains rwMutexStateUnlocked (aka 0).
	// Iff the mutex is write-locked, it contains rwMutexStateWLocked.
	// While the mutex is read-locked, it contains the current number of readers.
	state task.Futex
}

// Lock locks rw for writing. If the lock is already locked for reading or
// writing, Lock blocks until the lock is available.
func (rw *RWMutex) Lock() {
	for {
		current := rw.state.Load()
		if current != rwMutexStateUnlocked {
			// Readers or a writer hold the lock. Sleep until the state changes.
			rw.state.Wait(current)
			continue
		}
		if rw.state.CompareAndSwap(rwMutexStateUnlocked, rwMutexStateWLocked) {
			return
		}
	}
}

// TryLock tries to lock rw for writing and reports whether it succeeded.
//
// Note that while correct uses of TryLock do exist, they are rare,
// and use of TryLock is often a sign of a deeper problem
// in a particular use of mutexes.
func (rw *RWMutex) TryLock() bool {
	return rw.state.CompareAndSwap(rwMutexStateUnlocked, rwMutexStateWLocked)
}

// Unlock unlocks rw for writing. It is a run-time error if rw is not locked
// for writing on entry to Unlock.
func (rw *RWMutex) Unlock() {
	if !rw.state.CompareAndSwap(rwMutexStateWLocked, rwMutexStateUnlocked) {
		if rw.state.Load() == rwMutexStateUnlocked {
			// The mutex is already unlocked.
			panic("sync: unlock of unlocked RWMutex")
		}
		// The mutex is read-locked instead of write-locked.
		panic("sync: write-unlock of read-locked RWMutex")
	}

	// Both readers and writers may be parked behind a writer. Wake them all;
	// they re-check the state and race for it.
	rw.state.WakeAll()
}

// RLock locks rw for reading.
//
// It should not be used for recursive read locking: a reader that is waiting
// because the reader count is at its limit will not get in until another
// reader leaves.
func (rw *RWMutex) RLock() {
	for {
		current := rw.state.Load()
		if current >= rwMutexMaxReaders {
			// Write-locked, or so many readers that one more would look like
			// a writer.
			rw.state.Wait(current)
			continue
		}
		if rw.state.CompareAndSwap(current, current+1) {
			return
		}
	}
}

// TryRLock tries to lock rw for reading and reports whether it succeeded.
//
// Note that while correct uses of TryRLock do exist, they are rare,
// and use of TryRLock is often a sign of a deeper problem
// in a particular use of mutexes.
func (rw *RWMutex) TryRLock() bool {
	current := rw.state.Load()
	if current >= rwMutexMaxReaders {
		return false
	}
	return rw.state.CompareAndSwap(current, current+1)
}

// RUnlock undoes a single RLock call; it does not affect other simultaneous
// readers. It is a run-time error if rw is not locked for reading on entry to
// RUnlock.
func (rw *RWMutex) RUnlock() {
	old := rw.state.Add(^uint32(0)) + 1
	switch old {
	case rwMutexStateWLocked:
		// The mutex is write-locked instead of read-locked.
		rw.state.Add(1)
		panic("sync: read-unlock of write-locked RWMutex")

	case rwMutexStateUnlocked:
		// The mutex is already unlocked. The decrement wrapped around to the
		// writer sentinel, put it back.
		rw.state.Add(1)
		panic("sync: RUnlock of unlocked RWMutex")

	case 1:
		// This was the last reader. Only writers can be waiting now, since
		// readers only wait for a writer or for the reader limit.
		rw.state.Wake()

	case rwMutexMaxReaders:
		// Let in a reader that was waiting for the count to drop.
		rw.state.Wake()
	}
}

// RLocker returns a Locker interface that implements
// the Lock and Unlock methods by calling rw.RLock and rw.RUnlock.
func (rw *RWMutex) RLocker() Locker {
	return (*rlocker)(rw)
}

type rlocker RWMutex

func (r *rlocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*RWMutex)(r).RUnlock() }
