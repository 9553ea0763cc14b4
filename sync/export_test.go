package sync

// State returns the raw lock word: 0 when free, the reader count while
// read-locked, and RWMutexWriteLocked while write-locked.
func (rw *RWMutex) State() uint32 {
	return rw.state.Load()
}

// SetState overwrites the lock word. Only for tests that need to start from
// an otherwise unreachable state.
func (rw *RWMutex) SetState(v uint32) {
	rw.state.Store(v)
}

const (
	RWMutexWriteLocked = rwMutexStateWLocked
	RWMutexMaxReaders  = rwMutexMaxReaders
)
