package sync

// A Guard holds a lock acquired with Acquire and releases it exactly once.
//
//	g := sync.Acquire(&mu)
//	defer g.Release()
type Guard struct {
	l Locker
}

// Acquire locks l and returns a Guard that unlocks it.
func Acquire(l Locker) Guard {
	l.Lock()
	return Guard{l: l}
}

// Release unlocks the guarded lock. Releasing a Guard twice, or releasing the
// zero Guard, panics.
func (g *Guard) Release() {
	if g.l == nil {
		panic("sync: release of released Guard")
	}
	l := g.l
	g.l = nil
	l.Unlock()
}
