package task

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// Emulated futex, for targets without a native one. Parked waiters are kept
// in a fixed table of buckets hashed by the futex address. The bucket lock
// orders the value check in park against unpark: a waker stores the new value
// before taking the bucket lock, so a waiter that still sees the old value
// under the lock is guaranteed to be queued before the waker looks.

const parkingBuckets = 251

type parkingBucket struct {
	mu      sync.Mutex
	waiters list.List // *parker
}

type parker struct {
	addr   *uint32
	ready  chan struct{}
	queued bool // guarded by the bucket lock
}

var parkingLot [parkingBuckets]parkingBucket

func bucketFor(addr *uint32) *parkingBucket {
	h := uintptr(unsafe.Pointer(addr))
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	return &parkingLot[h%parkingBuckets]
}

// enqueue queues the caller on addr if it still holds cmp.
func enqueue(addr *uint32, cmp uint32) (*parkingBucket, *list.Element, *parker) {
	b := bucketFor(addr)
	b.mu.Lock()
	defer b.mu.Unlock()
	if atomic.LoadUint32(addr) != cmp {
		return b, nil, nil
	}
	p := &parker{addr: addr, ready: make(chan struct{}), queued: true}
	return b, b.waiters.PushBack(p), p
}

// park blocks while *addr == cmp until unpark releases it. It reports whether
// it was released by unpark (as opposed to finding the value changed).
func park(addr *uint32, cmp uint32) bool {
	_, _, p := enqueue(addr, cmp)
	if p == nil {
		return false
	}
	<-p.ready
	return true
}

// parkTimeout is park with a relative timeout. timedOut is true only if the
// timeout elapsed while the caller was still queued.
func parkTimeout(addr *uint32, cmp uint32, timeout time.Duration) (woken, timedOut bool) {
	b, e, p := enqueue(addr, cmp)
	if p == nil {
		return false, false
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-p.ready:
		return true, false
	case <-t.C:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !p.queued {
		// unpark got to us between the timer firing and taking the lock.
		return true, false
	}
	p.queued = false
	b.waiters.Remove(e)
	return false, true
}

// unpark releases up to n waiters parked on addr, in arrival order, and
// returns how many it released.
func unpark(addr *uint32, n uint32) uint32 {
	b := bucketFor(addr)
	b.mu.Lock()
	defer b.mu.Unlock()

	var woken uint32
	for e := b.waiters.Front(); e != nil && woken < n; {
		next := e.Next()
		if p := e.Value.(*parker); p.addr == addr {
			b.waiters.Remove(e)
			p.queued = false
			close(p.ready)
			woken++
		}
		e = next
	}
	return woken
}
