package task

import (
	"sync"
	"testing"
	"time"
)

const waitTimeout = 10 * time.Second

func waitDone(t *testing.T, done <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestFutexWaitValueChanged(t *testing.T) {
	var f Futex
	f.Store(1)

	done := make(chan struct{})
	go func() {
		f.Wait(0)
		close(done)
	}()
	waitDone(t, done, "Wait on a stale value")
}

func TestFutexWake(t *testing.T) {
	var f Futex
	done := make(chan struct{})
	go func() {
		// Wait may return spuriously; the word decides.
		for f.Load() == 0 {
			f.Wait(0)
		}
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	f.Store(1)
	f.Wake()
	waitDone(t, done, "woken waiter")
}

func TestFutexWakeAll(t *testing.T) {
	const waiters = 8
	var (
		f  Futex
		wg sync.WaitGroup
	)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f.Load() == 0 {
				f.Wait(0)
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	f.Store(1)
	f.WakeAll()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	waitDone(t, done, "all woken waiters")
}

func TestFutexWakeWithoutWaiters(t *testing.T) {
	var f Futex
	f.Wake()
	f.WakeAll()
}

func TestFutexWaitTimeout(t *testing.T) {
	var f Futex
	const timeout = 30 * time.Millisecond

	start := time.Now()
	if !f.WaitTimeout(0, timeout) {
		t.Error("WaitTimeout without a wake did not time out")
	}
	if elapsed := time.Since(start); elapsed < timeout/2 {
		t.Errorf("WaitTimeout returned after %v, want about %v", elapsed, timeout)
	}

	f.Store(1)
	if f.WaitTimeout(0, time.Hour) {
		t.Error("WaitTimeout on a stale value timed out")
	}
}

func TestFutexWaitTimeoutWoken(t *testing.T) {
	var f Futex
	result := make(chan bool, 1)
	go func() {
		timedOut := false
		for f.Load() == 0 && !timedOut {
			timedOut = f.WaitTimeout(0, waitTimeout)
		}
		result <- timedOut
	}()

	time.Sleep(10 * time.Millisecond)
	f.Store(1)
	f.Wake()

	select {
	case timedOut := <-result:
		if timedOut {
			t.Error("woken WaitTimeout reported a timeout")
		}
	case <-time.After(waitTimeout + time.Second):
		t.Fatal("timed out waiting for woken WaitTimeout")
	}
}
