package sync_test

import (
	stdsync "sync"
	"testing"

	"github.com/tazorax/futexsync/sync"
)

func TestOnceValue(t *testing.T) {
	calls := 0
	f := sync.OnceValue(func() int {
		calls++
		return 42
	})

	var wg stdsync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := f(); got != 42 {
				t.Errorf("f() = %d, want 42", got)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("function ran %d times, want 1", calls)
	}
}

func TestOnceFunc(t *testing.T) {
	calls := 0
	f := sync.OnceFunc(func() { calls++ })
	f()
	f()
	if calls != 1 {
		t.Errorf("function ran %d times, want 1", calls)
	}
}

func TestOnceFuncPanic(t *testing.T) {
	f := sync.OnceFunc(func() { panic("boom") })
	mustPanic(t, "boom", f)
	mustPanic(t, sync.ErrOncePoisoned.Error(), f)
}
