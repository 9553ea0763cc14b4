package sync

import (
	"errors"

	"github.com/tazorax/futexsync/internal/task"
)

// ErrOncePoisoned is the panic value raised by Once.Do when an earlier call's
// function panicked or called OnceState.Poison.
var ErrOncePoisoned = errors.New("sync: Once instance has previously been poisoned")

const (
	onceIncomplete = uint32(iota)
	oncePoisoned
	onceRunning
	onceComplete
)

// OnceStatus is the externally visible state of a Once.
type OnceStatus uint8

const (
	OnceIncomplete OnceStatus = iota
	OncePoisoned
	OnceRunning
	OnceComplete
)

func (s OnceStatus) String() string {
	switch s {
	case OnceIncomplete:
		return "incomplete"
	case OncePoisoned:
		return "poisoned"
	case OnceRunning:
		return "running"
	case OnceComplete:
		return "complete"
	}
	return "invalid"
}

// Once is an object that will perform exactly one successful action.
//
// If the action panics, the Once is poisoned: later calls to Do panic with
// ErrOncePoisoned instead of running their function, while DoForce gets to
// retry. Calling Do on the same Once from inside its own function deadlocks.
//
// The zero value is ready to use. A Once must not be copied after first use.
type Once struct {
	state task.Futex
}

// OnceState is handed to the function passed to DoForce or Call.
type OnceState struct {
	poisoned   bool
	setStateTo uint32
}

// IsPoisoned reports whether the Once was poisoned when this attempt started.
func (s *OnceState) IsPoisoned() bool {
	return s.poisoned
}

// Poison marks the Once as poisoned once the current function returns, so the
// next DoForce runs again and the next Do panics.
func (s *OnceState) Poison() {
	s.setStateTo = oncePoisoned
}

// Do calls f if and only if no earlier call on o has completed. When several
// goroutines call Do at once, one runs f and the others block until it
// returns. It panics with ErrOncePoisoned if o is poisoned.
func (o *Once) Do(f func()) {
	if o.state.Load() == onceComplete {
		return
	}
	o.Call(false, func(*OnceState) { f() })
}

// DoForce is like Do, but also runs f on a poisoned Once. f can tell from its
// OnceState whether the previous attempt failed.
func (o *Once) DoForce(f func(*OnceState)) {
	if o.state.Load() == onceComplete {
		return
	}
	o.Call(true, f)
}

// IsCompleted reports whether some call completed successfully.
func (o *Once) IsCompleted() bool {
	return o.state.Load() == onceComplete
}

// Status returns the current state of o.
func (o *Once) Status() OnceStatus {
	switch o.state.Load() {
	case onceIncomplete:
		return OnceIncomplete
	case oncePoisoned:
		return OncePoisoned
	case onceRunning:
		return OnceRunning
	case onceComplete:
		return OnceComplete
	}
	panic("sync: invalid Once state")
}

// Call is the slow path shared by Do and DoForce. With ignorePoisoning unset
// a poisoned o panics with ErrOncePoisoned instead of running f.
func (o *Once) Call(ignorePoisoning bool, f func(*OnceState)) {
	for {
		state := o.state.Load()
		switch state {
		case onceComplete:
			return

		case onceRunning:
			// Another goroutine is running its function. The completion
			// guard wakes us when it is done.
			o.state.Wait(onceRunning)

		case oncePoisoned, onceIncomplete:
			if state == oncePoisoned && !ignorePoisoning {
				panic(ErrOncePoisoned)
			}
			if !o.state.CompareAndSwap(state, onceRunning) {
				// Somebody else got there first.
				continue
			}
			o.run(state == oncePoisoned, f)
			return

		default:
			panic("sync: invalid Once state")
		}
	}
}

// run calls f while o is in the running state.
func (o *Once) run(poisoned bool, f func(*OnceState)) {
	// The guard leaves o poisoned unless f returns normally.
	guard := completionGuard{state: &o.state, setStateTo: oncePoisoned}
	defer guard.release()

	s := OnceState{poisoned: poisoned, setStateTo: onceComplete}
	f(&s)
	guard.setStateTo = s.setStateTo
}

// completionGuard moves a Once out of the running state exactly once, on
// every exit path from run, and releases the goroutines waiting for it.
type completionGuard struct {
	state      *task.Futex
	setStateTo uint32
}

func (g *completionGuard) release() {
	g.state.Store(g.setStateTo)
	g.state.WakeAll()
}
