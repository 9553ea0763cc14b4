package sync

// OnceFunc returns a function that invokes f only once. The returned function
// may be called concurrently.
//
// If f panics, the first call panics with the same value and the Once behind
// it is poisoned: every later call panics with ErrOncePoisoned.
func OnceFunc(f func()) func() {
	var once Once
	return func() {
		once.Do(func() {
			f()
			f = nil
		})
	}
}

// OnceValue returns a function that invokes f only once and returns the value
// returned by f. Panics behave as for OnceFunc.
func OnceValue[T any](f func() T) func() T {
	var (
		once   Once
		result T
	)
	return func() T {
		once.Do(func() {
			result = f()
			f = nil
		})
		return result
	}
}
