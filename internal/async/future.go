// Package async runs blocking calls on their own goroutine and delivers the
// outcome exactly once. There is no cancellation: a started call runs to completion.
package async

import (
	"fmt"

	"streamable/internal/generic"
)

// Future is the single-resolution outcome of a call started with Go or Run.
type Future[T any] struct {
	done   chan struct{}
	result generic.Result[T]
}

// Go starts f on a new goroutine and returns a Future for its result.
func Go[T any](f func() (T, error)) *Future[T] {
	fut := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(fut.done)
		defer func() {
			if r := recover(); r != nil {
				fut.result = generic.Err[T](fmt.Errorf("async call panicked: %v", r))
			}
		}()
		fut.result = generic.NewResult(f())
	}()
	return fut
}

// Run is like Go for calls that cannot fail.
func Run[T any](f func() T) *Future[T] {
	return Go(func() (T, error) {
		return f(), nil
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call completes.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result.Unpack()
}

// Result blocks until the call completes and returns it as a generic.Result.
func (f *Future[T]) Result() generic.Result[T] {
	<-f.done
	return f.result
}

// Then invokes cb once with the result, on a separate goroutine.
func (f *Future[T]) Then(cb func(T, error)) {
	go func() {
		<-f.done
		cb(f.result.Value, f.result.Error)
	}()
}
