package generic

// Result pairs a value with the error produced alongside it.
type Result[T any] struct {
	Value T
	Error error
}

// NewResult wraps a (T, error) return value from another function call as a Result[T].
func NewResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Error: err}
}

// Ok wraps a value as a Result[T] containing that value.
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Err wraps an error as a Result[T] containing that error.
func Err[T any](err error) Result[T] {
	return Result[T]{Error: err}
}

func (r Result[T]) IsOk() bool {
	return r.Error == nil
}

func (r Result[T]) IsErr() bool {
	return r.Error != nil
}

// Ok transforms the Result[T] into an Option[T], dropping the error.
func (r Result[T]) Ok() Option[T] {
	if r.IsOk() {
		return Some(r.Value)
	}
	return None[T]()
}

// Unpack returns the value and error as a regular Go return pair.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Error
}
