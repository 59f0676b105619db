// Package generic provides small optional and result containers shared by the
// provider, media and async packages.
package generic

import (
	"bytes"
	"encoding/json"
)

// Option holds either a value (Some) or nothing (None). The zero value is None.
//
// On the wire None is JSON null, and an absent field decodes to None.
type Option[T any] struct {
	value    T
	hasValue bool
}

// Some constructs an Option[T] that has a value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, hasValue: true}
}

// None constructs an Option[T] that does not have a value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if this Option[T] has a value.
func (o Option[T]) IsSome() bool {
	return o.hasValue
}

// IsNone returns true if this Option[T] does not have a value.
func (o Option[T]) IsNone() bool {
	return !o.hasValue
}

// Get returns the contained value and whether there was one.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.hasValue
}

// Unwrap returns the contained value, or panics if there is no value.
func (o Option[T]) Unwrap() T {
	if !o.hasValue {
		panic("tried to Unwrap() a None")
	}
	return o.value
}

// UnwrapOr returns the contained value, or other if there is no value.
func (o Option[T]) UnwrapOr(other T) T {
	if o.hasValue {
		return o.value
	}
	return other
}

// OkOr transforms the Option[T] into a Result[T] with the contained value, or err if there is no value.
func (o Option[T]) OkOr(err error) Result[T] {
	if o.hasValue {
		return Ok(o.value)
	}
	return Err[T](err)
}

// Map applies f to the contained value, if any.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.hasValue {
		return None[U]()
	}
	return Some(f(o.value))
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.hasValue {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if IsNull(data) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// IsNull reports whether a raw JSON value is the literal null.
func IsNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
