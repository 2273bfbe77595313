// Package result provides a small generic success-or-error container used by
// the aggregation layer to carry per-provider outcomes through channels
// without losing which provider failed and why.
package result

import "fmt"

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure. A nil err is treated as an unknown failure so the
// invariant "IsErr implies a non-nil error" holds.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("result: error constructed from nil")
	}
	return Result[T]{err: err}
}

// Of converts a conventional (value, error) pair.
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Unwrap returns the value and error in conventional form.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// UnwrapOr returns the value, or fallback on error.
func (r Result[T]) UnwrapOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Error returns the held error, nil on success.
func (r Result[T]) Error() error { return r.err }

// Map transforms a success value, passing errors through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// MapErr transforms the error of a failed result, passing successes through.
func MapErr[T any](r Result[T], fn func(error) error) Result[T] {
	if r.err == nil {
		return r
	}
	return Err[T](fn(r.err))
}

// AndThen chains a fallible transformation on success.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// OrElse recovers from a failure with an alternative result.
func OrElse[T any](r Result[T], fn func(error) Result[T]) Result[T] {
	if r.err == nil {
		return r
	}
	return fn(r.err)
}

// Partition splits results into success values and errors, preserving order.
func Partition[T any](results []Result[T]) (values []T, errs []error) {
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		values = append(values, r.value)
	}
	return values, errs
}

// Collect returns all values if every result succeeded, or the first error.
func Collect[T any](results []Result[T]) ([]T, error) {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		values = append(values, r.value)
	}
	return values, nil
}
