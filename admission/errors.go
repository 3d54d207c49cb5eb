package admission

import "errors"

// ErrNoCapacity is returned by Call when no admission slot is free.
var ErrNoCapacity = errors.New("admission: no capacity")

// RejectedError is returned by Call when the predicate refuses a request.
// It wraps the predicate's error.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string {
	return "admission: request rejected: " + e.Err.Error()
}

func (e *RejectedError) Unwrap() error { return e.Err }
