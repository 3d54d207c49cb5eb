package discover

import "errors"

// ErrClosed is returned by Poll once a feed has ended and no further
// changes will be yielded.
var ErrClosed = errors.New("discover: feed closed")

// WatchError is returned by Poll when the underlying watch fails. It wraps
// the transport's error and is distinct from any per-service error.
type WatchError struct {
	Err error
}

func (e *WatchError) Error() string {
	return "discover: watch failed: " + e.Err.Error()
}

func (e *WatchError) Unwrap() error { return e.Err }
