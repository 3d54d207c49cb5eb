package reconnect

import "errors"

// ErrNotReady is returned by Call when the manager is not connected. It
// indicates the caller skipped the readiness check or raced a reconnection.
var ErrNotReady = errors.New("reconnect: not ready")

// ConnectError is returned by Ready when establishing the underlying service
// fails. It wraps the factory's error.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return "reconnect: connection failed: " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error { return e.Err }
