package reconnect

import (
	"context"

	"github.com/jonwraymond/servicekit/service"
)

// State represents the connection lifecycle state.
type State int

const (
	// StateIdle means no connection exists and none is being established.
	StateIdle State = iota
	// StateConnecting means a connection attempt is in progress.
	StateConnecting
	// StateConnected means a live service is held.
	StateConnected
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Reconnect lazily establishes and re-establishes an underlying service.
//
// Exactly one lifecycle state is held at a time, and only Ready transitions
// it. Not safe for concurrent use; see the package documentation.
type Reconnect[Req, Resp any] struct {
	factory service.Factory[Req, Resp]
	state   State
	svc     service.Service[Req, Resp]
}

// New creates a Reconnect that dials with factory on first use.
func New[Req, Resp any](factory service.Factory[Req, Resp]) *Reconnect[Req, Resp] {
	return &Reconnect[Req, Resp]{
		factory: factory,
		state:   StateIdle,
	}
}

// Ready drives the lifecycle until the underlying service is ready.
//
// From Idle a connection attempt starts immediately. A failed attempt
// reverts to Idle and surfaces a *ConnectError, so the next Ready dials
// afresh. A connected service that fails its readiness check is dropped and
// redialed in the same Ready call; the stale connection's error is not
// surfaced.
func (r *Reconnect[Req, Resp]) Ready(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch r.state {
		case StateIdle:
			r.state = StateConnecting

		case StateConnecting:
			svc, err := r.factory.New(ctx)
			if err != nil {
				r.state = StateIdle
				return &ConnectError{Err: err}
			}
			r.svc = svc
			r.state = StateConnected

		case StateConnected:
			err := r.svc.Ready(ctx)
			if err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return err
			}
			// Stale connection: drop it and reconnect.
			r.svc = nil
			r.state = StateIdle
		}
	}
}

// Call dispatches a request on the connected service.
//
// Calling while not connected violates the readiness contract and fails with
// ErrNotReady rather than panicking. Inner errors propagate unchanged; the
// next Ready observes the failure, if any, via the service's readiness check.
func (r *Reconnect[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	if r.state != StateConnected {
		var zero Resp
		return zero, ErrNotReady
	}
	return r.svc.Call(ctx, req)
}

// State returns the current lifecycle state.
func (r *Reconnect[Req, Resp]) State() State {
	return r.state
}
