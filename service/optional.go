package service

import (
	"context"
	"errors"
)

// ErrNone is returned by an Optional with no inner service.
var ErrNone = errors.New("service: no inner service")

// Optional forwards requests to an inner service that may be absent.
//
// An absent inner service is always ready and fails every call with ErrNone,
// which lets callers wire an optional dependency without branching at every
// call site.
type Optional[Req, Resp any] struct {
	inner Service[Req, Resp]
}

// Some returns an Optional that forwards to inner.
func Some[Req, Resp any](inner Service[Req, Resp]) *Optional[Req, Resp] {
	return &Optional[Req, Resp]{inner: inner}
}

// None returns an Optional with no inner service.
func None[Req, Resp any]() *Optional[Req, Resp] {
	return &Optional[Req, Resp]{}
}

// Ready forwards to the inner service. An absent service is always ready.
func (o *Optional[Req, Resp]) Ready(ctx context.Context) error {
	if o.inner == nil {
		return nil
	}
	return o.inner.Ready(ctx)
}

// Call forwards to the inner service, or fails with ErrNone.
func (o *Optional[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	if o.inner == nil {
		var zero Resp
		return zero, ErrNone
	}
	return o.inner.Call(ctx, req)
}
