package timeout

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/servicekit/service"
)

// ErrTimeout is returned by Call when the deadline fires.
var ErrTimeout = errors.New("timeout: call timed out")

// Timeout bounds the duration of each call to an inner service.
type Timeout[Req, Resp any] struct {
	inner service.Service[Req, Resp]
	limit time.Duration
}

// New creates a timeout wrapper around inner. A limit of zero or less
// defaults to 30 seconds.
func New[Req, Resp any](inner service.Service[Req, Resp], limit time.Duration) *Timeout[Req, Resp] {
	if limit <= 0 {
		limit = 30 * time.Second
	}
	return &Timeout[Req, Resp]{inner: inner, limit: limit}
}

// Ready forwards to the inner service.
func (t *Timeout[Req, Resp]) Ready(ctx context.Context) error {
	return t.inner.Ready(ctx)
}

// Call dispatches the request under a deadline. When the deadline fires the
// inner call's context is canceled and ErrTimeout is returned.
func (t *Timeout[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	resp, err := t.inner.Call(ctx, req)
	if err != nil && ctx.Err() == context.DeadlineExceeded && errors.Is(err, context.DeadlineExceeded) {
		var zero Resp
		return zero, ErrTimeout
	}
	return resp, err
}
