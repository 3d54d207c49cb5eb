package load

import (
	"context"
	"sync/atomic"

	"github.com/jonwraymond/servicekit/service"
)

// PendingRequests measures a service's load as its number of in-flight
// calls. The count rises when a call is dispatched and falls when it
// completes, on every path.
type PendingRequests[Req, Resp any] struct {
	inner   service.Service[Req, Resp]
	pending atomic.Int64
}

// NewPendingRequests wraps inner with in-flight call counting.
func NewPendingRequests[Req, Resp any](inner service.Service[Req, Resp]) *PendingRequests[Req, Resp] {
	return &PendingRequests[Req, Resp]{inner: inner}
}

// Load returns the current number of in-flight calls.
func (p *PendingRequests[Req, Resp]) Load() int64 {
	return p.pending.Load()
}

// Ready forwards to the inner service.
func (p *PendingRequests[Req, Resp]) Ready(ctx context.Context) error {
	return p.inner.Ready(ctx)
}

// Call forwards to the inner service, counting the call as pending until it
// completes.
func (p *PendingRequests[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	p.pending.Add(1)
	defer p.pending.Add(-1)
	return p.inner.Call(ctx, req)
}
