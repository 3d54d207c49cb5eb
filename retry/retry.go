package retry

import (
	"context"

	"github.com/jonwraymond/servicekit/service"
)

// Policy decides whether a completed call should be retried.
//
// Retry inspects the request and its result. A (nil, nil) return declines;
// a (policy, nil) return approves and supplies the replacement policy value
// for the next attempt; a non-nil error means the decision itself failed, in
// which case the engine keeps the original result. Retry may block (a delay
// schedule, a remote budget check) and must honor ctx.
//
// CloneRequest produces a cheap duplicate of the request so it can be
// replayed. Returning false marks the request non-retryable, for request
// types that are consumed by a call (a one-shot body).
type Policy[Req, Resp any] interface {
	Retry(ctx context.Context, req Req, resp Resp, err error) (Policy[Req, Resp], error)
	CloneRequest(req Req) (Req, bool)
}

// Retry replays failed (or, at the policy's discretion, any) calls against
// an inner service.
//
// The engine's stored policy seeds a per-call policy line; a call never
// mutates the engine, so one Retry value is as safe for concurrent use as
// its inner service.
type Retry[Req, Resp any] struct {
	policy Policy[Req, Resp]
	inner  service.Service[Req, Resp]
}

// New creates a retrying wrapper around inner.
func New[Req, Resp any](policy Policy[Req, Resp], inner service.Service[Req, Resp]) *Retry[Req, Resp] {
	return &Retry[Req, Resp]{
		policy: policy,
		inner:  inner,
	}
}

// Ready forwards to the inner service.
func (r *Retry[Req, Resp]) Ready(ctx context.Context) error {
	return r.inner.Ready(ctx)
}

// Call dispatches the request, replaying it for as long as the policy
// approves and the request can be re-cloned.
//
// The request is cloned before the first dispatch so the original can be
// consumed by the call. Before each replay the inner service must report
// ready again; a readiness error becomes the final result. When retrying
// stops — by decline, decision failure, or an unclonable request — the last
// completed inner result is returned unmodified.
func (r *Retry[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	policy := r.policy
	cloned, retryable := policy.CloneRequest(req)

	resp, err := r.inner.Call(ctx, req)

	for retryable {
		next, decisionErr := policy.Retry(ctx, cloned, resp, err)
		if decisionErr != nil || next == nil {
			break
		}
		policy = next

		if readyErr := r.inner.Ready(ctx); readyErr != nil {
			var zero Resp
			return zero, readyErr
		}

		req = cloned
		cloned, retryable = policy.CloneRequest(req)
		resp, err = r.inner.Call(ctx, req)
	}

	return resp, err
}
