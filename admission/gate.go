package admission

import (
	"context"
	"sync/atomic"

	"github.com/jonwraymond/servicekit/service"
)

// Predicate decides whether a request may be dispatched to the inner service.
// A nil return admits the request; any error rejects it.
type Predicate[Req any] interface {
	Check(ctx context.Context, req Req) error
}

// PredicateFunc adapts a plain function to a Predicate.
type PredicateFunc[Req any] func(ctx context.Context, req Req) error

// Check invokes the function.
func (f PredicateFunc[Req]) Check(ctx context.Context, req Req) error {
	return f(ctx, req)
}

// counts is the admission state shared by every caller of a Gate: the number
// of free slots and the single waiter registration. rem is never negative.
type counts struct {
	rem      atomic.Int64
	waiter   atomic.Value // chan struct{}, buffered 1
	rejected atomic.Int64
}

// acquire takes one slot, or reports false if none is free. The decrement is
// a CAS loop so rem cannot be driven below zero by racing callers.
func (c *counts) acquire() bool {
	for {
		rem := c.rem.Load()
		if rem == 0 {
			return false
		}
		if c.rem.CompareAndSwap(rem, rem-1) {
			return true
		}
	}
}

// release returns one slot. On the zero-to-one transition the registered
// waiter, if any, is woken. The send is non-blocking: the waiter channel is
// buffered and a pending wake-up is as good as two.
func (c *counts) release() {
	if c.rem.Add(1) == 1 {
		if w, ok := c.waiter.Load().(chan struct{}); ok {
			select {
			case w <- struct{}{}:
			default:
			}
		}
	}
}

// Gate wraps an inner service with a fixed number of admission slots and a
// request predicate. See the package documentation for the admission
// contract and the single-waiter limitation.
type Gate[Req, Resp any] struct {
	inner     service.Service[Req, Resp]
	predicate Predicate[Req]
	buffer    int64
	counts    *counts
}

// NewGate creates a Gate admitting at most buffer concurrent requests.
// A buffer of zero or less defaults to 1.
func NewGate[Req, Resp any](inner service.Service[Req, Resp], predicate Predicate[Req], buffer int) *Gate[Req, Resp] {
	if buffer <= 0 {
		buffer = 1
	}
	c := &counts{}
	c.rem.Store(int64(buffer))
	return &Gate[Req, Resp]{
		inner:     inner,
		predicate: predicate,
		buffer:    int64(buffer),
		counts:    c,
	}
}

// Ready blocks until a slot is free or the context expires.
//
// The caller is registered as the current waiter before the counter is
// checked, so a release racing with the check cannot be lost. Readiness is a
// snapshot: a concurrent caller may still win the slot, in which case Call
// fails with ErrNoCapacity.
func (g *Gate[Req, Resp]) Ready(ctx context.Context) error {
	for {
		wake := make(chan struct{}, 1)
		g.counts.waiter.Store(wake)

		if g.counts.rem.Load() > 0 {
			return nil
		}

		select {
		case <-wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Call admits and dispatches one request.
//
// The capacity re-check and decrement are atomic; losing the race to another
// caller yields ErrNoCapacity rather than a panic. Once a slot is taken its
// release is deferred, so the slot is returned exactly once on every exit
// path: predicate rejection, inner readiness failure, inner call completion,
// or abandonment via context cancellation.
func (g *Gate[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	if !g.counts.acquire() {
		g.counts.rejected.Add(1)
		return zero, ErrNoCapacity
	}
	defer g.counts.release()

	if err := g.predicate.Check(ctx, req); err != nil {
		return zero, &RejectedError{Err: err}
	}

	if err := g.inner.Ready(ctx); err != nil {
		return zero, err
	}
	return g.inner.Call(ctx, req)
}

// Metrics returns a snapshot of the gate's admission counters.
func (g *Gate[Req, Resp]) Metrics() GateMetrics {
	rem := g.counts.rem.Load()
	return GateMetrics{
		Capacity:  int(g.buffer),
		Remaining: int(rem),
		InFlight:  int(g.buffer - rem),
		Rejected:  g.counts.rejected.Load(),
	}
}

// GateMetrics contains admission statistics.
type GateMetrics struct {
	Capacity  int
	Remaining int
	InFlight  int
	Rejected  int64
}
