package load

import (
	"cmp"
	"context"

	"github.com/jonwraymond/servicekit/discover"
	"github.com/jonwraymond/servicekit/service"
)

// Constant annotates a service with a fixed load metric, for services whose
// cost is uniform or unknown. Ready and Call forward untouched.
type Constant[Req, Resp any, M cmp.Ordered] struct {
	inner  service.Service[Req, Resp]
	metric M
}

// NewConstant wraps inner with a fixed metric.
func NewConstant[Req, Resp any, M cmp.Ordered](inner service.Service[Req, Resp], metric M) *Constant[Req, Resp, M] {
	return &Constant[Req, Resp, M]{inner: inner, metric: metric}
}

// Load returns the fixed metric.
func (c *Constant[Req, Resp, M]) Load() M { return c.metric }

// Ready forwards to the inner service.
func (c *Constant[Req, Resp, M]) Ready(ctx context.Context) error {
	return c.inner.Ready(ctx)
}

// Call forwards to the inner service.
func (c *Constant[Req, Resp, M]) Call(ctx context.Context, req Req) (Resp, error) {
	return c.inner.Call(ctx, req)
}

// ConstantDiscover proxies a discovery feed so every inserted service is
// annotated with the same constant metric. Removals pass through.
type ConstantDiscover[K comparable, Req, Resp any, M cmp.Ordered] struct {
	inner  discover.Discover[K, service.Service[Req, Resp]]
	metric M
}

// NewConstantDiscover wraps a discovery feed with a constant metric.
func NewConstantDiscover[K comparable, Req, Resp any, M cmp.Ordered](
	inner discover.Discover[K, service.Service[Req, Resp]],
	metric M,
) *ConstantDiscover[K, Req, Resp, M] {
	return &ConstantDiscover[K, Req, Resp, M]{inner: inner, metric: metric}
}

// Poll yields the next change with insertions wrapped in a Constant.
func (d *ConstantDiscover[K, Req, Resp, M]) Poll(ctx context.Context) (discover.Change[K, *Constant[Req, Resp, M]], error) {
	change, err := d.inner.Poll(ctx)
	if err != nil {
		return discover.Change[K, *Constant[Req, Resp, M]]{}, err
	}

	out := discover.Change[K, *Constant[Req, Resp, M]]{Op: change.Op, Key: change.Key}
	if change.Op == discover.Insert {
		out.Service = NewConstant(change.Service, d.metric)
	}
	return out, nil
}
