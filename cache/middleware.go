package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/jonwraymond/servicekit/service"
)

// SkipRule determines whether to bypass the cache for a given request.
// Returns true if caching should be skipped.
type SkipRule[Req any] func(req Req) bool

// Middleware serves cached responses for repeated requests without
// dispatching to the inner service. Responses are stored as JSON, so the
// response type must round-trip through encoding/json. Errors are never
// cached.
type Middleware[Req, Resp any] struct {
	inner     service.Service[Req, Resp]
	serviceID string
	cache     Cache
	keyer     Keyer
	policy    Policy
	skip      SkipRule[Req]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMiddleware creates a caching wrapper around inner. A nil keyer defaults
// to DefaultKeyer; a nil skip rule caches every request.
func NewMiddleware[Req, Resp any](inner service.Service[Req, Resp], serviceID string, store Cache, keyer Keyer, policy Policy, skip SkipRule[Req]) (*Middleware[Req, Resp], error) {
	if store == nil {
		return nil, ErrNilCache
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &Middleware[Req, Resp]{
		inner:     inner,
		serviceID: serviceID,
		cache:     store,
		keyer:     keyer,
		policy:    policy,
		skip:      skip,
	}, nil
}

// Ready forwards to the inner service.
func (m *Middleware[Req, Resp]) Ready(ctx context.Context) error {
	return m.inner.Ready(ctx)
}

// Call serves the response from cache when possible. On a miss the request
// is dispatched to the inner service and a successful response is stored
// under the policy's TTL.
func (m *Middleware[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	if (m.skip != nil && m.skip(req)) || !m.policy.ShouldCache() {
		return m.inner.Call(ctx, req)
	}

	key, err := m.keyer.Key(m.serviceID, req)
	if err != nil {
		// Key derivation failed - dispatch without caching
		return m.inner.Call(ctx, req)
	}

	if data, ok := m.cache.Get(ctx, key); ok {
		var resp Resp
		if err := json.Unmarshal(data, &resp); err == nil {
			m.hits.Add(1)
			return resp, nil
		}
		// Undecodable entry - drop it and fall through to the inner call
		_ = m.cache.Delete(ctx, key)
	}
	m.misses.Add(1)

	resp, err := m.inner.Call(ctx, req)
	if err != nil {
		return resp, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = m.cache.Set(ctx, key, data, m.policy.EffectiveTTL(0))
	}
	return resp, nil
}

// MiddlewareMetrics is a snapshot of cache effectiveness counters.
type MiddlewareMetrics struct {
	Hits   int64
	Misses int64
}

// Metrics returns a snapshot of hit and miss counts.
func (m *Middleware[Req, Resp]) Metrics() MiddlewareMetrics {
	return MiddlewareMetrics{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
	}
}
