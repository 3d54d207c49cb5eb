package ratelimit

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/jonwraymond/servicekit/service"
)

// ErrLimited is returned by Call when the rate limit is exceeded and
// waiting is disabled.
var ErrLimited = errors.New("ratelimit: rate limit exceeded")

// Config configures the limiter.
type Config struct {
	// Rate is the number of calls allowed per second.
	// Default: 100
	Rate float64

	// Burst is the maximum burst size.
	// Default: 10
	Burst int

	// WaitOnLimit waits for a token instead of failing with ErrLimited.
	// Default: false
	WaitOnLimit bool
}

// Limiter rate-limits calls to an inner service.
type Limiter[Req, Resp any] struct {
	inner   service.Service[Req, Resp]
	config  Config
	limiter *rate.Limiter
}

// New creates a rate limiting wrapper around inner.
func New[Req, Resp any](inner service.Service[Req, Resp], config Config) *Limiter[Req, Resp] {
	if config.Rate <= 0 {
		config.Rate = 100
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	return &Limiter[Req, Resp]{
		inner:   inner,
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.Rate), config.Burst),
	}
}

// Ready forwards to the inner service.
func (l *Limiter[Req, Resp]) Ready(ctx context.Context) error {
	return l.inner.Ready(ctx)
}

// Call takes a token and dispatches the request. An empty bucket fails with
// ErrLimited, or blocks for the next token when WaitOnLimit is set.
func (l *Limiter[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	var zero Resp
	if l.config.WaitOnLimit {
		if err := l.limiter.Wait(ctx); err != nil {
			return zero, err
		}
	} else if !l.limiter.Allow() {
		return zero, ErrLimited
	}
	return l.inner.Call(ctx, req)
}

// Tokens returns the number of tokens currently available.
func (l *Limiter[Req, Resp]) Tokens() float64 {
	return l.limiter.Tokens()
}
