package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// AttemptsConfig configures the Attempts policy.
type AttemptsConfig[Req, Resp any] struct {
	// Max is the maximum number of retries beyond the first call.
	// Default: 2
	Max int

	// RetryIf classifies a completed result as retryable.
	// Default: all non-nil errors are retryable.
	RetryIf func(resp Resp, err error) bool

	// Clone duplicates a request for replay. Returning false marks the
	// request non-retryable.
	// Default: the request value is copied as-is.
	Clone func(req Req) (Req, bool)

	// NewBackOff supplies a delay schedule for one call's retry sequence.
	// The schedule's Stop value declines further retries early.
	// Default: nil (retry immediately).
	NewBackOff func() backoff.BackOff
}

// Attempts is a count-limited retry policy with an optional backoff delay
// schedule.
//
// Each approved retry yields a fresh policy value carrying the decremented
// count and the advanced schedule; the value a decision was made on is never
// mutated, so an engine-held Attempts can seed any number of concurrent call
// lines.
type Attempts[Req, Resp any] struct {
	config    AttemptsConfig[Req, Resp]
	remaining int
	schedule  backoff.BackOff
}

// NewAttempts creates an Attempts policy.
func NewAttempts[Req, Resp any](config AttemptsConfig[Req, Resp]) *Attempts[Req, Resp] {
	if config.Max <= 0 {
		config.Max = 2
	}
	if config.RetryIf == nil {
		config.RetryIf = func(_ Resp, err error) bool { return err != nil }
	}
	return &Attempts[Req, Resp]{
		config:    config,
		remaining: config.Max,
	}
}

// Retry approves a replay while retries remain and the result is classified
// retryable, waiting out the schedule's next delay first. A context expiry
// during the delay fails the decision, which the engine absorbs by keeping
// the original result.
func (p *Attempts[Req, Resp]) Retry(ctx context.Context, _ Req, resp Resp, err error) (Policy[Req, Resp], error) {
	if p.remaining <= 0 || !p.config.RetryIf(resp, err) {
		return nil, nil
	}

	schedule := p.schedule
	if schedule == nil && p.config.NewBackOff != nil {
		schedule = p.config.NewBackOff()
	}
	if schedule != nil {
		delay := schedule.NextBackOff()
		if delay == backoff.Stop {
			return nil, nil
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return &Attempts[Req, Resp]{
		config:    p.config,
		remaining: p.remaining - 1,
		schedule:  schedule,
	}, nil
}

// CloneRequest duplicates the request via the configured Clone hook, or by
// value copy when none is set.
func (p *Attempts[Req, Resp]) CloneRequest(req Req) (Req, bool) {
	if p.config.Clone != nil {
		return p.config.Clone(req)
	}
	return req, true
}

var _ Policy[string, string] = (*Attempts[string, string])(nil)
