package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jonwraymond/servicekit/service"
)

func TestNewAttempts_Defaults(t *testing.T) {
	p := NewAttempts[string, string](AttemptsConfig[string, string]{})

	if p.remaining != 2 {
		t.Errorf("remaining = %d, want 2", p.remaining)
	}
	if p.config.RetryIf == nil {
		t.Error("RetryIf default not applied")
	}
}

func TestAttempts_LimitsRetries(t *testing.T) {
	failure := errors.New("boom")
	svc := &scriptedService{results: []result{{err: failure}}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{Max: 2})
	r := New[string, string](p, svc)

	_, err := r.Call(context.Background(), "req")
	if err != failure {
		t.Fatalf("Call() error = %v, want the inner failure", err)
	}
	if svc.calls != 3 {
		t.Errorf("inner calls = %d, want 3", svc.calls)
	}
}

func TestAttempts_RetryIf(t *testing.T) {
	permanent := errors.New("permanent")
	svc := &scriptedService{results: []result{{err: permanent}}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{
		Max: 5,
		RetryIf: func(_ string, err error) bool {
			return err != nil && !errors.Is(err, permanent)
		},
	})
	r := New[string, string](p, svc)

	_, err := r.Call(context.Background(), "req")
	if err != permanent {
		t.Fatalf("Call() error = %v, want the permanent failure", err)
	}
	if svc.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (permanent errors are not retried)", svc.calls)
	}
}

func TestAttempts_NonClonableRequest(t *testing.T) {
	failure := errors.New("boom")
	svc := &scriptedService{results: []result{{err: failure}}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{
		Max:   5,
		Clone: func(req string) (string, bool) { return "", false },
	})
	r := New[string, string](p, svc)

	_, _ = r.Call(context.Background(), "req")
	if svc.calls != 1 {
		t.Errorf("inner calls = %d, want 1", svc.calls)
	}
}

func TestAttempts_BackoffStopDeclines(t *testing.T) {
	failure := errors.New("boom")
	svc := &scriptedService{results: []result{{err: failure}}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{
		Max:        5,
		NewBackOff: func() backoff.BackOff { return stopBackOff{} },
	})
	r := New[string, string](p, svc)

	_, _ = r.Call(context.Background(), "req")
	if svc.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (schedule said stop)", svc.calls)
	}
}

func TestAttempts_ContextExpiryDuringDelay(t *testing.T) {
	failure := errors.New("boom")
	svc := &scriptedService{results: []result{{err: failure}}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{
		Max: 5,
		NewBackOff: func() backoff.BackOff {
			return fixedBackOff{delay: time.Minute}
		},
	})
	r := New[string, string](p, svc)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// The delay outlives the context; the decision fails and the engine
	// keeps the original failure.
	_, err := r.Call(ctx, "req")
	if err != failure {
		t.Fatalf("Call() error = %v, want the original failure", err)
	}
	if svc.calls != 1 {
		t.Errorf("inner calls = %d, want 1", svc.calls)
	}
}

func TestAttempts_WithExponentialBackoff(t *testing.T) {
	failure := errors.New("boom")
	svc := &scriptedService{results: []result{
		{err: failure},
		{resp: "recovered"},
	}}
	p := NewAttempts[string, string](AttemptsConfig[string, string]{
		Max: 3,
		NewBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = time.Millisecond
			return bo
		},
	})
	r := New[string, string](p, svc)

	resp, err := r.Call(context.Background(), "req")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if resp != "recovered" {
		t.Errorf("Call() = %q, want %q", resp, "recovered")
	}
}

// stopBackOff declines immediately.
type stopBackOff struct{}

func (stopBackOff) NextBackOff() time.Duration { return backoff.Stop }
func (stopBackOff) Reset()                     {}

// fixedBackOff always waits the same delay.
type fixedBackOff struct{ delay time.Duration }

func (b fixedBackOff) NextBackOff() time.Duration { return b.delay }
func (fixedBackOff) Reset()                       {}

var _ service.Service[string, string] = (*scriptedService)(nil)
