package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/servicekit/service"
)

func echo() service.Service[string, string] {
	return service.Func[string, string](func(ctx context.Context, req string) (string, error) {
		return req, nil
	})
}

func TestNew_Defaults(t *testing.T) {
	l := New(echo(), Config{})

	if l.config.Rate != 100 {
		t.Errorf("Rate = %f, want 100", l.config.Rate)
	}
	if l.config.Burst != 10 {
		t.Errorf("Burst = %d, want 10", l.config.Burst)
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := New(echo(), Config{Rate: 1, Burst: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := l.Call(ctx, "x"); err != nil {
			t.Fatalf("Call %d error = %v", i, err)
		}
	}
}

func TestLimiter_FailsFastWhenExhausted(t *testing.T) {
	l := New(echo(), Config{Rate: 0.001, Burst: 1})
	ctx := context.Background()

	if _, err := l.Call(ctx, "x"); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	_, err := l.Call(ctx, "y")
	if !errors.Is(err, ErrLimited) {
		t.Errorf("Call() error = %v, want ErrLimited", err)
	}
}

func TestLimiter_WaitOnLimit(t *testing.T) {
	l := New(echo(), Config{Rate: 50, Burst: 1, WaitOnLimit: true})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := l.Call(ctx, "x"); err != nil {
			t.Fatalf("Call %d error = %v", i, err)
		}
	}
	// Two of the three calls must have waited for the 50/s refill.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("3 calls at 50/s took %v, want >= 30ms", elapsed)
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := New(echo(), Config{Rate: 0.001, Burst: 1, WaitOnLimit: true})
	ctx := context.Background()

	if _, err := l.Call(ctx, "x"); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	timed, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err := l.Call(timed, "y")
	if err == nil {
		t.Error("Call() succeeded, want context expiry while waiting for a token")
	}
}
