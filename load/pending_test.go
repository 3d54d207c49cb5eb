package load

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/servicekit/service"
)

func TestPendingRequests_CountsInFlight(t *testing.T) {
	started := make(chan struct{}, 1)
	proceed := make(chan struct{})
	inner := service.Func[string, string](func(ctx context.Context, req string) (string, error) {
		started <- struct{}{}
		<-proceed
		return req, nil
	})
	p := NewPendingRequests(inner)

	if got := p.Load(); got != 0 {
		t.Fatalf("Load() = %d, want 0", got)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Call(context.Background(), "x")
	}()
	<-started

	if got := p.Load(); got != 1 {
		t.Errorf("Load() with call in flight = %d, want 1", got)
	}

	close(proceed)
	<-done

	if got := p.Load(); got != 0 {
		t.Errorf("Load() after completion = %d, want 0", got)
	}
}

func TestPendingRequests_CountsDownOnError(t *testing.T) {
	inner := service.Func[string, string](func(ctx context.Context, req string) (string, error) {
		return "", errors.New("boom")
	})
	p := NewPendingRequests(inner)

	_, _ = p.Call(context.Background(), "x")
	if got := p.Load(); got != 0 {
		t.Errorf("Load() after failed call = %d, want 0", got)
	}
}
