package service

import (
	"context"
	"errors"
	"testing"
)

func TestOptional_Some(t *testing.T) {
	inner := Func[int, int](func(ctx context.Context, req int) (int, error) {
		return req * 2, nil
	})
	opt := Some[int, int](inner)

	if err := opt.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}

	resp, err := opt.Call(context.Background(), 21)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if resp != 42 {
		t.Errorf("Call() = %d, want 42", resp)
	}
}

func TestOptional_None(t *testing.T) {
	opt := None[int, int]()

	// Absent services are always ready.
	if err := opt.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}

	_, err := opt.Call(context.Background(), 1)
	if !errors.Is(err, ErrNone) {
		t.Errorf("Call() error = %v, want ErrNone", err)
	}
}
