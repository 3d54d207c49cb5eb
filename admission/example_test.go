package admission_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/servicekit/admission"
	"github.com/jonwraymond/servicekit/service"
)

func ExampleNewGate() {
	upstream := service.Func[string, string](func(ctx context.Context, req string) (string, error) {
		return "ok: " + req, nil
	})

	pred := admission.PredicateFunc[string](func(ctx context.Context, req string) error {
		if len(req) > 64 {
			return errors.New("request too large")
		}
		return nil
	})

	gate := admission.NewGate(upstream, pred, 8)

	ctx := context.Background()
	if err := gate.Ready(ctx); err != nil {
		fmt.Println("not ready:", err)
		return
	}
	resp, err := gate.Call(ctx, "ping")
	if err != nil {
		fmt.Println("call failed:", err)
		return
	}
	fmt.Println(resp)
	// Output:
	// ok: ping
}

func ExampleGate_Metrics() {
	upstream := service.Func[string, string](func(ctx context.Context, req string) (string, error) {
		return req, nil
	})
	gate := admission.NewGate(upstream, admission.PredicateFunc[string](func(ctx context.Context, req string) error {
		return nil
	}), 4)

	_, _ = gate.Call(context.Background(), "one")

	m := gate.Metrics()
	fmt.Println("capacity:", m.Capacity)
	fmt.Println("remaining:", m.Remaining)
	// Output:
	// capacity: 4
	// remaining: 4
}
