package service

import "context"

// Service is an asynchronous request/response capability.
//
// Contract:
//   - Readiness: callers must observe a nil return from Ready before each
//     Call. A ready observation grants exactly one call; it is not durable.
//   - Errors: Call returns the service's own error type unchanged.
//     Implementations fail fast on contract violations rather than panic.
//   - Concurrency: unless a concrete type documents otherwise, a Service
//     value must not be driven by more than one caller at a time.
type Service[Req, Resp any] interface {
	// Ready blocks until the service can accept one call, the context
	// expires, or the service fails.
	Ready(ctx context.Context) error

	// Call dispatches a single request and returns its response or error.
	Call(ctx context.Context, req Req) (Resp, error)
}

// Factory produces fresh service instances. Establishing a service may
// itself be asynchronous (a discovery lookup, a dial), so New accepts a
// context and may block.
type Factory[Req, Resp any] interface {
	New(ctx context.Context) (Service[Req, Resp], error)
}

// Func adapts a plain function to a Service that is always ready.
type Func[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Ready reports ready immediately.
func (f Func[Req, Resp]) Ready(_ context.Context) error { return nil }

// Call invokes the function.
func (f Func[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// FactoryFunc adapts a plain function to a Factory.
type FactoryFunc[Req, Resp any] func(ctx context.Context) (Service[Req, Resp], error)

// New invokes the function.
func (f FactoryFunc[Req, Resp]) New(ctx context.Context) (Service[Req, Resp], error) {
	return f(ctx)
}
