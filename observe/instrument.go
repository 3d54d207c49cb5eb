package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/servicekit/service"
)

// Instrument wraps a service with tracing, metrics, and logging around every
// call. Readiness checks pass through untouched; only dispatched calls are
// recorded.
//
// Contract:
//   - Concurrency: safe for concurrent use when the inner service is.
//   - Context: the span context is propagated into the inner call.
//   - Errors: errors from the inner service are recorded and propagated
//     unchanged.
type Instrument[Req, Resp any] struct {
	inner   service.Service[Req, Resp]
	meta    Meta
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates an instrumented wrapper around inner. Nil telemetry
// components default to no-ops.
func NewInstrument[Req, Resp any](inner service.Service[Req, Resp], meta Meta, tracer Tracer, metrics Metrics, logger Logger) (*Instrument[Req, Resp], error) {
	if meta.Name == "" {
		return nil, ErrMissingName
	}
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Instrument[Req, Resp]{
		inner:   inner,
		meta:    meta,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.WithService(meta),
	}, nil
}

// FromObserver creates an instrumented wrapper using an Observer's telemetry
// components. This is the common wiring path.
func FromObserver[Req, Resp any](inner service.Service[Req, Resp], meta Meta, obs Observer) (*Instrument[Req, Resp], error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(inner, meta, newTracer(obs.Tracer()), metrics, obs.Logger())
}

// Ready forwards to the inner service.
func (i *Instrument[Req, Resp]) Ready(ctx context.Context) error {
	return i.inner.Ready(ctx)
}

// Call dispatches the request inside a span and records duration, outcome,
// and a structured log line.
func (i *Instrument[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	ctx, span := i.tracer.StartSpan(ctx, i.meta)
	start := time.Now()

	resp, err := i.inner.Call(ctx, req)

	duration := time.Since(start)
	i.tracer.EndSpan(span, err)
	i.metrics.RecordCall(ctx, i.meta, duration, err)

	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		i.logger.Error(ctx, "service call failed", fields...)
	} else {
		i.logger.Debug(ctx, "service call completed", fields...)
	}

	return resp, err
}
