package health

import (
	"context"
	"time"

	"github.com/jonwraymond/servicekit/service"
)

// ServiceChecker adapts a service's readiness probe into a Checker. A
// readiness error reports Unhealthy; a probe slower than the soft deadline
// reports Degraded.
type ServiceChecker[Req, Resp any] struct {
	name         string
	svc          service.Service[Req, Resp]
	softDeadline time.Duration
}

// NewServiceChecker creates a checker probing svc. A softDeadline of zero
// disables the degraded threshold.
func NewServiceChecker[Req, Resp any](name string, svc service.Service[Req, Resp], softDeadline ...time.Duration) *ServiceChecker[Req, Resp] {
	c := &ServiceChecker[Req, Resp]{name: name, svc: svc}
	if len(softDeadline) > 0 {
		c.softDeadline = softDeadline[0]
	}
	return c
}

// Name returns the checker name.
func (c *ServiceChecker[Req, Resp]) Name() string {
	return c.name
}

// Check probes the service's readiness.
func (c *ServiceChecker[Req, Resp]) Check(ctx context.Context) Result {
	start := time.Now()
	err := c.svc.Ready(ctx)
	elapsed := time.Since(start)

	var result Result
	switch {
	case err != nil:
		result = Unhealthy("service not ready", err)
	case c.softDeadline > 0 && elapsed > c.softDeadline:
		result = Degraded("readiness probe slow")
	default:
		result = Healthy("ready")
	}
	result.Duration = elapsed
	return result
}
