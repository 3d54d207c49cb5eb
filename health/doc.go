// Package health probes service readiness and aggregates the results.
//
// A Checker reports the health of one component as Healthy, Degraded, or
// Unhealthy. ServiceChecker adapts a service's readiness probe into a
// Checker, and Aggregator combines many checkers into a single composite
// status:
//
//	agg := health.NewAggregator()
//	agg.Register("directory", health.NewServiceChecker("directory", svc))
//	agg.Register("cache", cacheChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package health
