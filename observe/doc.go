// Package observe provides observability primitives for service calls.
//
// It is a pure instrumentation library: no dispatch logic, no transport, no
// I/O beyond exporter setup. Consumers wrap a service.Service with Instrument
// to get tracing, metrics, and structured logging around every call.
package observe
