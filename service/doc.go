// Package service defines the request/response service abstraction that the
// rest of servicekit decorates.
//
// A Service asynchronously turns one request into one response or error,
// under a strict readiness-before-call discipline: a caller must observe a
// successful Ready before each Call. Decorator packages (admission, retry,
// reconnect, ratelimit, timeout, observe, cache) all consume and produce this
// interface, so they compose freely:
//
//	var upstream service.Service[*Request, *Response] = dial()
//	svc := admission.NewGate(retry.New(policy, upstream), pred, 32)
//
// A Factory produces fresh Service instances and is consumed by packages that
// manage connection lifecycles (see reconnect).
package service
