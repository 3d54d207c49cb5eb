// Package admission provides a capacity-limited, predicate-checked admission
// gate for services.
//
// A Gate wraps an inner service with a fixed number of admission slots and a
// request predicate. A request is admitted only when a slot is free and the
// predicate approves it; the slot is held for the whole predicate-plus-call
// path and released exactly once when that path finishes or is abandoned.
//
//	gate := admission.NewGate(upstream, admission.PredicateFunc[*Request](check), 32)
//
//	if err := gate.Ready(ctx); err != nil { ... }
//	resp, err := gate.Call(ctx, req)
//
// Errors distinguish the three failure classes: ErrNoCapacity (no slot free
// at call time), *RejectedError (predicate refused the request, wrapping the
// predicate's error), and the inner service's own errors, which propagate
// unchanged.
//
// A single Gate value is safe for concurrent use; all callers share the same
// capacity counter. Only one readiness waiter slot exists: when several
// callers block in Ready at once, the most recent registration wins the next
// wake-up and earlier ones may starve transiently. This is a documented
// limitation of the design, acceptable for the intended one-driver-per-gate
// usage.
package admission
