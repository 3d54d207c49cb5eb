// Package reconnect provides a lazy connection manager for services.
//
// A Reconnect wraps a service.Factory and defers establishing the underlying
// service until the first readiness check. When the established service later
// fails a readiness check, the manager drops it and dials again on the next
// check, so failure recovery is uniform with initial connection:
//
//	mgr := reconnect.New(service.FactoryFunc[*Req, *Resp](dial))
//
//	if err := mgr.Ready(ctx); err != nil { ... } // dials on first use
//	resp, err := mgr.Call(ctx, req)
//
// A Reconnect is not safe for concurrent use: its state transitions assume a
// single logical caller. Callers that share one upstream across goroutines
// should serialize access externally, and can wrap the factory in a
// SharedFactory so simultaneous dials collapse into one.
package reconnect
