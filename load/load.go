package load

import "cmp"

// Load is a pure, side-effect-free read of a service's current load. Metric
// values of the same type are ordered; lower means less loaded.
type Load[M cmp.Ordered] interface {
	Load() M
}
