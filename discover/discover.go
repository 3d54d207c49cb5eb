package discover

import "context"

// Op is the kind of membership change.
type Op int

const (
	// Insert adds a keyed service to the set.
	Insert Op = iota
	// Remove deletes the service under a key.
	Remove
)

// String returns the string representation of the operation.
func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one membership change in a discovered service set. Service is
// set only for insertions.
type Change[K comparable, S any] struct {
	Op      Op
	Key     K
	Service S
}

// Discover yields the next membership change of a service set.
//
// Poll blocks until a change is available, the context expires, or the feed
// fails. Implementations need not be safe for concurrent polling.
type Discover[K comparable, S any] interface {
	Poll(ctx context.Context) (Change[K, S], error)
}
