package discover

import "context"

// List is static discovery over a predetermined set of services.
//
// Each service is yielded once as an insertion keyed by its index; after the
// set is exhausted Poll blocks until the context expires, since a static set
// never changes again.
type List[S any] struct {
	services []S
	next     int
}

// NewList creates a static discovery feed over services.
func NewList[S any](services ...S) *List[S] {
	return &List[S]{services: services}
}

// Poll yields the next insertion, or blocks once the set is exhausted.
func (l *List[S]) Poll(ctx context.Context) (Change[int, S], error) {
	if l.next < len(l.services) {
		i := l.next
		l.next++
		return Change[int, S]{Op: Insert, Key: i, Service: l.services[i]}, nil
	}
	<-ctx.Done()
	return Change[int, S]{}, ctx.Err()
}

var _ Discover[int, string] = (*List[string])(nil)
