package reconnect

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/servicekit/service"
)

// SharedFactory collapses concurrent New calls into a single dial.
//
// Callers that each manage their own Reconnect but share one upstream can
// wrap the factory so a reconnection storm produces one connection attempt,
// whose result every waiter receives. The dial runs on the first caller's
// context; later joiners share its outcome even if their own contexts differ.
type SharedFactory[Req, Resp any] struct {
	factory service.Factory[Req, Resp]
	group   singleflight.Group
}

// NewSharedFactory wraps factory with dial deduplication.
func NewSharedFactory[Req, Resp any](factory service.Factory[Req, Resp]) *SharedFactory[Req, Resp] {
	return &SharedFactory[Req, Resp]{factory: factory}
}

// New dials, or joins a dial already in flight.
func (f *SharedFactory[Req, Resp]) New(ctx context.Context) (service.Service[Req, Resp], error) {
	v, err, _ := f.group.Do("dial", func() (any, error) {
		return f.factory.New(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(service.Service[Req, Resp]), nil
}

var _ service.Factory[any, any] = (*SharedFactory[any, any])(nil)
