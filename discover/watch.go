package discover

import "context"

// Watch adapts a change channel to the Discover interface, for callers that
// produce membership events from their own watch loop.
type Watch[K comparable, S any] struct {
	ch <-chan Change[K, S]
}

// NewWatch creates a channel-fed discovery feed. Closing the channel ends
// the feed; subsequent polls return ErrClosed.
func NewWatch[K comparable, S any](ch <-chan Change[K, S]) *Watch[K, S] {
	return &Watch[K, S]{ch: ch}
}

// Poll yields the next change from the channel.
func (w *Watch[K, S]) Poll(ctx context.Context) (Change[K, S], error) {
	select {
	case change, ok := <-w.ch:
		if !ok {
			return Change[K, S]{}, ErrClosed
		}
		return change, nil
	case <-ctx.Done():
		return Change[K, S]{}, ctx.Err()
	}
}

var _ Discover[string, string] = (*Watch[string, string])(nil)
