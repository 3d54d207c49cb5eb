package discover

import (
	"context"
	"encoding/json"
	"strings"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Instance is the metadata stored under a discovery key in etcd.
type Instance struct {
	Addr    string
	Weight  int
	Version string
}

// Bind turns a discovered instance into a live service handle, typically by
// constructing a client for instance.Addr.
type Bind[S any] func(addr string, instance Instance) (S, error)

// Etcd follows a key prefix in etcd and yields the set's membership changes.
//
// Keys under the prefix are one per instance (prefix + address) with a
// JSON-encoded Instance as value. A PUT becomes an insertion bound through
// the Bind callback; a DELETE — including lease expiry of a crashed
// instance — becomes a removal. The first Poll seeds the feed with the keys
// already present.
type Etcd[S any] struct {
	client  *clientv3.Client
	prefix  string
	bind    Bind[S]
	watch   clientv3.WatchChan
	pending []Change[string, S]
}

// NewEtcd creates a discovery feed over the given key prefix.
func NewEtcd[S any](client *clientv3.Client, prefix string, bind Bind[S]) *Etcd[S] {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Etcd[S]{
		client: client,
		prefix: prefix,
		bind:   bind,
	}
}

// Poll yields the next membership change.
//
// The watch stream is tied to the client's lifetime, not to any one Poll's
// context; ctx only bounds this poll. A failed watch yields a *WatchError;
// a closed client ends the feed with ErrClosed.
func (e *Etcd[S]) Poll(ctx context.Context) (Change[string, S], error) {
	for {
		if len(e.pending) > 0 {
			change := e.pending[0]
			e.pending = e.pending[1:]
			return change, nil
		}

		if e.watch == nil {
			resp, err := e.client.Get(ctx, e.prefix, clientv3.WithPrefix())
			if err != nil {
				return Change[string, S]{}, &WatchError{Err: err}
			}
			for _, kv := range resp.Kvs {
				e.queueInsert(kv.Key, kv.Value)
			}
			e.watch = e.client.Watch(e.client.Ctx(), e.prefix,
				clientv3.WithPrefix(), clientv3.WithRev(resp.Header.Revision+1))
			continue
		}

		select {
		case resp, ok := <-e.watch:
			if !ok {
				return Change[string, S]{}, ErrClosed
			}
			if err := resp.Err(); err != nil {
				return Change[string, S]{}, &WatchError{Err: err}
			}
			for _, ev := range resp.Events {
				switch ev.Type {
				case clientv3.EventTypePut:
					e.queueInsert(ev.Kv.Key, ev.Kv.Value)
				case clientv3.EventTypeDelete:
					e.pending = append(e.pending, Change[string, S]{
						Op:  Remove,
						Key: e.addr(ev.Kv.Key),
					})
				}
			}
		case <-ctx.Done():
			return Change[string, S]{}, ctx.Err()
		}
	}
}

func (e *Etcd[S]) queueInsert(key, value []byte) {
	var instance Instance
	if err := json.Unmarshal(value, &instance); err != nil {
		return // skip malformed entries
	}
	addr := e.addr(key)
	svc, err := e.bind(addr, instance)
	if err != nil {
		return
	}
	e.pending = append(e.pending, Change[string, S]{
		Op:      Insert,
		Key:     addr,
		Service: svc,
	})
}

func (e *Etcd[S]) addr(key []byte) string {
	return strings.TrimPrefix(string(key), e.prefix)
}

var _ Discover[string, string] = (*Etcd[string])(nil)
