// Package discover provides service-set discovery as a feed of membership
// changes.
//
// A Discover yields, one Poll at a time, insertions and removals of keyed
// service instances. Consumers — typically a load balancer — apply each
// change to their working set:
//
//	for {
//		change, err := d.Poll(ctx)
//		if err != nil { ... }
//		switch change.Op {
//		case discover.Insert:
//			set[change.Key] = change.Service
//		case discover.Remove:
//			delete(set, change.Key)
//		}
//	}
//
// Keys are unique within a feed. Discovery errors are their own error space,
// independent of the errors the discovered services produce.
//
// List serves a predetermined set, Watch adapts a change channel, and Etcd
// follows a key prefix in an etcd cluster.
package discover
