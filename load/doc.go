// Package load annotates services with a load metric for balancer
// consumption.
//
// A balancer picks among ready services by comparing their loads; this
// package defines the Load read and two annotations: Constant pins a fixed
// metric on a service (or on every service yielded by a discovery feed), and
// PendingRequests measures load as the current number of in-flight calls.
// Selection policy itself is out of scope here — a balancer consumes a
// discovery feed of load-annotated services and does its own picking.
package load
