// Package ratelimit provides a token-bucket rate limiting decorator for
// services.
//
// A Limiter either fails fast with ErrLimited when the bucket is empty, or,
// with WaitOnLimit set, waits for a token inside the call. Rate limiting
// composes outside an admission gate: the limiter shapes arrival rate, the
// gate bounds concurrency.
package ratelimit
