// Package cache provides deterministic response caching for services.
//
// It provides a Cache store interface with an in-memory TTL implementation,
// SHA-256-based key derivation from requests, and a generic Middleware that
// serves cached responses without dispatching to the inner service. Errors
// are never cached.
package cache
