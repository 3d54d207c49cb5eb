// Package timeout provides a per-call deadline decorator for services.
//
// A fired timeout cancels the call's context, which behaves like call
// abandonment for the decorators underneath: an admission gate releases its
// slot, a retry engine stops replaying. The caller sees ErrTimeout.
package timeout
