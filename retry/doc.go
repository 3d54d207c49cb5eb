// Package retry provides a policy-driven retry decorator for services.
//
// A Retry wraps an inner service and consults a pluggable Policy after each
// completed call to decide whether to replay the request. Policies evolve by
// replacement: each decision to retry yields a fresh policy value for the
// next attempt, so a policy's internal state (remaining attempts, a delay
// schedule) advances without mutation.
//
//	policy := retry.NewAttempts[*Req, *Resp](retry.AttemptsConfig{Max: 2})
//	svc := retry.New[*Req, *Resp](policy, upstream)
//
// Retries are strictly sequential: exactly one inner call is in flight per
// external call, and the engine itself imposes no bound — termination is
// entirely the policy's responsibility. The caller always receives the last
// completed inner result; policy-decision failures and unclonable requests
// merely stop retrying and never surface as engine errors.
package retry
