// Package httputil provides HTTP plumbing shared by the upstream API clients.
//
// # Overview
//
//   - [Limiter]: client-side request throttling
//   - [ParseRateLimit]: detection of upstream rate-limit responses
//
// # Throttling
//
// [Limiter] wraps a token bucket from golang.org/x/time/rate. Every request
// made through an integrations client waits on the limiter first, so a
// single pipeline run never bursts past the configured rate:
//
//	lim := httputil.NewLimiter(10, 10)
//	if err := lim.Wait(ctx); err != nil {
//	    return err // context cancelled
//	}
//
// A nil *Limiter and a rate of zero both disable throttling.
//
// # Rate-limit detection
//
// GitHub reports an exhausted quota with 403 or 429 and either an
// X-RateLimit-Remaining of 0 or a Retry-After header. [ParseRateLimit]
// inspects a response and reports whether it is such a response and how
// many seconds the caller should wait. Requests are never retried here;
// callers surface the outcome instead.
package httputil
