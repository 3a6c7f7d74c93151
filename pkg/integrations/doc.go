// Package integrations provides the shared HTTP client used by upstream API
// clients.
//
// # Overview
//
// Subpackages implement concrete APIs on top of [Client]:
//
//   - [github]: repositories, contributors, users, events and contents
//
// # Client Pattern
//
//	c := integrations.NewClient(cache, "github:", 6*time.Hour, headers,
//	    integrations.WithLimiter(httputil.NewLimiter(10, 10)))
//	var out T
//	err := c.Cached(ctx, key, false, &out, func() error {
//	    return c.Get(ctx, url, &out)
//	})
//
// Clients handle:
//   - Optional response caching via [cache.Cache]; failures are never cached
//   - Client-side throttling via [httputil.Limiter]
//   - Classification of upstream failures into sentinel errors
//
// Requests are never retried. A failed call is reported once and the caller
// decides what to do with it.
//
// # Outcomes
//
// Pipeline stages do not inspect errors directly. They wrap each call with
// [Capture] and switch on the resulting [Outcome]:
//
//	res := integrations.Capture(gh.FetchProfile(ctx, login))
//	if res.Outcome == integrations.RateLimited { ... }
//
// [github]: github.com/matzehuels/ecoscout/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/ecoscout/pkg/cache.Cache
// [httputil.Limiter]: github.com/matzehuels/ecoscout/pkg/httputil.Limiter
package integrations
