package httputil

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles outgoing requests with a token bucket.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter creates a limiter allowing perSecond requests per second with
// the given burst. A perSecond of zero or less returns nil, which never blocks.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{rl: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.rl.Wait(ctx)
}
