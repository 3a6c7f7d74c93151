package httputil

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimit describes an upstream rate-limit rejection.
type RateLimit struct {
	RetryAfter int // Seconds until the quota resets; 0 if unknown
}

// ParseRateLimit reports whether resp is a rate-limit rejection.
// Only 403 and 429 responses qualify, and only when they carry
// X-RateLimit-Remaining: 0 or a Retry-After header. A plain 403 is an
// authorization failure and returns ok=false.
func ParseRateLimit(resp *http.Response, now time.Time) (RateLimit, bool) {
	if resp == nil {
		return RateLimit{}, false
	}
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return RateLimit{}, false
	}

	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return RateLimit{RetryAfter: secs}, true
		}
		if at, err := http.ParseTime(v); err == nil {
			return RateLimit{RetryAfter: secondsUntil(at, now)}, true
		}
		return RateLimit{}, true
	}

	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		rl := RateLimit{}
		if reset, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
			rl.RetryAfter = secondsUntil(time.Unix(reset, 0), now)
		}
		return rl, true
	}

	return RateLimit{}, false
}

func secondsUntil(t, now time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
