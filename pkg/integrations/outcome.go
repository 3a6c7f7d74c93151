package integrations

import (
	"errors"
)

// Outcome classifies the result of a single upstream call.
type Outcome int

const (
	// Fetched means the call succeeded and the value is usable.
	Fetched Outcome = iota
	// NotFound means the resource does not exist upstream.
	NotFound
	// RateLimited means the upstream quota was exhausted.
	RateLimited
	// Unknown covers every other failure.
	Unknown
)

// String returns the outcome name used in logs and hooks.
func (o Outcome) String() string {
	switch o {
	case Fetched:
		return "fetched"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Result pairs a fetched value with the outcome of the call that produced it.
// Value is the zero value unless Outcome is Fetched.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Outcome == Fetched }

// Capture turns a (value, error) pair into a Result:
//
//	res := integrations.Capture(gh.FetchProfile(ctx, login))
//	switch res.Outcome { ... }
func Capture[T any](v T, err error) Result[T] {
	if err == nil {
		return Result[T]{Value: v, Outcome: Fetched}
	}
	var zero T
	return Result[T]{Value: zero, Outcome: Classify(err), Err: err}
}

// Classify maps an error to an Outcome. A nil error is Fetched.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Fetched
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrRateLimited):
		return RateLimited
	default:
		return Unknown
	}
}
