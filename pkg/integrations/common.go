package integrations

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected statuses, undecodable bodies).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned when the upstream quota is exhausted.
	// The chain also carries a [pkgerrors.RateLimitedError] with the wait time.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized is returned when the upstream rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Code maps an integrations error to a structured error code.
func Code(err error) pkgerrors.Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return pkgerrors.ErrCodeNotFound
	case errors.Is(err, ErrRateLimited):
		return pkgerrors.ErrCodeRateLimited
	case errors.Is(err, ErrUnauthorized):
		return pkgerrors.ErrCodeUnauthorized
	case errors.Is(err, ErrNetwork):
		return pkgerrors.ErrCodeNetwork
	default:
		return pkgerrors.ErrCodeInternal
	}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
	"https://www.github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git:// and git+ prefixes, and removes trailing slashes and .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	s = strings.TrimRight(s, "/")
	return strings.TrimSuffix(s, ".git")
}

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([^/?#]+)/([^/?#]+)`)

// ParseRepoURL extracts owner and repository name from a GitHub URL.
// The URL is normalized first, so "git@github.com:a/x.git" yields ("a", "x").
// Returns ok=false for URLs that do not point at a GitHub repository.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	m := repoURLPattern.FindStringSubmatch(NormalizeRepoURL(raw))
	if m == nil {
		return "", "", false
	}
	if pkgerrors.ValidateRepoRef(m[1], m[2]) != nil {
		return "", "", false
	}
	return m[1], m[2], true
}
