package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/ecoscout/pkg/cache"
	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
	"github.com/matzehuels/ecoscout/pkg/httputil"
	"github.com/matzehuels/ecoscout/pkg/observability"
)

// Client provides shared HTTP functionality for upstream API clients.
// It handles response caching, throttling and common request headers.
// Requests are never retried.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyPrefix string
	ttl       time.Duration
	headers   map[string]string
	limiter   *httputil.Limiter
	service   string
}

// Option configures a [Client].
type Option func(*Client)

// WithLimiter throttles every request through l.
func WithLimiter(l *httputil.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithService names the upstream service in observability hooks.
func WithService(name string) Option {
	return func(c *Client) { c.service = name }
}

// NewClient creates a Client with the given cache and default headers.
// keyPrefix namespaces cache entries and ttl bounds their lifetime.
// Pass nil for c to disable caching and nil for headers if none are needed.
func NewClient(c cache.Cache, keyPrefix string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		headers:   headers,
		service:   "http",
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// Only successful results are stored; failures are never cached.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	fullKey := c.keyPrefix + key
	hooks := observability.Cache()

	if !refresh {
		if data, ok, err := c.cache.Get(ctx, fullKey); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				hooks.OnCacheHit(ctx, fullKey)
				return nil
			}
		}
		hooks.OnCacheMiss(ctx, fullKey)
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, fullKey, data, c.ttl) == nil {
			hooks.OnCacheSet(ctx, fullKey, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
// A 204 No Content response leaves v untouched.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetwork, url, err)
	}
	return nil
}

// GetText performs an HTTP GET request and returns the response body as a string.
// Used for raw file downloads such as taxonomy declarations.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNetwork, url, err)
	}
	return string(data), nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, c.service, http.MethodGet, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, c.service, http.MethodGet, url, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, c.service, http.MethodGet, url, resp.StatusCode, time.Since(start))

	if err := checkResponse(resp, url, time.Now()); err != nil {
		resp.Body.Close()
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		return http.NoBody, nil
	}
	return resp.Body, nil
}

func checkResponse(resp *http.Response, url string, now time.Time) error {
	code := resp.StatusCode
	if rl, ok := httputil.ParseRateLimit(resp, now); ok {
		return fmt.Errorf("%w: %w", ErrRateLimited, &pkgerrors.RateLimitedError{
			RetryAfter: rl.RetryAfter,
			Message:    url,
		})
	}
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
