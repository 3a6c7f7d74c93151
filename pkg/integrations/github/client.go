package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/ecoscout/pkg/buildinfo"
	"github.com/matzehuels/ecoscout/pkg/cache"
	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
	"github.com/matzehuels/ecoscout/pkg/httputil"
	"github.com/matzehuels/ecoscout/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Config configures a GitHub [Client].
type Config struct {
	Token    string            // Bearer token; empty for unauthenticated requests
	BaseURL  string            // API endpoint; defaults to DefaultBaseURL
	Cache    cache.Cache       // Response cache; nil disables caching
	CacheTTL time.Duration     // Lifetime of cached responses
	Limiter  *httputil.Limiter // Request throttle; nil disables throttling
	Timeout  time.Duration     // Per-request timeout; 0 keeps the default
}

// Client provides access to the GitHub REST API.
// It handles HTTP requests with caching, throttling and optional authentication.
// No request is ever retried.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client.
// Cached responses are scoped by token so that two tokens never share entries.
func NewClient(cfg Config) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	prefix := "github:"
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
		prefix += cache.Hash([]byte(cfg.Token))[:12] + ":"
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	return &Client{
		Client: integrations.NewClient(cfg.Cache, prefix, cfg.CacheTTL, headers,
			integrations.WithLimiter(cfg.Limiter),
			integrations.WithTimeout(cfg.Timeout),
			integrations.WithService("github"),
		),
		baseURL: base,
	}
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchRepoLanguage returns the repository's primary language as reported by
// GitHub. The result is empty when GitHub detected no language.
func (c *Client) FetchRepoLanguage(ctx context.Context, owner, repo string) (string, error) {
	if err := pkgerrors.ValidateRepoRef(owner, repo); err != nil {
		return "", err
	}
	u := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	var data repoResponse
	if err := c.getJSON(ctx, u, &data); err != nil {
		return "", fmt.Errorf("github repo %s/%s: %w", owner, repo, err)
	}
	if data.Language == nil {
		return "", nil
	}
	return *data.Language, nil
}

// FetchContributors returns up to limit contributors of a repository in the
// order GitHub returns them, which is requested as descending contribution
// count. Entries without a login (anonymous contributors) are dropped.
func (c *Client) FetchContributors(ctx context.Context, owner, repo string, limit int) ([]Contributor, error) {
	if err := pkgerrors.ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(limit))
	q.Set("sort", "contributions")
	q.Set("order", "desc")
	u := fmt.Sprintf("%s/repos/%s/%s/contributors?%s", c.baseURL, owner, repo, q.Encode())

	var data []contributorResponse
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("github contributors %s/%s: %w", owner, repo, err)
	}

	result := make([]Contributor, 0, min(limit, len(data)))
	for _, cr := range data {
		if len(result) == limit {
			break
		}
		if cr.Login == "" {
			continue
		}
		result = append(result, Contributor{
			Login:         cr.Login,
			Contributions: cr.Contributions,
			Type:          cr.Type,
		})
	}
	return result, nil
}

// getJSON performs a cached GET. Only successful responses are cached.
func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	return c.Cached(ctx, strings.TrimPrefix(u, c.baseURL), false, v, func() error {
		return c.Get(ctx, u, v)
	})
}
