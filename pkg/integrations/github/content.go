package github

import (
	"context"
	"fmt"
	"strings"
)

// ListContents lists the entries of a repository directory.
func (c *Client) ListContents(ctx context.Context, owner, repo, path string) ([]ContentEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, strings.Trim(path, "/"))
	return c.ListContentsURL(ctx, u)
}

// ListContentsURL lists a directory by the API URL carried on a parent
// listing entry. Absolute URLs pointing elsewhere than the configured base
// are rewritten onto it, so listings served by a mirror stay on that mirror.
func (c *Client) ListContentsURL(ctx context.Context, apiURL string) ([]ContentEntry, error) {
	u := c.rebase(apiURL)

	var items []ContentEntry
	if err := c.getJSON(ctx, u, &items); err != nil {
		return nil, fmt.Errorf("github contents %s: %w", strings.TrimPrefix(u, c.baseURL), err)
	}
	return items, nil
}

// FetchRaw downloads a file's raw content from its download URL.
func (c *Client) FetchRaw(ctx context.Context, downloadURL string) (string, error) {
	var text string
	err := c.Cached(ctx, "raw:"+downloadURL, false, &text, func() error {
		var err error
		text, err = c.GetText(ctx, downloadURL)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("github raw %s: %w", downloadURL, err)
	}
	return text, nil
}

func (c *Client) rebase(apiURL string) string {
	if strings.HasPrefix(apiURL, c.baseURL) || c.baseURL == DefaultBaseURL {
		return apiURL
	}
	if rest, ok := strings.CutPrefix(apiURL, DefaultBaseURL); ok {
		return c.baseURL + rest
	}
	return apiURL
}
