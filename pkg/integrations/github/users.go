package github

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
)

// MaxPerPage is the largest page size the GitHub API accepts.
const MaxPerPage = 100

// FetchUserRepoLanguages returns the distinct primary languages declared
// across the first page (up to 100) of a user's public repositories.
// Languages are lowercased and returned in first-seen order.
func (c *Client) FetchUserRepoLanguages(ctx context.Context, login string) ([]string, error) {
	if err := pkgerrors.ValidateLogin(login); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/repos?per_page=%d", c.baseURL, login, MaxPerPage)

	var data []userRepoResponse
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("github repos of %s: %w", login, err)
	}

	seen := make(map[string]bool)
	var langs []string
	for _, r := range data {
		if r.Language == nil || *r.Language == "" {
			continue
		}
		lang := strings.ToLower(*r.Language)
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// FetchProfile retrieves a user's public profile.
// Email is nil when the user has no public address.
func (c *Client) FetchProfile(ctx context.Context, login string) (*Profile, error) {
	if err := pkgerrors.ValidateLogin(login); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s", c.baseURL, login)

	var p Profile
	if err := c.getJSON(ctx, u, &p); err != nil {
		return nil, fmt.Errorf("github profile %s: %w", login, err)
	}
	return &p, nil
}

// FetchEvents returns the first page (up to 100) of a user's most recent
// public events. Older events are not paged through.
func (c *Client) FetchEvents(ctx context.Context, login string) ([]Event, error) {
	if err := pkgerrors.ValidateLogin(login); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/events?per_page=%d&page=1", c.baseURL, login, MaxPerPage)

	var events []Event
	if err := c.getJSON(ctx, u, &events); err != nil {
		return nil, fmt.Errorf("github events of %s: %w", login, err)
	}
	return events, nil
}
