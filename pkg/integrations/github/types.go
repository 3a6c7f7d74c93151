package github

import "time"

// Contributor is a repository contributor as returned by the contributors endpoint.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type,omitempty"` // "User" or "Bot"
}

// Profile is a user's public profile.
type Profile struct {
	Login           string  `json:"login"`
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Company         *string `json:"company"`
	Blog            string  `json:"blog"`
	Location        *string `json:"location"`
	Bio             *string `json:"bio"`
	TwitterUsername *string `json:"twitter_username"`
	Hireable        *bool   `json:"hireable"`
	HTMLURL         string  `json:"html_url"`
	AvatarURL       string  `json:"avatar_url"`
	PublicRepos     int     `json:"public_repos"`
	Followers       int     `json:"followers"`
}

// Event types counted as contributions.
const (
	EventPush        = "PushEvent"
	EventPullRequest = "PullRequestEvent"
	EventIssues      = "IssuesEvent"
)

// Event is a public activity event.
type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentEntry is one item of a repository directory listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

// IsDir reports whether the entry is a directory.
func (e ContentEntry) IsDir() bool { return e.Type == "dir" }

type repoResponse struct {
	FullName string  `json:"full_name"`
	Language *string `json:"language"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}

type userRepoResponse struct {
	Name     string  `json:"name"`
	Language *string `json:"language"`
}
