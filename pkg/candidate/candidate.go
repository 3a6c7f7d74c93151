// Package candidate defines the contributor records produced by the
// scouting pipeline and the ordered collections used to build them.
package candidate

// Candidate is a deduplicated contributor account surfaced from a repository.
// JSON names follow the HTTP response shape.
type Candidate struct {
	Login               string   `json:"user" yaml:"user"`
	Contributions       int      `json:"contributions" yaml:"contributions"`
	SourceRepository    string   `json:"repo" yaml:"repo"`
	MatchedTechnologies []string `json:"matchedTechnologies" yaml:"matchedTechnologies"`
}

// ContactInfo is the public profile of a candidate. Email is nil when the
// profile has no public address or could not be fetched.
type ContactInfo struct {
	Email           *string `json:"email" yaml:"email"`
	Login           string  `json:"login,omitempty" yaml:"login,omitempty"`
	Name            string  `json:"name,omitempty" yaml:"name,omitempty"`
	Company         string  `json:"company,omitempty" yaml:"company,omitempty"`
	Blog            string  `json:"blog,omitempty" yaml:"blog,omitempty"`
	Location        string  `json:"location,omitempty" yaml:"location,omitempty"`
	Bio             string  `json:"bio,omitempty" yaml:"bio,omitempty"`
	TwitterUsername string  `json:"twitter_username,omitempty" yaml:"twitter_username,omitempty"`
	Hireable        *bool   `json:"hireable,omitempty" yaml:"hireable,omitempty"`
	HTMLURL         string  `json:"html_url,omitempty" yaml:"html_url,omitempty"`
	AvatarURL       string  `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	PublicRepos     int     `json:"public_repos,omitempty" yaml:"public_repos,omitempty"`
	Followers       int     `json:"followers,omitempty" yaml:"followers,omitempty"`
}

// EmailOrEmpty returns the email address, or "" when there is none.
func (c ContactInfo) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// Enriched is a Candidate with contact and recent-activity data attached.
type Enriched struct {
	Candidate           `yaml:",inline"`
	ContactInfo         ContactInfo `json:"contactInfo" yaml:"contactInfo"`
	RecentContributions int         `json:"recentContributions" yaml:"recentContributions"`
}
