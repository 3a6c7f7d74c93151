package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// loginRegex matches GitHub account logins: alphanumerics and single hyphens,
// not starting or ending with a hyphen, at most 39 characters.
var loginRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// ValidateLogin validates a GitHub account login before it is placed in a URL path.
// Bot accounts such as "dependabot[bot]" are accepted.
func ValidateLogin(login string) error {
	if login == "" {
		return New(ErrCodeInvalidInput, "login cannot be empty")
	}
	name := strings.TrimSuffix(login, "[bot]")
	if !loginRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid login: %q", login)
	}
	return nil
}

// repoPartRegex matches a single owner or repository name segment.
var repoPartRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateRepoRef validates an owner/repo pair for safe use in API paths.
//
// Validation rules:
//   - Neither part may be empty
//   - Only alphanumerics, dot, hyphen and underscore are allowed
//   - "." and ".." are rejected to prevent path traversal
func ValidateRepoRef(owner, repo string) error {
	for _, part := range []string{owner, repo} {
		if part == "" {
			return New(ErrCodeInvalidInput, "repository reference %q/%q is incomplete", owner, repo)
		}
		if part == "." || part == ".." {
			return New(ErrCodeInvalidInput, "repository reference contains path traversal: %q/%q", owner, repo)
		}
		if !repoPartRegex.MatchString(part) {
			return New(ErrCodeInvalidInput, "invalid repository reference: %q/%q", owner, repo)
		}
	}
	return nil
}

// ValidateTechnology validates a single required technology name.
// Technology names are compared against GitHub primary languages, so they
// may contain spaces and symbols ("c++", "objective-c", "vim script") but no
// control characters.
func ValidateTechnology(tech string) error {
	if strings.TrimSpace(tech) == "" {
		return New(ErrCodeInvalidRequest, "technology name cannot be empty")
	}
	if len(tech) > 64 {
		return New(ErrCodeInvalidRequest, "technology name too long (max 64 characters)")
	}
	for _, r := range tech {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRequest, "technology name contains invalid control characters")
		}
	}
	return nil
}
