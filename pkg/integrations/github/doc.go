// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// The client covers the endpoints the scouting pipeline needs:
//
//   - Repository primary language: GET /repos/{owner}/{repo}
//   - Top contributors: GET /repos/{owner}/{repo}/contributors
//   - A user's repository languages: GET /users/{login}/repos
//   - Public profile: GET /users/{login}
//   - Recent public events: GET /users/{login}/events
//   - Directory listings and raw downloads for the taxonomy walk
//
// # Usage
//
//	client := github.NewClient(github.Config{Token: token})
//	contribs, err := client.FetchContributors(ctx, "ethereum", "go-ethereum", 5)
//
// # Authentication
//
// A personal access token is optional but recommended. Without a token the
// API allows 60 requests per hour; with one, 5000. The token is sent as a
// Bearer credential.
//
// # Failures
//
// Every method returns errors that wrap the sentinels of package
// integrations, so callers classify them with [integrations.Capture].
// Requests are never retried.
//
// # Caching
//
// When a cache is configured, successful responses are stored for
// Config.CacheTTL. Failures are never cached.
package github
