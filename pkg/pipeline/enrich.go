package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/integrations/github"
	"github.com/matzehuels/ecoscout/pkg/observability"
)

// Enricher attaches contact data and recent activity to candidates.
type Enricher struct {
	GitHub GitHub
	// Concurrency bounds in-flight candidates; 0 runs all of them at once.
	Concurrency int
	Now         func() time.Time
	Logger      *log.Logger
}

// Enrich enriches every candidate concurrently and returns the results in
// input order. It never fails: a failed profile fetch yields a contact with
// a nil email and a failed event fetch yields zero recent contributions.
func (e *Enricher) Enrich(ctx context.Context, cands []candidate.Candidate) []candidate.Enriched {
	out := make([]candidate.Enriched, len(cands))
	now := e.now()

	// Workers always return nil; failures are absorbed per candidate.
	var g errgroup.Group
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}
	for i, c := range cands {
		g.Go(func() error {
			out[i] = e.enrichOne(ctx, c, now)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enricher) enrichOne(ctx context.Context, c candidate.Candidate, now time.Time) candidate.Enriched {
	enriched := candidate.Enriched{Candidate: c}

	profile := integrations.Capture(e.GitHub.FetchProfile(ctx, c.Login))
	if profile.OK() && profile.Value != nil {
		enriched.ContactInfo = ContactFromProfile(profile.Value)
	} else {
		e.logger().Warn("profile unavailable", "user", c.Login, "outcome", profile.Outcome, "err", profile.Err)
		observability.Pipeline().OnItemFailure(ctx, StageEnrich, c.Login+"/profile", profile.Outcome.String())
		enriched.ContactInfo = candidate.ContactInfo{Email: nil}
	}

	events := integrations.Capture(e.GitHub.FetchEvents(ctx, c.Login))
	if events.OK() {
		enriched.RecentContributions = CountRecent(events.Value, now)
	} else {
		e.logger().Warn("events unavailable", "user", c.Login, "outcome", events.Outcome, "err", events.Err)
		observability.Pipeline().OnItemFailure(ctx, StageEnrich, c.Login+"/events", events.Outcome.String())
	}
	return enriched
}

func (e *Enricher) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Enricher) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// ActivityCutoff returns the start of the recent-activity window: now minus
// RecentActivityMonths calendar months.
func ActivityCutoff(now time.Time) time.Time {
	return now.AddDate(0, -RecentActivityMonths, 0)
}

// CountRecent counts push, pull-request and issue events created at or after
// the activity cutoff. Only the events passed in are considered; callers
// supply a single page, so very active accounts are undercounted.
func CountRecent(events []github.Event, now time.Time) int {
	cutoff := ActivityCutoff(now)
	n := 0
	for _, ev := range events {
		if ev.CreatedAt.Before(cutoff) {
			continue
		}
		switch ev.Type {
		case github.EventPush, github.EventPullRequest, github.EventIssues:
			n++
		}
	}
	return n
}

// ContactFromProfile converts a GitHub profile to contact info.
func ContactFromProfile(p *github.Profile) candidate.ContactInfo {
	return candidate.ContactInfo{
		Email:           p.Email,
		Login:           p.Login,
		Name:            deref(p.Name),
		Company:         deref(p.Company),
		Blog:            p.Blog,
		Location:        deref(p.Location),
		Bio:             deref(p.Bio),
		TwitterUsername: deref(p.TwitterUsername),
		Hireable:        p.Hireable,
		HTMLURL:         p.HTMLURL,
		AvatarURL:       p.AvatarURL,
		PublicRepos:     p.PublicRepos,
		Followers:       p.Followers,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
