package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/observability"
)

// FilterByTechnology keeps the candidates whose own public repositories
// declare the required languages and attaches the matched technologies in
// required order. Candidates are processed one at a time, in order. A
// candidate whose repositories cannot be listed is dropped.
func FilterByTechnology(ctx context.Context, gh GitHub, cands []candidate.Candidate, required []string, requireAll bool, logger *log.Logger) []candidate.Candidate {
	want := candidate.NewOrderedSet(required...)
	var kept []candidate.Candidate

	for _, c := range cands {
		res := integrations.Capture(gh.FetchUserRepoLanguages(ctx, c.Login))
		if res.Outcome != integrations.Fetched {
			logger.Warn("repositories unavailable, dropping candidate", "user", c.Login, "outcome", res.Outcome, "err", res.Err)
			observability.Pipeline().OnItemFailure(ctx, StageFilter, c.Login, res.Outcome.String())
			continue
		}

		matched := want.Intersect(candidate.NewOrderedSet(res.Value...))
		if !Satisfies(len(matched), want.Len(), requireAll) {
			continue
		}
		c.MatchedTechnologies = matched
		kept = append(kept, c)
	}
	return kept
}

// Satisfies applies the matching policy: ALL needs every required
// technology, ANY needs at least one.
func Satisfies(matched, required int, requireAll bool) bool {
	if requireAll {
		return matched == required
	}
	return matched > 0
}
