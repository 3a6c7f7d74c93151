package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/observability"
)

// Aggregate collects up to limit top contributors of each selected
// repository, in selection order. A login seen before keeps its first entry;
// later sightings are dropped along with their provenance. A repository whose
// contributors cannot be fetched contributes nobody.
func Aggregate(ctx context.Context, gh GitHub, selected []Selection, limit int, logger *log.Logger) *candidate.OrderedMap[string, candidate.Candidate] {
	cands := candidate.NewOrderedMap[string, candidate.Candidate]()

	for _, sel := range selected {
		if sel.Owner == "" {
			logger.Warn("unrecognized repository url", "url", sel.Ref.URL)
			observability.Pipeline().OnItemFailure(ctx, StageAggregate, sel.Ref.URL, integrations.Unknown.String())
			continue
		}

		res := integrations.Capture(gh.FetchContributors(ctx, sel.Owner, sel.Name, limit))
		if res.Outcome != integrations.Fetched {
			logger.Warn("contributors unavailable", "repo", sel.FullName(), "outcome", res.Outcome, "err", res.Err)
			observability.Pipeline().OnItemFailure(ctx, StageAggregate, sel.FullName(), res.Outcome.String())
			continue
		}

		contribs := res.Value
		if len(contribs) > limit {
			contribs = contribs[:limit]
		}
		added := 0
		for _, c := range contribs {
			if c.Login == "" {
				continue
			}
			if cands.InsertIfAbsent(c.Login, candidate.Candidate{
				Login:               c.Login,
				Contributions:       c.Contributions,
				SourceRepository:    sel.FullName(),
				MatchedTechnologies: sel.MatchedTechnologies,
			}) {
				added++
			}
		}
		logger.Debug("aggregated contributors", "repo", sel.FullName(), "fetched", len(contribs), "new", added)
	}
	return cands
}
