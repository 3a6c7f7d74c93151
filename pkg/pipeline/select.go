package pipeline

import (
	"context"
	"iter"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecoscout/pkg/integrations"
	"github.com/matzehuels/ecoscout/pkg/observability"
	"github.com/matzehuels/ecoscout/pkg/taxonomy"
)

// Selection is a repository chosen for contributor aggregation.
type Selection struct {
	Ref                 taxonomy.RepositoryReference `json:"ref" yaml:"ref"`
	Owner               string                       `json:"owner" yaml:"owner"`
	Name                string                       `json:"name" yaml:"name"`
	MatchedTechnologies []string                     `json:"matchedTechnologies,omitempty" yaml:"matchedTechnologies,omitempty"`
}

// FullName returns "owner/name", or the raw URL when it could not be parsed.
func (s Selection) FullName() string {
	if s.Owner == "" {
		return s.Ref.URL
	}
	return s.Owner + "/" + s.Name
}

// SelectResult is the outcome of the selection stage.
type SelectResult struct {
	Selected []Selection
	Scanned  int // Eligible references consumed, including the skipped offset
}

// Prefilter matches a repository's primary language against the required
// technologies during selection.
type Prefilter struct {
	GitHub     GitHub
	Required   []string
	RequireAll bool
}

// Select skips the first offset references and collects up to limit of the
// rest. Without a prefilter every reference past the offset is selected.
// With one, each inspected reference costs one language lookup and counts
// toward Scanned whether or not it matched, so Scanned never exceeds
// offset+limit, saturated at math.MaxInt. References are pulled one at a
// time; the source is not advanced past the last one needed.
func Select(ctx context.Context, refs iter.Seq[taxonomy.RepositoryReference], offset, limit int, pre *Prefilter, logger *log.Logger) SelectResult {
	var res SelectResult
	offset, limit = max(offset, 0), max(limit, 0)
	end := offset + min(limit, math.MaxInt-offset)
	if end <= 0 {
		return res
	}

	for ref := range refs {
		if res.Scanned < offset {
			res.Scanned++
			if res.Scanned >= end {
				break
			}
			continue
		}

		sel := Selection{Ref: ref}
		sel.Owner, sel.Name, _ = integrations.ParseRepoURL(ref.URL)

		if pre == nil {
			res.Selected = append(res.Selected, sel)
		} else if matched, ok := pre.match(ctx, sel, logger); ok {
			sel.MatchedTechnologies = matched
			res.Selected = append(res.Selected, sel)
		}

		res.Scanned++
		if res.Scanned >= end || len(res.Selected) >= limit {
			break
		}
	}
	return res
}

// match reports the required technologies equal to the repository's primary
// language. Because a repository declares one primary language, ALL mode
// can only pass when exactly one technology is required.
func (p *Prefilter) match(ctx context.Context, sel Selection, logger *log.Logger) ([]string, bool) {
	if sel.Owner == "" {
		logger.Warn("unrecognized repository url", "url", sel.Ref.URL)
		observability.Pipeline().OnItemFailure(ctx, StageSelect, sel.Ref.URL, integrations.Unknown.String())
		return nil, false
	}

	res := integrations.Capture(p.GitHub.FetchRepoLanguage(ctx, sel.Owner, sel.Name))
	switch res.Outcome {
	case integrations.Fetched:
	case integrations.NotFound, integrations.RateLimited, integrations.Unknown:
		logger.Warn("repository metadata unavailable", "repo", sel.FullName(), "outcome", res.Outcome, "err", res.Err)
		observability.Pipeline().OnItemFailure(ctx, StageSelect, sel.FullName(), res.Outcome.String())
		return nil, false
	}

	lang := strings.ToLower(res.Value)
	matched := []string{}
	for _, tech := range p.Required {
		if lang != "" && tech == lang {
			matched = append(matched, tech)
		}
	}

	return matched, Satisfies(len(matched), len(p.Required), p.RequireAll)
}
