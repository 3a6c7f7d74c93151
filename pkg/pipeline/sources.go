package pipeline

import (
	"context"
	"iter"

	"github.com/matzehuels/ecoscout/pkg/integrations/github"
	"github.com/matzehuels/ecoscout/pkg/taxonomy"
)

// Taxonomy yields eligible repository references in traversal order.
// Walk fails only when the category listing fails.
type Taxonomy interface {
	Walk(ctx context.Context) (iter.Seq[taxonomy.RepositoryReference], error)
}

// GitHub is the subset of the GitHub client used by the stages.
// *github.Client satisfies it.
type GitHub interface {
	FetchRepoLanguage(ctx context.Context, owner, repo string) (string, error)
	FetchContributors(ctx context.Context, owner, repo string, limit int) ([]github.Contributor, error)
	FetchUserRepoLanguages(ctx context.Context, login string) ([]string, error)
	FetchProfile(ctx context.Context, login string) (*github.Profile, error)
	FetchEvents(ctx context.Context, login string) ([]github.Event, error)
}

var (
	_ Taxonomy = (*taxonomy.Walker)(nil)
	_ GitHub   = (*github.Client)(nil)
)

// Stage names reported to hooks and logs.
const (
	StageSelect    = "select"
	StageAggregate = "aggregate"
	StageFilter    = "filter"
	StageEnrich    = "enrich"
)
