package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
	"github.com/matzehuels/ecoscout/pkg/observability"
)

// Runner executes pipeline runs. Both CLI and server use it.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different requests.
type Runner struct {
	Taxonomy Taxonomy
	GitHub   GitHub
	Logger   *log.Logger

	// EnrichConcurrency bounds concurrent enrichment; 0 means unbounded.
	EnrichConcurrency int

	// Now is the clock used for the recent-activity window.
	Now func() time.Time
}

// NewRunner creates a runner over the given taxonomy and GitHub client.
// If logger is nil, the default logger is used.
func NewRunner(tax Taxonomy, gh GitHub, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Taxonomy: tax,
		GitHub:   gh,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Run executes one pipeline run.
//
// It returns an INVALID_REQUEST error for a malformed request and a
// TAXONOMY_UNAVAILABLE error when the category listing fails. Every other
// upstream failure is absorbed and logged, possibly shrinking the result.
func (r *Runner) Run(ctx context.Context, req Request) (result *Result, err error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])
	hooks := observability.Pipeline()
	start := time.Now()

	hooks.OnRunStart(ctx, runID, req.Offset, req.RepoLimit)
	defer func() {
		n, scanned := 0, 0
		if result != nil {
			n, scanned = len(result.Candidates), result.ProcessedRepos
		}
		hooks.OnRunComplete(ctx, runID, n, scanned, time.Since(start), err)
	}()

	logger.Info("starting run", "request", req.String())

	refs, err := r.Taxonomy.Walk(ctx)
	if err != nil {
		logger.Error("taxonomy unavailable", "err", err)
		if pkgerrors.GetCode(err) == "" {
			err = pkgerrors.Wrap(pkgerrors.ErrCodeTaxonomy, err, "walk taxonomy")
		}
		return nil, err
	}

	result = &Result{RunID: runID, Request: req, Stats: Stats{StartedAt: start}}

	// Select
	var pre *Prefilter
	if req.Strategy == StrategyPrefilter {
		pre = &Prefilter{GitHub: r.GitHub, Required: req.RequiredTechnologies, RequireAll: req.RequireAllTechnologies}
	}
	stageStart := time.Now()
	hooks.OnStageStart(ctx, StageSelect, req.RepoLimit)
	sel := Select(ctx, refs, req.Offset, req.RepoLimit, pre, logger)
	result.Selected = sel.Selected
	result.ProcessedRepos = sel.Scanned
	result.Stats.Selected = len(sel.Selected)
	result.Stats.SelectTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, StageSelect, len(sel.Selected), result.Stats.SelectTime)

	logger.Info("selected repositories",
		"selected", len(sel.Selected),
		"scanned", sel.Scanned,
		"duration", result.Stats.SelectTime)

	// Aggregate
	stageStart = time.Now()
	hooks.OnStageStart(ctx, StageAggregate, len(sel.Selected))
	cands := Aggregate(ctx, r.GitHub, sel.Selected, req.MaxCandidatesPerRepo, logger).Values()
	result.Stats.Aggregated = len(cands)
	result.Stats.AggregateTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, StageAggregate, len(cands), result.Stats.AggregateTime)

	logger.Info("aggregated candidates",
		"candidates", len(cands),
		"duration", result.Stats.AggregateTime)

	// Filter
	if req.Strategy == StrategyPostfilter {
		stageStart = time.Now()
		hooks.OnStageStart(ctx, StageFilter, len(cands))
		cands = FilterByTechnology(ctx, r.GitHub, cands, req.RequiredTechnologies, req.RequireAllTechnologies, logger)
		result.Stats.FilterTime = time.Since(stageStart)
		hooks.OnStageComplete(ctx, StageFilter, len(cands), result.Stats.FilterTime)

		logger.Info("filtered candidates",
			"kept", len(cands),
			"duration", result.Stats.FilterTime)
	}
	result.Stats.Filtered = len(cands)

	// Enrich
	stageStart = time.Now()
	hooks.OnStageStart(ctx, StageEnrich, len(cands))
	enricher := &Enricher{GitHub: r.GitHub, Concurrency: r.EnrichConcurrency, Now: r.Now, Logger: logger}
	result.Candidates = enricher.Enrich(ctx, cands)
	if result.Candidates == nil {
		result.Candidates = []candidate.Enriched{}
	}
	result.Stats.EnrichTime = time.Since(stageStart)
	hooks.OnStageComplete(ctx, StageEnrich, len(result.Candidates), result.Stats.EnrichTime)

	logger.Info("enriched candidates",
		"candidates", len(result.Candidates),
		"duration", result.Stats.EnrichTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Stats.TotalTime = time.Since(start)
	logger.Info("run complete",
		"candidates", len(result.Candidates),
		"processed_repos", result.ProcessedRepos,
		"duration", result.Stats.TotalTime)
	return result, nil
}
