// Package pipeline provides the contributor scouting pipeline for ecoscout.
//
// This package implements the complete walk → select → aggregate → filter →
// enrich pipeline used by both the CLI and the HTTP server. Centralizing it
// here keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of these stages:
//
//  1. Walk: lazily yield eligible repository references from the taxonomy
//  2. Select: window the references by offset and limit, optionally
//     pre-filtering each repository by its primary language
//  3. Aggregate: collect top contributors per repository, first seen wins
//  4. Filter: with the post-filter strategy, keep candidates whose own
//     repositories declare the required languages
//  5. Enrich: fetch contact data and recent activity for every candidate
//     concurrently
//
// Only a failed taxonomy listing aborts a run. Every other upstream failure
// is absorbed by the stage that saw it and logged.
//
// # Usage
//
//	runner := pipeline.NewRunner(walker, gh, logger)
//	req := pipeline.DefaultRequest()
//	req.RepoLimit = 25
//	result, err := runner.Run(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	next := result.ProcessedRepos // offset for the following run
package pipeline

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultRepoLimit is the number of repositories selected per run.
	DefaultRepoLimit = 10

	// DefaultOffset is the number of eligible repositories skipped.
	DefaultOffset = 0

	// DefaultMaxCandidatesPerRepo is the contributor cap per repository.
	DefaultMaxCandidatesPerRepo = 1

	// DefaultStrategy matches repositories before aggregating contributors.
	DefaultStrategy = StrategyPrefilter

	// RecentActivityMonths is the look-back window of the activity count.
	RecentActivityMonths = 3
)

// DefaultRequiredTechnologies returns the technologies used when a request
// names none.
func DefaultRequiredTechnologies() []string {
	return []string{"solidity", "javascript", "web3"}
}

// =============================================================================
// Filter Strategy
// =============================================================================

// FilterStrategy selects where the technology filter runs.
type FilterStrategy string

const (
	// StrategyPrefilter matches each repository's primary language during
	// selection, before contributors are aggregated.
	StrategyPrefilter FilterStrategy = "prefilter"

	// StrategyPostfilter selects repositories without matching, then keeps
	// candidates whose own repositories declare the required languages.
	StrategyPostfilter FilterStrategy = "postfilter"
)

// ParseStrategy parses a strategy name. The empty string yields DefaultStrategy.
func ParseStrategy(s string) (FilterStrategy, error) {
	switch FilterStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case StrategyPrefilter:
		return StrategyPrefilter, nil
	case StrategyPostfilter:
		return StrategyPostfilter, nil
	}
	return "", pkgerrors.New(pkgerrors.ErrCodeInvalidRequest,
		"unknown strategy %q (want %s or %s)", s, StrategyPrefilter, StrategyPostfilter)
}

// =============================================================================
// Request - Pipeline Configuration
// =============================================================================

// Request configures one pipeline run. It is not modified during the run.
type Request struct {
	RepoLimit              int            `json:"repoLimit" yaml:"repoLimit"`
	Offset                 int            `json:"offset" yaml:"offset"`
	MaxCandidatesPerRepo   int            `json:"maxCandidatesPerRepo" yaml:"maxCandidatesPerRepo"`
	RequiredTechnologies   []string       `json:"requiredTechnologies" yaml:"requiredTechnologies"`
	RequireAllTechnologies bool           `json:"requireAllTechnologies" yaml:"requireAllTechnologies"`
	Strategy               FilterStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// DefaultRequest returns a request with every field at its default.
func DefaultRequest() Request {
	return Request{
		RepoLimit:            DefaultRepoLimit,
		Offset:               DefaultOffset,
		MaxCandidatesPerRepo: DefaultMaxCandidatesPerRepo,
		RequiredTechnologies: DefaultRequiredTechnologies(),
		Strategy:             DefaultStrategy,
	}
}

// Normalize returns a copy with technologies trimmed, lowercased and
// deduplicated, and an empty strategy replaced by DefaultStrategy.
func (r Request) Normalize() Request {
	r.RequiredTechnologies = NormalizeTechnologies(r.RequiredTechnologies)
	if r.Strategy == "" {
		r.Strategy = DefaultStrategy
	}
	return r
}

// Validate checks the request bounds. Call it on a normalized request.
func (r Request) Validate() error {
	if r.RepoLimit < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "repoLimit must be >= 0, got %d", r.RepoLimit)
	}
	if r.Offset < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "offset must be >= 0, got %d", r.Offset)
	}
	if r.RepoLimit > math.MaxInt-r.Offset {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "offset+repoLimit out of range: %d+%d", r.Offset, r.RepoLimit)
	}
	if r.MaxCandidatesPerRepo < 1 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "maxCandidatesPerRepo must be >= 1, got %d", r.MaxCandidatesPerRepo)
	}
	if len(r.RequiredTechnologies) == 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "requiredTechnologies must name at least one technology")
	}
	for _, tech := range r.RequiredTechnologies {
		if err := pkgerrors.ValidateTechnology(tech); err != nil {
			return err
		}
	}
	if _, err := ParseStrategy(string(r.Strategy)); err != nil {
		return err
	}
	return nil
}

// ScopeKey identifies the scan a request continues. Requests with equal
// technologies, matching mode and strategy walk the same sequence of
// repositories, so they share a resumption cursor.
func (r Request) ScopeKey() []any {
	techs := slices.Clone(r.RequiredTechnologies)
	slices.Sort(techs)
	return []any{techs, r.RequireAllTechnologies, string(r.Strategy)}
}

// String summarizes the request for logs.
func (r Request) String() string {
	mode := "any"
	if r.RequireAllTechnologies {
		mode = "all"
	}
	return fmt.Sprintf("offset=%d limit=%d cap=%d techs=%s(%s) strategy=%s",
		r.Offset, r.RepoLimit, r.MaxCandidatesPerRepo,
		strings.Join(r.RequiredTechnologies, ","), mode, r.Strategy)
}

// NormalizeTechnologies trims, lowercases and deduplicates technology names,
// keeping first-occurrence order and dropping empty entries.
func NormalizeTechnologies(techs []string) []string {
	set := candidate.NewOrderedSet()
	for _, t := range techs {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set.Add(t)
		}
	}
	return set.Items()
}

// ParseTechnologies splits a comma-separated list and normalizes it.
func ParseTechnologies(csv string) []string {
	return NormalizeTechnologies(strings.Split(csv, ","))
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	RunID          string               `json:"runId,omitempty" yaml:"runId,omitempty"`
	Request        Request              `json:"request" yaml:"request"`
	Candidates     []candidate.Enriched `json:"candidatesWithInfo" yaml:"candidatesWithInfo"`
	ProcessedRepos int                  `json:"processedRepos" yaml:"processedRepos"`
	Selected       []Selection          `json:"selectedRepos,omitempty" yaml:"selectedRepos,omitempty"`
	Stats          Stats                `json:"stats" yaml:"stats"`
}

// NextOffset is the offset that continues the scan after this run.
func (r *Result) NextOffset() int { return r.ProcessedRepos }

// Stats records per-stage counts and timings of a run.
type Stats struct {
	StartedAt     time.Time     `json:"startedAt" yaml:"startedAt"`
	Selected      int           `json:"selected" yaml:"selected"`
	Aggregated    int           `json:"aggregated" yaml:"aggregated"`
	Filtered      int           `json:"filtered" yaml:"filtered"`
	SelectTime    time.Duration `json:"selectTime" yaml:"selectTime"`
	AggregateTime time.Duration `json:"aggregateTime" yaml:"aggregateTime"`
	FilterTime    time.Duration `json:"filterTime" yaml:"filterTime"`
	EnrichTime    time.Duration `json:"enrichTime" yaml:"enrichTime"`
	TotalTime     time.Duration `json:"totalTime" yaml:"totalTime"`
}
