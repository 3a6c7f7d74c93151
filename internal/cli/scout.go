package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ecoscout/pkg/cursor"
	ecoio "github.com/matzehuels/ecoscout/pkg/io"
	"github.com/matzehuels/ecoscout/pkg/observability"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
	"github.com/matzehuels/ecoscout/pkg/render"
)

// Output formats of the scout command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// scoutOptions holds the flags of the scout command.
type scoutOptions struct {
	repoLimit     int
	offset        int
	maxCandidates int
	technologies  string
	requireAll    bool
	strategy      string

	resume   bool
	noCache  bool
	format   string
	output   string
	graph    string
	detailed bool
}

// request builds the pipeline request. Flags left at their zero value by
// cobra already carry the pipeline defaults.
func (o scoutOptions) request() (pipeline.Request, error) {
	strategy, err := pipeline.ParseStrategy(o.strategy)
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.Request{
		RepoLimit:              o.repoLimit,
		Offset:                 o.offset,
		MaxCandidatesPerRepo:   o.maxCandidates,
		RequiredTechnologies:   pipeline.ParseTechnologies(o.technologies),
		RequireAllTechnologies: o.requireAll,
		Strategy:               strategy,
	}.Normalize()
	return req, req.Validate()
}

func (o scoutOptions) validate() error {
	switch o.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", o.format)
	}
	return nil
}

// scoutCommand creates the scout command.
func (c *CLI) scoutCommand() *cobra.Command {
	opts := scoutOptions{}

	cmd := &cobra.Command{
		Use:   "scout",
		Short: "Find contributors in the ecosystem taxonomy",
		Long: `Scout walks the taxonomy, selects repositories whose primary language
matches the required technologies, and collects and enriches their top
contributors.

Pass --resume to continue where the previous run with the same
technologies stopped.`,
		Example: `  # Ten repositories, one contributor each (defaults)
  ecoscout scout

  # Rust or Go projects, three contributors each, continuing the last scan
  ecoscout scout --tech rust,go --max-candidates 3 --resume

  # Save the result and a provenance graph
  ecoscout scout -o candidates.json --graph provenance.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runScout(cmd.Context(), opts, cmd.Flags().Changed("offset"))
		},
	}

	defaultTechs := strings.Join(pipeline.DefaultRequiredTechnologies(), ",")
	cmd.Flags().IntVarP(&opts.repoLimit, "repo-limit", "n", pipeline.DefaultRepoLimit, "number of repositories to select")
	cmd.Flags().IntVar(&opts.offset, "offset", pipeline.DefaultOffset, "eligible repositories to skip")
	cmd.Flags().IntVarP(&opts.maxCandidates, "max-candidates", "m", pipeline.DefaultMaxCandidatesPerRepo, "contributors taken per repository")
	cmd.Flags().StringVarP(&opts.technologies, "tech", "t", defaultTechs, "comma-separated required technologies")
	cmd.Flags().BoolVar(&opts.requireAll, "require-all", false, "require every technology instead of any")
	cmd.Flags().StringVar(&opts.strategy, "strategy", string(pipeline.DefaultStrategy), "where to match technologies: prefilter or postfilter")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "start from the saved cursor of this technology scope")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the GitHub response cache")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to a file (.json, .yaml)")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "render a provenance graph (.svg or .dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include contributions and email in graph labels")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatTable, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions(
		[]string{string(pipeline.StrategyPrefilter), string(pipeline.StrategyPostfilter)}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runScout(ctx context.Context, opts scoutOptions, offsetSet bool) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	var (
		store cursor.Store
		key   string
	)
	if opts.resume {
		store, err = c.newCursorStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		key = cursor.Key(req.ScopeKey()...)
		saved, err := store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read cursor: %w", err)
		}
		switch {
		case offsetSet:
			c.Logger.Debug("explicit --offset wins over saved cursor", "offset", req.Offset)
		case saved != nil:
			req.Offset = saved.Offset
			c.Logger.Info("resuming", "offset", saved.Offset, "saved", saved.UpdatedAt.Format(time.DateTime))
		}
	}

	runner, closeCache, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	var spinner *Spinner
	if opts.format == formatTable && isTerminal(os.Stderr) {
		spinner = newSpinner(ctx, os.Stderr, "Walking taxonomy")
		observability.SetPipelineHooks(spinner)
		defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})
		spinner.Start()
	}

	prog := newProgress(c.Logger)
	res, err := runner.Run(ctx, req)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("scout finished", "candidates", len(res.Candidates), "processedRepos", res.ProcessedRepos)

	if store != nil {
		cur := &cursor.Cursor{
			Key:       key,
			Scope:     scopeSummary(req),
			Offset:    res.NextOffset(),
			RunID:     res.RunID,
			UpdatedAt: time.Now(),
		}
		if err := store.Set(ctx, cur); err != nil {
			printWarning("Could not save cursor: %v", err)
		}
	}

	if err := c.writeScoutOutput(res, opts); err != nil {
		return err
	}

	if opts.graph != "" {
		dot := render.ToDOT(res, render.Options{Detailed: opts.detailed, Categories: true})
		if err := render.WriteFile(ctx, opts.graph, dot); err != nil {
			return fmt.Errorf("graph: %w", err)
		}
		printSuccess("Provenance graph")
		printFile(opts.graph)
	}

	if spinner != nil {
		for outcome, n := range spinner.Failures() {
			printDetail("%d lookups skipped (%s)", n, outcome)
		}
	}
	if opts.format == formatTable {
		printNextStep("Next page", nextCommand(opts, res.NextOffset()))
	}
	return nil
}

func (c *CLI) writeScoutOutput(res *pipeline.Result, opts scoutOptions) error {
	if opts.output != "" {
		if err := ecoio.Export(res, opts.output); err != nil {
			return err
		}
		printSuccess("Saved %d candidates", len(res.Candidates))
		printFile(opts.output)
		if opts.format == formatTable {
			return nil
		}
	}

	switch opts.format {
	case formatJSON:
		return ecoio.Write(res, c.Out, ecoio.FormatJSON)
	case formatYAML:
		return ecoio.Write(res, c.Out, ecoio.FormatYAML)
	}

	if len(res.Candidates) == 0 {
		printInfo("No candidates found")
	} else {
		fmt.Fprintln(c.Out, candidateTable(res.Candidates))
	}
	printInfo("%s", summaryLine(res))
	return nil
}

// nextCommand suggests the invocation that continues after this run.
func nextCommand(opts scoutOptions, next int) string {
	parts := []string{appName, "scout"}
	if opts.repoLimit != pipeline.DefaultRepoLimit {
		parts = append(parts, fmt.Sprintf("-n %d", opts.repoLimit))
	}
	if opts.technologies != strings.Join(pipeline.DefaultRequiredTechnologies(), ",") {
		parts = append(parts, "-t "+opts.technologies)
	}
	if opts.resume {
		parts = append(parts, "--resume")
	} else {
		parts = append(parts, fmt.Sprintf("--offset %d", next))
	}
	return strings.Join(parts, " ")
}

func scopeSummary(req pipeline.Request) string {
	mode := "any"
	if req.RequireAllTechnologies {
		mode = "all"
	}
	return fmt.Sprintf("%s (%s, %s)", strings.Join(req.RequiredTechnologies, ","), mode, req.Strategy)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
