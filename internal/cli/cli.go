// Package cli implements the ecoscout command-line interface.
//
// # Commands
//
//   - scout: run the pipeline once and print, save or graph the candidates
//   - serve: expose the pipeline over HTTP
//   - browse: page through a saved result interactively
//   - cache: manage the GitHub response cache
//   - cursor: inspect or reset resumption cursors
//   - config: print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that --format json output on stdout stays clean.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecoscout/internal/config"
	"github.com/matzehuels/ecoscout/pkg/buildinfo"
	"github.com/matzehuels/ecoscout/pkg/cache"
	"github.com/matzehuels/ecoscout/pkg/cursor"
	"github.com/matzehuels/ecoscout/pkg/httputil"
	"github.com/matzehuels/ecoscout/pkg/integrations/github"
	"github.com/matzehuels/ecoscout/pkg/observability"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
	"github.com/matzehuels/ecoscout/pkg/taxonomy"
)

// appName is the application name used for directories and display.
const appName = "ecoscout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output; logs go to the logger's writer.
	Out io.Writer

	configFile string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level. At debug level, cache lookups and
// GitHub requests are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger.WithPrefix("api"))
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ecoscout finds contributors across blockchain ecosystems",
		Long: `Ecoscout walks the crypto-ecosystems taxonomy, picks repositories by
language, collects their top contributors and enriches them with public
contact data and recent GitHub activity.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if cfg.File != "" {
				c.Logger.Debug("using config file", "path", cfg.File)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ./ecoscout.yaml or ~/.config/ecoscout/ecoscout.yaml)")

	root.AddCommand(c.scoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.cursorCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig returns the loaded configuration, loading defaults if the root
// pre-run did not happen (direct subcommand invocation in tests).
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner wires the taxonomy walker, GitHub client and cache into a
// pipeline runner. The returned close function releases the cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, func() error, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store := cache.NewNullCache()
	if !noCache && cfg.Cache.TTL > 0 {
		store, err = c.newCache(ctx, cfg)
		if err != nil {
			c.Logger.Warn("cache unavailable, continuing without", "err", err)
			store = cache.NewNullCache()
		}
	}

	if cfg.GitHub.Token == "" {
		c.Logger.Warn("no GitHub token configured; unauthenticated requests are limited to 60 per hour")
	}

	gh := github.NewClient(github.Config{
		Token:    cfg.GitHub.Token,
		BaseURL:  cfg.GitHub.BaseURL,
		Cache:    store,
		CacheTTL: cfg.Cache.TTL,
		Limiter:  httputil.NewLimiter(cfg.GitHub.RatePerSecond, cfg.GitHub.Burst),
		Timeout:  cfg.GitHub.Timeout,
	})
	walker := taxonomy.NewWalker(gh, cfg.Taxonomy.Location(), c.Logger)

	runner := pipeline.NewRunner(walker, gh, c.Logger)
	runner.EnrichConcurrency = cfg.Enrich.Concurrency
	return runner, store.Close, nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Redis.URL != "" {
		return cache.NewRedisCache(ctx, cfg.Redis.URL)
	}
	return cache.NewFileCache(cfg.Cache.Dir)
}

// newCursorStore opens the redis cursor store when redis is configured and
// the file store otherwise.
func (c *CLI) newCursorStore(ctx context.Context) (cursor.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.URL != "" {
		s, err := cursor.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("open cursor store: %w", err)
		}
		return s, nil
	}
	return cursor.NewFileStore("")
}
