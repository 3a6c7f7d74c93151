package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecoscout/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the candidates API over HTTP",
		Long: `Serve exposes GET /api/github-candidates. Every request runs one
pipeline invocation; query parameters mirror the scout flags
(repoLimit, offset, maxCandidatesPerRepo, requiredTechnologies,
requireAllTechnologies, strategy).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, closeCache, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			printInfo("Serving %s on %s", server.CandidatesPath, StyleHighlight.Render(addr))
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the GitHub response cache")
	return cmd
}
