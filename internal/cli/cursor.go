package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecoscout/pkg/cursor"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// cursorCommand creates the cursor management command.
func (c *CLI) cursorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Inspect or reset saved scan positions",
		Long: `Cursors remember how far "scout --resume" got for each technology
scope (technologies, --require-all, --strategy).`,
	}

	cmd.AddCommand(c.cursorShowCommand())
	cmd.AddCommand(c.cursorResetCommand())
	return cmd
}

func (c *CLI) cursorShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List saved cursors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCursorStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			cursors, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(cursors) == 0 {
				printInfo("No saved cursors")
				return nil
			}
			fmt.Fprintln(c.Out, cursorTable(cursors))
			return nil
		},
	}
}

func (c *CLI) cursorResetCommand() *cobra.Command {
	var (
		opts scoutOptions
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the cursor of a technology scope",
		Example: `  ecoscout cursor reset --tech rust,go
  ecoscout cursor reset --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newCursorStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if all {
				cursors, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, cur := range cursors {
					if err := store.Delete(ctx, cur.Key); err != nil {
						return err
					}
				}
				printSuccess("Removed %d cursors", len(cursors))
				return nil
			}

			req, err := opts.request()
			if err != nil {
				return err
			}
			if err := store.Delete(ctx, cursor.Key(req.ScopeKey()...)); err != nil {
				return err
			}
			printSuccess("Reset cursor for %s", scopeSummary(req))
			return nil
		},
	}

	// Only the scope fields matter; the window fields keep valid defaults.
	opts.repoLimit, opts.maxCandidates = 1, 1
	cmd.Flags().StringVarP(&opts.technologies, "tech", "t", strings.Join(pipeline.DefaultRequiredTechnologies(), ","), "comma-separated required technologies")
	cmd.Flags().BoolVar(&opts.requireAll, "require-all", false, "scope requires every technology")
	cmd.Flags().StringVar(&opts.strategy, "strategy", string(pipeline.DefaultStrategy), "scope strategy: prefilter or postfilter")
	cmd.Flags().BoolVar(&all, "all", false, "remove every cursor")
	return cmd
}

func cursorTable(cursors []*cursor.Cursor) string {
	rows := make([][]string, len(cursors))
	for i, cur := range cursors {
		run := cur.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		rows[i] = []string{cur.Scope, strconv.Itoa(cur.Offset), cur.UpdatedAt.Format(time.DateTime), orDash(run)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Scope", "Offset", "Updated", "Run").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 1 {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
