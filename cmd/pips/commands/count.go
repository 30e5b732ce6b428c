package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"svw.info/pips/internal/solver"
)

func newCountCommand() *cobra.Command {
	var (
		timeout time.Duration
		limit   int
		noPrune bool
	)

	cmd := &cobra.Command{
		Use:   "count <puzzle-file>",
		Short: "Count the solutions of a puzzle",
		Long: `Count exhausts the search space and reports how many distinct placement
sequences solve the puzzle. Two sequences that place equal pieces at
swapped positions count separately.`,
		Example: `  # Check a puzzle has a unique solution
  pips count puzzle.txt --limit 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGame(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			s := solver.NewBacktrackingSolver()
			s.Prune = !noPrune
			s.Log = log.Logger
			n, _, st, err := s.Count(ctx, g, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"solutions":  n,
					"nodes":      st.Nodes,
					"durationMs": st.Duration.Milliseconds(),
				})
			}
			suffix := ""
			if limit > 0 && n >= limit {
				suffix = " (limit reached)"
			}
			fmt.Printf("%d solution(s)%s, %d nodes in %s\n", n, suffix, st.Nodes, st.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the search after this duration")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many solutions (0 = count all)")
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "disable dead-cell pruning")

	return cmd
}
