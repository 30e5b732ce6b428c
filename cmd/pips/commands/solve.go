package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/render"
	"svw.info/pips/internal/solver"
)

func newSolveCommand() *cobra.Command {
	var (
		timeout  time.Duration
		parallel bool
		workers  int
		noPrune  bool
		noCheck  bool
	)

	cmd := &cobra.Command{
		Use:   "solve <puzzle-file>",
		Short: "Find one solution for a puzzle",
		Long: `Solve reads a puzzle and prints the first solution found as a rendered
board plus the placement list. Before the search it runs a fast exact-cover
check that the board shape can be tiled by dominoes at all.`,
		Example: `  # Solve a puzzle file
  pips solve puzzles/monday.txt

  # Solve from stdin with a time limit
  cat puzzle.txt | pips solve - --timeout 30s

  # Fan out the first level across CPU cores
  pips solve hard.txt --parallel`,
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

			if !noCheck && !solver.Tileable(ctx, g.Board) {
				return fmt.Errorf("board shape cannot be tiled by dominoes")
			}

			s := buildSolver(parallel, workers, noPrune)
			placements, st, err := s.Solve(ctx, g)
			if err != nil {
				return err
			}
			log.Debug().Int("nodes", st.Nodes).Dur("dur", st.Duration).Msg("solved")

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(solveOutput(placements, st))
			}
			r := render.New(!noColor)
			printLines(r.Solution(g, placements))
			fmt.Println()
			for _, pl := range placements {
				fmt.Println(pl)
			}
			fmt.Printf("\n%d nodes in %s\n", st.Nodes, st.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the search after this duration")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "split the first anchor across workers")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count for --parallel (default: CPU count)")
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "disable dead-cell pruning")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the tileability precheck")

	return cmd
}

func buildSolver(parallel bool, workers int, noPrune bool) ports.Solver {
	inner := solver.NewBacktrackingSolver()
	inner.Prune = !noPrune
	inner.Log = log.Logger
	if parallel {
		return solver.NewParallelSolver(workers, inner)
	}
	return inner
}

type placementOut struct {
	Piece     string       `json:"piece"`
	Point     domain.Point `json:"point"`
	Direction string       `json:"direction"`
}

type solveOut struct {
	Placements []placementOut `json:"placements"`
	Nodes      int            `json:"nodes"`
	DurationMs int64          `json:"durationMs"`
}

func solveOutput(placements []domain.Placement, st ports.Stats) solveOut {
	out := solveOut{
		Placements: make([]placementOut, len(placements)),
		Nodes:      st.Nodes,
		DurationMs: st.Duration.Milliseconds(),
	}
	for i, pl := range placements {
		out.Placements[i] = placementOut{
			Piece:     pl.Piece.String(),
			Point:     pl.Point,
			Direction: pl.Direction.String(),
		}
	}
	return out
}
