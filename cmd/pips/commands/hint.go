package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svw.info/pips/internal/hint"
)

func newHintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hint <puzzle-file>",
		Short: "Suggest a forced placement",
		Long: `Hint looks for an open cell that only one valid placement can cover.
Such a placement appears in every solution, so it is always safe to play.
Not every position has one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGame(args[0])
			if err != nil {
				return err
			}
			h, found, err := hint.NewForced().Hint(cmd.Context(), g)
			if err != nil {
				return err
			}

			if jsonOutput {
				out := map[string]any{"found": found}
				if found {
					out["piece"] = h.Placement.Piece.String()
					out["point"] = h.Placement.Point
					out["direction"] = h.Placement.Direction.String()
					out["message"] = h.Message
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}
			if !found {
				fmt.Println("no forced placement found")
				return nil
			}
			fmt.Println(h.Message)
			return nil
		},
	}
	return cmd
}
