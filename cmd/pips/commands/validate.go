package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svw.info/pips/internal/render"
	"svw.info/pips/internal/validator"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <puzzle-file>",
		Short: "Check a puzzle's structural consistency",
		Long: `Validate parses a puzzle and reports structural problems: a board size
that does not match the piece count, constraint cells off the board, or a
cell claimed by two constraints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGame(args[0])
			if err != nil {
				return err
			}
			ok, conflicts, err := validator.New().Validate(cmd.Context(), g)
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"ok":        ok,
					"conflicts": conflicts,
				})
			}
			printLines(render.New(!noColor).Board(g))
			if ok {
				fmt.Println("\nok")
				return nil
			}
			fmt.Println()
			for _, c := range conflicts {
				fmt.Printf("%s: %s\n", c.Point, c.Reason)
			}
			return fmt.Errorf("%d conflict(s)", len(conflicts))
		},
	}
	return cmd
}
