package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"svw.info/pips/internal/infrastructure/storage"
)

func newPuzzlesCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "puzzles",
		Short: "Manage the local puzzle store",
	}
	cmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "puzzle store directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved puzzles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metas, err := storage.NewFS(dataDir).List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(metas)
			}
			if len(metas) == 0 {
				fmt.Println("no puzzles saved")
				return nil
			}
			for _, m := range metas {
				created := time.Unix(0, m.CreatedAt).Format("2006-01-02 15:04")
				fmt.Printf("%-36s  %-6s  %-16s  %s\n", m.ID, m.Difficulty, created, m.Name)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved puzzle's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := storage.NewFS(dataDir).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(p.Text)
			return nil
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(show)
	return cmd
}
