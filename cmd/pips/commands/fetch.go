package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/fetch"
	"svw.info/pips/internal/infrastructure/storage"
)

func newFetchCommand() *cobra.Command {
	var (
		difficulty string
		baseURL    string
		jsonDir    string
		outPath    string
		saveDir    string
	)

	cmd := &cobra.Command{
		Use:   "fetch [date]",
		Short: "Fetch a daily puzzle from the NYT feed",
		Long: `Fetch downloads one day's puzzle in the requested difficulty and prints
it in the text format the other commands read. The date defaults to today.

The source can be overridden with --base-url (HTTP(S) or file://) or
--json-dir for a local directory of game-<date>.json files; the
` + fetch.EnvBaseURL + ` and ` + fetch.EnvJSONDir + ` environment variables do the same.`,
		Example: `  # Today's medium puzzle to stdout
  pips fetch

  # A specific day, hard, saved to a file
  pips fetch 2026-08-24 --difficulty hard -o hard.txt

  # Fetch and solve in one line
  pips fetch | pips solve -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().Format(fetch.DateLayout)
			if len(args) == 1 {
				date = args[0]
			}
			if _, err := time.Parse(fetch.DateLayout, date); err != nil {
				return fmt.Errorf("invalid date %q: want %s", date, fetch.DateLayout)
			}

			c := fetch.NewClient()
			c.Log = log.Logger
			if baseURL != "" {
				c.BaseURL = baseURL
			}
			if jsonDir != "" {
				c.Dir = jsonDir
			}

			p, err := c.Fetch(cmd.Context(), date, domain.ParseDifficulty(difficulty))
			if err != nil {
				return err
			}

			if saveDir != "" {
				if err := storage.NewFS(saveDir).Save(cmd.Context(), p); err != nil {
					return err
				}
				log.Info().Str("id", p.ID).Str("dir", saveDir).Msg("puzzle saved")
			}
			if outPath != "" {
				return os.WriteFile(outPath, []byte(p.Text), 0o644)
			}
			fmt.Print(p.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy|medium|hard")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "feed base URL (HTTP(S) or file://)")
	cmd.Flags().StringVar(&jsonDir, "json-dir", "", "read game-<date>.json from this directory")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the puzzle text to this file")
	cmd.Flags().StringVar(&saveDir, "save", "", "also save the puzzle under this data directory")

	return cmd
}
