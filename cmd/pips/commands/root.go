package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/loader"
)

var (
	// Global flags
	logLevel   string
	jsonOutput bool
	noColor    bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pips",
		Short: "Solver and toolkit for pips domino puzzles",
		Long: `pips works with domino placement puzzles: a board of open cells must be
tiled with a given multiset of dominoes while pip constraints over cell
regions (sums, equality, inequality) are satisfied.

Puzzles are plain text files with board, pieces, and constraints sections;
'-' reads a puzzle from stdin wherever a file is expected.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevel(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in board output")

	rootCmd.AddCommand(newSolveCommand())
	rootCmd.AddCommand(newCountCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newHintCommand())
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPuzzlesCommand())

	return rootCmd
}

func applyLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// readGame loads a puzzle from a file path, or from stdin when path is "-".
func readGame(path string) (domain.Game, error) {
	l := loader.New()
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return domain.Game{}, fmt.Errorf("read stdin: %w", err)
		}
		return l.Parse(string(data))
	}
	return l.LoadFile(path)
}

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}
