package ports

import (
	"context"
	"time"

	"svw.info/pips/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver finds placement sequences that exactly cover a game's board.
type Solver interface {
	// Solve returns the first solution in canonical search order.
	Solve(ctx context.Context, g domain.Game) ([]domain.Placement, Stats, error)
	// Count continues past the first success and reports the number of
	// solutions plus one representative. limit > 0 stops early once
	// reached; limit <= 0 counts everything.
	Count(ctx context.Context, g domain.Game, limit int) (int, []domain.Placement, Stats, error)
}

// Loader converts puzzle text into a validated game and back.
type Loader interface {
	Parse(text string) (domain.Game, error)
	Format(g domain.Game) string
}

// Fetcher retrieves a day's puzzle from an external source.
type Fetcher interface {
	Fetch(ctx context.Context, date string, d domain.Difficulty) (*domain.Puzzle, error)
}

// Generator creates new puzzles at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator performs structural checks on a loaded game.
type Validator interface {
	Validate(ctx context.Context, g domain.Game) (ok bool, conflicts []domain.Conflict, err error)
}

// Hinter returns the next forced placement, if one exists.
type Hinter interface {
	Hint(ctx context.Context, g domain.Game) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
