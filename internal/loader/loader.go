package loader

import (
	"fmt"
	"os"

	"svw.info/pips/internal/domain"
)

// LoadFile reads and parses a puzzle file.
func (l *TextLoader) LoadFile(path string) (domain.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Game{}, fmt.Errorf("read puzzle file %s: %w", path, err)
	}
	g, err := l.Parse(string(data))
	if err != nil {
		return domain.Game{}, fmt.Errorf("parse puzzle file %s: %w", path, err)
	}
	return g, nil
}

// ValidateGame enforces the structural rules the parser cannot express
// per-line: every domino covers two cells, constraint regions sit on the
// board, and no cell belongs to two constraints. Constraint invariants
// themselves are enforced by the domain constructors at parse time.
func ValidateGame(g domain.Game) error {
	if g.Board.Len() != 2*len(g.Pieces) {
		return fmt.Errorf("board has %d cells but %d pieces cover %d",
			g.Board.Len(), len(g.Pieces), 2*len(g.Pieces))
	}
	seen := domain.NewPointSet()
	for _, c := range g.Constraints {
		for p := range c.Points {
			if !g.Board.Contains(p) {
				return fmt.Errorf("constraint cell %s is not on the board", p)
			}
			if seen.Contains(p) {
				return fmt.Errorf("cell %s is used in multiple constraints", p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
