package validator

import (
	"context"

	"svw.info/pips/internal/domain"
)

// StructuralValidator performs the fast consistency checks on a game: piece
// count against board size, constraint regions on the board, and no cell
// claimed by two constraints.
type StructuralValidator struct{}

func New() *StructuralValidator { return &StructuralValidator{} }

func (v *StructuralValidator) Validate(ctx context.Context, g domain.Game) (bool, []domain.Conflict, error) {
	var conflicts []domain.Conflict

	if g.Board.Len() != 2*len(g.Pieces) {
		// Not attributable to a single cell; flag the anchor if any.
		p, _ := g.Board.NextPoint()
		conflicts = append(conflicts, domain.Conflict{
			Point:  p,
			Reason: "board size does not match piece count",
		})
	}

	seen := domain.NewPointSet()
	for _, c := range g.Constraints {
		for _, p := range c.Points.Sorted() {
			if !g.Board.Contains(p) {
				conflicts = append(conflicts, domain.Conflict{Point: p, Reason: "constraint cell off board"})
			}
			if seen.Contains(p) {
				conflicts = append(conflicts, domain.Conflict{Point: p, Reason: "cell in multiple constraints"})
			}
			seen[p] = struct{}{}
		}
	}
	return len(conflicts) == 0, conflicts, nil
}
