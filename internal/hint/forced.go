package hint

import (
	"context"
	"fmt"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/reduce"
)

// Forced implements a minimal Hinter: it looks for an open cell covered by
// exactly one valid placement. Such a placement is forced in any solution.
type Forced struct{}

func NewForced() *Forced { return &Forced{} }

// Hint enumerates every valid placement once (all anchors, distinct pieces,
// all directions), buckets them by covered cell, and returns the placement
// of the first cell in canonical order with a single candidate.
func (h *Forced) Hint(ctx context.Context, g domain.Game) (domain.Hint, bool, error) {
	byCell := make(map[domain.Point][]domain.Placement, g.Board.Len())
	pieces := domain.DistinctPieces(g.Pieces)
	dirs := [4]domain.Direction{domain.North, domain.South, domain.East, domain.West}

	for _, anchor := range g.Board.Sorted() {
		if err := ctx.Err(); err != nil {
			return domain.Hint{}, false, err
		}
		for _, piece := range pieces {
			for _, dir := range dirs {
				if piece.IsDoubleton() && (dir == domain.South || dir == domain.West) {
					continue
				}
				pl := domain.Placement{Piece: piece, Point: anchor, Direction: dir}
				if !reduce.Valid(g, pl) {
					continue
				}
				for _, p := range pl.Points() {
					byCell[p] = append(byCell[p], pl)
				}
			}
		}
	}

	for _, p := range g.Board.Sorted() {
		candidates := byCell[p]
		if len(candidates) != 1 {
			continue
		}
		pl := candidates[0]
		return domain.Hint{
			Placement: pl,
			Message:   fmt.Sprintf("only %s fits at %s", pl, p),
		}, true, nil
	}
	return domain.Hint{}, false, nil
}
