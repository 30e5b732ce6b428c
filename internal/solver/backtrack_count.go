package solver

import (
	"context"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/reduce"
)

// Count layers solution counting on top of the identical search: it keeps
// backtracking past successes and tallies every one, returning the first
// found sequence as representative. No canonicalization is applied beyond
// the doubleton direction-skip, so symmetric fillings count separately.
// A zero count with a nil error means the puzzle is unsolvable.
func (s *BacktrackingSolver) Count(ctx context.Context, g domain.Game, limit int) (int, []domain.Placement, ports.Stats, error) {
	start := time.Now()
	nodes, count := 0, 0
	var first []domain.Placement
	err := s.count(ctx, g, nil, limit, &count, &first, &nodes)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err != nil {
		return count, first, st, err
	}
	s.Log.Debug().Int("nodes", st.Nodes).Dur("dur", st.Duration).
		Int("solutions", count).Msg("counted")
	return count, first, st, nil
}

func (s *BacktrackingSolver) count(ctx context.Context, g domain.Game, path []domain.Placement, limit int, count *int, first *[]domain.Placement, nodes *int) error {
	if err := ctx.Err(); err != nil {
		return ErrTimeout
	}
	if g.IsWon() {
		*count++
		if *first == nil {
			cp := make([]domain.Placement, len(path))
			copy(cp, path)
			*first = cp
		}
		return nil
	}
	anchor, ok := g.Board.NextPoint()
	if !ok {
		return nil
	}
	for _, piece := range domain.DistinctPieces(g.Pieces) {
		for _, dir := range directionsFor(piece) {
			if limit > 0 && *count >= limit {
				return nil
			}
			*nodes++
			pl := domain.Placement{Piece: piece, Point: anchor, Direction: dir}
			next, err := reduce.Play(g, pl)
			if err != nil {
				continue
			}
			if s.Prune && next.Board.HasDeadCell() {
				continue
			}
			if err := s.count(ctx, next, appendPath(path, pl), limit, count, first, nodes); err != nil {
				return err
			}
		}
	}
	return nil
}
