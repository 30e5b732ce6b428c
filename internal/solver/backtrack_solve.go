package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/reduce"
)

// Solve returns the first solution in canonical search order, or
// ErrUnsolvable / ErrTimeout.
func (s *BacktrackingSolver) Solve(ctx context.Context, g domain.Game) ([]domain.Placement, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	path, err := s.solve(ctx, g, nil, &nodes)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err != nil {
		return nil, st, err
	}
	s.Log.Debug().Int("nodes", st.Nodes).Dur("dur", st.Duration).
		Int("placements", len(path)).Msg("solved")
	return path, st, nil
}

func (s *BacktrackingSolver) solve(ctx context.Context, g domain.Game, path []domain.Placement, nodes *int) ([]domain.Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrTimeout
	}
	if g.IsWon() {
		return path, nil
	}
	anchor, ok := g.Board.NextPoint()
	if !ok {
		// Board empty with pieces or constraints left over: a malformed
		// game, dead end either way.
		return nil, ErrUnsolvable
	}
	for _, piece := range domain.DistinctPieces(g.Pieces) {
		for _, dir := range directionsFor(piece) {
			*nodes++
			pl := domain.Placement{Piece: piece, Point: anchor, Direction: dir}
			next, err := reduce.Play(g, pl)
			if err != nil {
				// Illegal placement or constraint violation: this
				// branch is dead, try the next candidate.
				continue
			}
			if s.Prune && next.Board.HasDeadCell() {
				continue
			}
			sol, err := s.solve(ctx, next, appendPath(path, pl), nodes)
			if err == nil {
				return sol, nil
			}
			if errors.Is(err, ErrTimeout) {
				return nil, err
			}
		}
	}
	return nil, ErrUnsolvable
}
