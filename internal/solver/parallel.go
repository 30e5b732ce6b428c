package solver

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/reduce"
)

// ParallelSolver fans the first anchor's candidate placements out to a
// bounded pool of workers, each descending sequentially into its own
// immutable game snapshot. Branches share nothing mutable, so no locking is
// needed beyond result collection; the first success cancels the rest.
type ParallelSolver struct {
	Workers int
	inner   *BacktrackingSolver
}

func NewParallelSolver(workers int, inner *BacktrackingSolver) *ParallelSolver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if inner == nil {
		inner = NewBacktrackingSolver()
	}
	return &ParallelSolver{Workers: workers, inner: inner}
}

type branch struct {
	first domain.Placement
	game  domain.Game
}

func (p *ParallelSolver) Solve(ctx context.Context, g domain.Game) ([]domain.Placement, ports.Stats, error) {
	start := time.Now()
	var nodes int64

	if g.IsWon() {
		return nil, ports.Stats{Duration: time.Since(start)}, nil
	}
	anchor, ok := g.Board.NextPoint()
	if !ok {
		return nil, ports.Stats{Duration: time.Since(start)}, ErrUnsolvable
	}

	var branches []branch
	for _, piece := range domain.DistinctPieces(g.Pieces) {
		for _, dir := range directionsFor(piece) {
			nodes++
			pl := domain.Placement{Piece: piece, Point: anchor, Direction: dir}
			next, err := reduce.Play(g, pl)
			if err != nil {
				continue
			}
			branches = append(branches, branch{first: pl, game: next})
		}
	}
	if len(branches) == 0 {
		return nil, ports.Stats{Nodes: int(nodes), Duration: time.Since(start)}, ErrUnsolvable
	}

	branchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.Workers
	if workers > len(branches) {
		workers = len(branches)
	}
	tasks := make(chan branch)
	results := make(chan []domain.Placement, len(branches))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range tasks {
				rest, st, err := p.inner.Solve(branchCtx, b.game)
				atomic.AddInt64(&nodes, int64(st.Nodes))
				if err != nil {
					continue
				}
				sol := make([]domain.Placement, 0, len(rest)+1)
				sol = append(sol, b.first)
				sol = append(sol, rest...)
				results <- sol
				cancel() // first success wins
				return
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, b := range branches {
			select {
			case tasks <- b:
			case <-branchCtx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	st := ports.Stats{Nodes: int(atomic.LoadInt64(&nodes)), Duration: time.Since(start)}
	if sol, ok := <-results; ok {
		return sol, st, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, st, ErrTimeout
	}
	return nil, st, ErrUnsolvable
}

// Count delegates to the sequential search: counting has to enumerate the
// whole space anyway, and a single deterministic traversal keeps the
// representative solution stable.
func (p *ParallelSolver) Count(ctx context.Context, g domain.Game, limit int) (int, []domain.Placement, ports.Stats, error) {
	return p.inner.Count(ctx, g, limit)
}

var _ ports.Solver = (*ParallelSolver)(nil)
var _ ports.Solver = (*BacktrackingSolver)(nil)
