package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/reduce"
)

// twoCellGame is the smallest interesting puzzle: one domino on a 1x2 strip
// with a constraint pinning the orientation.
func twoCellGame(t *testing.T) domain.Game {
	t.Helper()
	exact, err := domain.NewExactly(1, domain.NewPointSet(domain.Point{X: 0, Y: 0}))
	if err != nil {
		t.Fatal(err)
	}
	return domain.NewGame(
		domain.NewBoard(domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0}),
		[]domain.Piece{domain.NewPiece(1, 2)},
		[]domain.Constraint{exact},
	)
}

// lGame tiles the four-cell L with two dominoes under a column constraint.
func lGame(t *testing.T) domain.Game {
	t.Helper()
	exact, err := domain.NewExactly(3, domain.NewPointSet(domain.Point{X: 0, Y: 0}, domain.Point{X: 0, Y: 1}))
	if err != nil {
		t.Fatal(err)
	}
	return domain.NewGame(
		domain.NewBoard(
			domain.Point{X: 0, Y: 0},
			domain.Point{X: 0, Y: 1},
			domain.Point{X: 1, Y: 1},
			domain.Point{X: 0, Y: 2},
		),
		[]domain.Piece{domain.NewPiece(1, 2), domain.NewPiece(0, 4)},
		[]domain.Constraint{exact},
	)
}

// replay verifies a placement sequence actually wins the game it solves.
func replay(t *testing.T, g domain.Game, placements []domain.Placement) {
	t.Helper()
	cur := g
	for _, pl := range placements {
		next, err := reduce.Play(cur, pl)
		if err != nil {
			t.Fatalf("replaying %s: %v", pl, err)
		}
		cur = next
	}
	if !cur.IsWon() {
		t.Fatalf("replayed sequence does not win: board=%d pieces=%d constraints=%d",
			cur.Board.Len(), len(cur.Pieces), len(cur.Constraints))
	}
}

func TestSolveTwoCell(t *testing.T) {
	g := twoCellGame(t)
	s := NewBacktrackingSolver()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	placements, st, err := s.Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	if len(placements) != 1 {
		t.Fatalf("got %d placements, want 1", len(placements))
	}
	// Exactly 1 at (0,0) forces the low half onto the anchor.
	want := domain.Placement{Piece: domain.NewPiece(1, 2), Point: domain.Point{X: 0, Y: 0}, Direction: domain.East}
	if placements[0] != want {
		t.Fatalf("got %s, want %s", placements[0], want)
	}
	replay(t, g, placements)
}

func TestSolveLBoard(t *testing.T) {
	g := lGame(t)
	s := NewBacktrackingSolver()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	placements, st, err := s.Solve(ctx, g)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	replay(t, g, placements)
	t.Logf("solved in %v, nodes=%d", st.Duration, st.Nodes)
}

func TestSolveUnsolvable(t *testing.T) {
	exact, err := domain.NewExactly(0, domain.NewPointSet(domain.Point{X: 0, Y: 0}))
	if err != nil {
		t.Fatal(err)
	}
	g := domain.NewGame(
		domain.NewBoard(domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0}),
		[]domain.Piece{domain.NewPiece(1, 2)},
		[]domain.Constraint{exact},
	)
	s := NewBacktrackingSolver()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, _, err := s.Solve(ctx, g); !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("got %v, want ErrUnsolvable", err)
	}
}

func TestSolveTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewBacktrackingSolver()
	if _, _, err := s.Solve(ctx, lGame(t)); !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
	if _, _, _, err := s.Count(ctx, lGame(t), 0); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Count: got %v, want ErrTimeout", err)
	}
}

func TestCount(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s := NewBacktrackingSolver()

	t.Run("forced puzzle has one solution", func(t *testing.T) {
		n, first, _, err := s.Count(ctx, twoCellGame(t), 0)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Fatalf("got %d solutions, want 1", n)
		}
		replay(t, twoCellGame(t), first)
	})

	t.Run("unconstrained square has sixteen", func(t *testing.T) {
		// Two distinct pieces on a 2x2 square: 2 splits x 2 piece orders
		// x 2 orientations each.
		g := domain.NewGame(
			domain.NewBoard(
				domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0},
				domain.Point{X: 0, Y: 1}, domain.Point{X: 1, Y: 1},
			),
			[]domain.Piece{domain.NewPiece(1, 2), domain.NewPiece(3, 4)},
			nil,
		)
		n, first, _, err := s.Count(ctx, g, 0)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 16 {
			t.Fatalf("got %d solutions, want 16", n)
		}
		replay(t, g, first)
	})

	t.Run("limit stops early", func(t *testing.T) {
		g := domain.NewGame(
			domain.NewBoard(
				domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0},
				domain.Point{X: 0, Y: 1}, domain.Point{X: 1, Y: 1},
			),
			[]domain.Piece{domain.NewPiece(1, 2), domain.NewPiece(3, 4)},
			nil,
		)
		n, _, _, err := s.Count(ctx, g, 2)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 2 {
			t.Fatalf("got %d solutions, want 2 (limit)", n)
		}
	})

	t.Run("unsolvable counts zero without error", func(t *testing.T) {
		exact, err := domain.NewExactly(0, domain.NewPointSet(domain.Point{X: 0, Y: 0}))
		if err != nil {
			t.Fatal(err)
		}
		g := domain.NewGame(
			domain.NewBoard(domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0}),
			[]domain.Piece{domain.NewPiece(1, 2)},
			[]domain.Constraint{exact},
		)
		n, first, _, err := s.Count(ctx, g, 0)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 0 || first != nil {
			t.Fatalf("got n=%d first=%v, want 0 and nil", n, first)
		}
	})
}

func TestDoubletonSkipsRedundantDirections(t *testing.T) {
	// A doubleton pair on a 2x2 square: without the direction skip the
	// count would double twice.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	g := domain.NewGame(
		domain.NewBoard(
			domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0},
			domain.Point{X: 0, Y: 1}, domain.Point{X: 1, Y: 1},
		),
		[]domain.Piece{domain.NewPiece(2, 2), domain.NewPiece(2, 2)},
		nil,
	)
	n, _, _, err := NewBacktrackingSolver().Count(ctx, g, 0)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	// Vertical split or horizontal split, nothing else.
	if n != 2 {
		t.Fatalf("got %d solutions, want 2", n)
	}
}

func TestTileable(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		b    domain.Board
		want bool
	}{
		{"2x2 square", domain.NewBoard(
			domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0},
			domain.Point{X: 0, Y: 1}, domain.Point{X: 1, Y: 1}), true},
		{"odd cell count", domain.NewBoard(
			domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0}, domain.Point{X: 2, Y: 0}), false},
		{"isolated cell", domain.NewBoard(
			domain.Point{X: 0, Y: 0}, domain.Point{X: 1, Y: 0},
			domain.Point{X: 0, Y: 2}, domain.Point{X: 0, Y: 3}), true},
		{"two far pairs", domain.NewBoard(
			domain.Point{X: 0, Y: 0}, domain.Point{X: 5, Y: 5}), false},
		{"empty board", domain.NewBoard(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tileable(ctx, tc.b); got != tc.want {
				t.Fatalf("Tileable = %v, want %v", got, tc.want)
			}
		})
	}
}
