package reduce

import (
	"errors"
	"testing"

	"svw.info/pips/internal/domain"
)

var (
	pA = domain.Point{X: 0, Y: 0}
	pB = domain.Point{X: 1, Y: 0}
	pC = domain.Point{X: 2, Y: 0}
)

func pts(points ...domain.Point) domain.PointSet { return domain.NewPointSet(points...) }

func assign(v int, p domain.Point) domain.Assignment {
	return domain.Assignment{Pips: domain.Pips(v), Point: p}
}

func TestAssignmentOutsideRegion(t *testing.T) {
	c := domain.Constraint{Kind: domain.KindExactly, Bound: 5, Points: pts(pA, pB)}
	out, err := Assignment(c, assign(6, domain.Point{X: 9, Y: 9}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(c) {
		t.Fatalf("constraint changed: %v", out)
	}
}

func TestReduceAllSame(t *testing.T) {
	three := domain.Pips(3)

	t.Run("first assignment fixes target", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllSame, Points: pts(pA, pB, pC)}
		out, err := Assignment(c, assign(3, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Kind != domain.KindAllSame || out.Target == nil || *out.Target != 3 {
			t.Fatalf("got %v, want AllSame fixed to 3", out)
		}
		if !out.Points.Equal(pts(pB, pC)) {
			t.Fatalf("wrong residual region: %v", out.Points)
		}
	})

	t.Run("mismatch rejects", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllSame, Target: &three, Points: pts(pA, pB)}
		if _, err := Assignment(c, assign(4, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})

	t.Run("two cells collapse to Exactly", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllSame, Points: pts(pA, pB)}
		out, err := Assignment(c, assign(5, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindExactly, Bound: 5, Points: pts(pB)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("last cell discharges", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllSame, Target: &three, Points: pts(pA)}
		out, err := Assignment(c, assign(3, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsEmpty() {
			t.Fatalf("got %v, want empty", out)
		}
	})
}

func TestReduceAllDifferent(t *testing.T) {
	t.Run("forbidden value rejects", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllDifferent, Forbidden: domain.NewPipSet(2), Points: pts(pA, pB)}
		if _, err := Assignment(c, assign(2, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})

	t.Run("value joins forbidden set", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllDifferent, Forbidden: domain.NewPipSet(1), Points: pts(pA, pB)}
		out, err := Assignment(c, assign(4, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindAllDifferent, Forbidden: domain.NewPipSet(1, 4), Points: pts(pB)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("last cell discharges", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindAllDifferent, Forbidden: domain.NewPipSet(1), Points: pts(pA)}
		out, err := Assignment(c, assign(0, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsEmpty() {
			t.Fatalf("got %v, want empty", out)
		}
	})
}

func TestReduceExactly(t *testing.T) {
	t.Run("residual bound", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindExactly, Bound: 8, Points: pts(pA, pB)}
		out, err := Assignment(c, assign(3, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindExactly, Bound: 5, Points: pts(pB)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("overshoot rejects", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindExactly, Bound: 2, Points: pts(pA, pB)}
		if _, err := Assignment(c, assign(3, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})

	t.Run("unreachable remainder rejects", func(t *testing.T) {
		// 12 - 1 = 11 left over a single cell that holds at most 6.
		c := domain.Constraint{Kind: domain.KindExactly, Bound: 12, Points: pts(pA, pB)}
		if _, err := Assignment(c, assign(1, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})

	t.Run("last cell exact discharges", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindExactly, Bound: 4, Points: pts(pA)}
		out, err := Assignment(c, assign(4, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsEmpty() {
			t.Fatalf("got %v, want empty", out)
		}
	})

	t.Run("last cell mismatch rejects", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindExactly, Bound: 4, Points: pts(pA)}
		if _, err := Assignment(c, assign(5, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})
}

func TestReduceLessThan(t *testing.T) {
	t.Run("reaching the bound rejects", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindLessThan, Bound: 3, Points: pts(pA, pB)}
		if _, err := Assignment(c, assign(3, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
	})

	t.Run("residual bound", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindLessThan, Bound: 7, Points: pts(pA, pB, pC)}
		out, err := Assignment(c, assign(2, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindLessThan, Bound: 5, Points: pts(pB, pC)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("residual one over one cell becomes Exactly zero", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindLessThan, Bound: 4, Points: pts(pA, pB)}
		out, err := Assignment(c, assign(3, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindExactly, Bound: 0, Points: pts(pB)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("last cell below bound discharges", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindLessThan, Bound: 4, Points: pts(pA)}
		out, err := Assignment(c, assign(2, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsEmpty() {
			t.Fatalf("got %v, want empty", out)
		}
	})
}

func TestReduceMoreThan(t *testing.T) {
	t.Run("saturating subtraction", func(t *testing.T) {
		// 6 at one cell of three overshoots bound 4; the rest just needs
		// to exceed zero... but the obligation never goes negative.
		c := domain.Constraint{Kind: domain.KindMoreThan, Bound: 4, Points: pts(pA, pB, pC)}
		out, err := Assignment(c, assign(6, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindMoreThan, Bound: 0, Points: pts(pB, pC)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("residual five over one cell becomes Exactly six", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindMoreThan, Bound: 8, Points: pts(pA, pB)}
		out, err := Assignment(c, assign(3, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Constraint{Kind: domain.KindExactly, Bound: 6, Points: pts(pB)}
		if !out.Equal(want) {
			t.Fatalf("got %v, want %v", out, want)
		}
	})

	t.Run("last cell must exceed bound", func(t *testing.T) {
		c := domain.Constraint{Kind: domain.KindMoreThan, Bound: 3, Points: pts(pA)}
		if _, err := Assignment(c, assign(3, pA)); !errors.Is(err, ErrConstraint) {
			t.Fatalf("got %v, want ErrConstraint", err)
		}
		out, err := Assignment(c, assign(4, pA))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsEmpty() {
			t.Fatalf("got %v, want empty", out)
		}
	})
}

func TestPlacementFold(t *testing.T) {
	// Both halves of a placement land in the same region.
	c := domain.Constraint{Kind: domain.KindExactly, Bound: 7, Points: pts(pA, pB, pC)}
	pl := domain.Placement{Piece: domain.NewPiece(2, 5), Point: pA, Direction: domain.East}

	out, err := Placement(c, pl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Constraint{Kind: domain.KindExactly, Bound: 0, Points: pts(pC)}
	if !out.Equal(want) {
		t.Fatalf("got %v, want %v", out, want)
	}

	// The first half already breaks the bound; the fold short-circuits.
	tight := domain.Constraint{Kind: domain.KindExactly, Bound: 1, Points: pts(pA, pB, pC)}
	if _, err := Placement(tight, pl); !errors.Is(err, ErrConstraint) {
		t.Fatalf("got %v, want ErrConstraint", err)
	}
}

func TestDisjointConstraintsCommute(t *testing.T) {
	// Regions are disjoint, so reducing them by the same placement in
	// either order must produce the same residuals.
	left := domain.Constraint{Kind: domain.KindExactly, Bound: 7, Points: pts(pA, pC)}
	right := domain.Constraint{Kind: domain.KindLessThan, Bound: 9, Points: pts(pB, domain.Point{X: 1, Y: 1})}
	pl := domain.Placement{Piece: domain.NewPiece(2, 5), Point: pA, Direction: domain.East}

	ab, err := Set([]domain.Constraint{left, right}, pl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Set([]domain.Constraint{right, left}, pl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ab) != 2 || len(ba) != 2 {
		t.Fatalf("residual counts: %d and %d, want 2 each", len(ab), len(ba))
	}
	if !ab[0].Equal(ba[1]) || !ab[1].Equal(ba[0]) {
		t.Fatalf("order changed the residuals:\n%v\n%v", ab, ba)
	}
}

func TestSet(t *testing.T) {
	exact := domain.Constraint{Kind: domain.KindExactly, Bound: 7, Points: pts(pA, pB)}
	other := domain.Constraint{Kind: domain.KindLessThan, Bound: 5, Points: pts(domain.Point{X: 0, Y: 3})}
	pl := domain.Placement{Piece: domain.NewPiece(2, 5), Point: pA, Direction: domain.East}

	out, err := Set([]domain.Constraint{exact, other}, pl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The exact constraint is fully discharged and dropped; the untouched
	// one survives unchanged.
	if len(out) != 1 || !out[0].Equal(other) {
		t.Fatalf("got %v, want [%v]", out, other)
	}

	tight := domain.Constraint{Kind: domain.KindLessThan, Bound: 3, Points: pts(pB)}
	if _, err := Set([]domain.Constraint{other, tight}, pl); !errors.Is(err, ErrConstraint) {
		t.Fatalf("got %v, want ErrConstraint", err)
	}
}
