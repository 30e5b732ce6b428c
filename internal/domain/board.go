package domain

import (
	"fmt"
	"sort"
)

// PointSet is a set of board cells.
type PointSet map[Point]struct{}

// NewPointSet builds a set from the given points.
func NewPointSet(points ...Point) PointSet {
	s := make(PointSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

func (s PointSet) Contains(p Point) bool { _, ok := s[p]; return ok }

func (s PointSet) Clone() PointSet {
	out := make(PointSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// Without returns a copy of the set with p removed.
func (s PointSet) Without(p Point) PointSet {
	out := s.Clone()
	delete(out, p)
	return out
}

// Sorted returns the points topmost-then-leftmost.
func (s PointSet) Sorted() []Point {
	out := make([]Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (s PointSet) Equal(o PointSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Contains(p) {
			return false
		}
	}
	return true
}

// PipSet is a set of pip values.
type PipSet map[Pips]struct{}

func NewPipSet(values ...Pips) PipSet {
	s := make(PipSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s PipSet) Contains(v Pips) bool { _, ok := s[v]; return ok }

func (s PipSet) Clone() PipSet {
	out := make(PipSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// With returns a copy of the set with v added.
func (s PipSet) With(v Pips) PipSet {
	out := s.Clone()
	out[v] = struct{}{}
	return out
}

// Sorted returns the pip values ascending.
func (s PipSet) Sorted() []Pips {
	out := make([]Pips, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s PipSet) Equal(o PipSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Board is the set of still-open cells. It is treated as an immutable value:
// the only transition is Subtract, which returns a new board.
type Board struct {
	cells PointSet
}

// NewBoard builds a board over the given open cells.
func NewBoard(points ...Point) Board {
	return Board{cells: NewPointSet(points...)}
}

// BoardFromSet wraps an existing point set. The caller hands over ownership.
func BoardFromSet(cells PointSet) Board { return Board{cells: cells} }

func (b Board) Contains(p Point) bool { return b.cells.Contains(p) }
func (b Board) Len() int              { return len(b.cells) }
func (b Board) IsEmpty() bool         { return len(b.cells) == 0 }
func (b Board) Sorted() []Point       { return b.cells.Sorted() }

func (b Board) Equal(o Board) bool { return b.cells.Equal(o.cells) }

// NextPoint returns the canonical anchor: the topmost, then leftmost open
// cell. ok is false on an empty board.
func (b Board) NextPoint() (Point, bool) {
	var best Point
	found := false
	for p := range b.cells {
		if !found || p.Less(best) {
			best, found = p, true
		}
	}
	return best, found
}

// Subtract removes the given cells, failing if any of them is not open.
// There is no operation that adds cells back.
func (b Board) Subtract(points ...Point) (Board, error) {
	for _, p := range points {
		if !b.cells.Contains(p) {
			return Board{}, fmt.Errorf("cell %s is not open", p)
		}
	}
	out := b.cells.Clone()
	for _, p := range points {
		delete(out, p)
	}
	return Board{cells: out}, nil
}

// HasDeadCell reports whether some open cell has no open orthogonal
// neighbor. Such a cell can never be covered by a domino, so the search may
// prune the branch. This is deliberately not part of placement legality.
func (b Board) HasDeadCell() bool {
	for p := range b.cells {
		if b.cells.Contains(Point{p.X + 1, p.Y}) ||
			b.cells.Contains(Point{p.X - 1, p.Y}) ||
			b.cells.Contains(Point{p.X, p.Y + 1}) ||
			b.cells.Contains(Point{p.X, p.Y - 1}) {
			continue
		}
		return true
	}
	return false
}
