package domain

import "fmt"

// MaxPips is the largest pip value a domino half can carry.
const MaxPips = 6

// Pips is a pip count on one half of a domino, 0..6 inclusive.
type Pips uint8

// NewPips builds a Pips value, rejecting anything above MaxPips.
func NewPips(v int) (Pips, error) {
	if v < 0 || v > MaxPips {
		return 0, fmt.Errorf("pips value %d out of range 0..%d", v, MaxPips)
	}
	return Pips(v), nil
}

// Point identifies a board cell. X grows rightward, Y grows downward,
// (0,0) is the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Less orders points topmost-then-leftmost. The solver's anchor selection
// depends on exactly this order.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Assignment pins one pip value to one cell.
type Assignment struct {
	Pips  Pips
	Point Point
}

// Piece is an unordered pair of pip values stored canonically with the
// smaller value first, so two pieces are equal iff they are the same domino.
type Piece struct {
	Lo Pips
	Hi Pips
}

// NewPiece canonicalizes at the single construction point; comparison sites
// never re-sort.
func NewPiece(a, b Pips) Piece {
	if a > b {
		a, b = b, a
	}
	return Piece{Lo: a, Hi: b}
}

// IsDoubleton reports whether both halves carry the same value.
func (p Piece) IsDoubleton() bool { return p.Lo == p.Hi }

func (p Piece) String() string { return fmt.Sprintf("%d-%d", p.Lo, p.Hi) }

// RemoveOnePiece returns a fresh multiset with exactly one occurrence of
// piece removed. A miss is a data-consistency bug in the caller and comes
// back as a descriptive error naming the piece.
func RemoveOnePiece(pieces []Piece, piece Piece) ([]Piece, error) {
	for i, p := range pieces {
		if p == piece {
			out := make([]Piece, 0, len(pieces)-1)
			out = append(out, pieces[:i]...)
			out = append(out, pieces[i+1:]...)
			return out, nil
		}
	}
	return nil, fmt.Errorf("piece %s not in remaining multiset", piece)
}

// DistinctPieces collapses duplicates, preserving first-seen order. The
// search branches once per distinct piece to avoid redundant permutations.
func DistinctPieces(pieces []Piece) []Piece {
	seen := make(map[Piece]struct{}, len(pieces))
	out := make([]Piece, 0, len(pieces))
	for _, p := range pieces {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Direction orients a placement relative to its anchor.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	default:
		return "west"
	}
}

// Placement puts a piece on the board at an anchor point, oriented by a
// direction. It expands deterministically into two assignments.
type Placement struct {
	Piece     Piece
	Point     Point
	Direction Direction
}

// Assignments expands the placement. With canonical piece (lo,hi):
//
//	North: hi at anchor, lo at (x,y+1)
//	South: lo at anchor, hi at (x,y+1)
//	East:  lo at anchor, hi at (x+1,y)
//	West:  hi at anchor, lo at (x+1,y)
//
// North/South and East/West coincide for doubletons.
func (pl Placement) Assignments() [2]Assignment {
	lo, hi := pl.Piece.Lo, pl.Piece.Hi
	x, y := pl.Point.X, pl.Point.Y
	switch pl.Direction {
	case North:
		return [2]Assignment{{hi, Point{x, y}}, {lo, Point{x, y + 1}}}
	case South:
		return [2]Assignment{{lo, Point{x, y}}, {hi, Point{x, y + 1}}}
	case East:
		return [2]Assignment{{lo, Point{x, y}}, {hi, Point{x + 1, y}}}
	default: // West
		return [2]Assignment{{hi, Point{x, y}}, {lo, Point{x + 1, y}}}
	}
}

// Points returns the two cells the placement occupies.
func (pl Placement) Points() [2]Point {
	a := pl.Assignments()
	return [2]Point{a[0].Point, a[1].Point}
}

func (pl Placement) String() string {
	return fmt.Sprintf("%s at %s %s", pl.Piece, pl.Point, pl.Direction)
}
