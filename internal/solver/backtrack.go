package solver

import (
	"errors"

	"github.com/rs/zerolog"

	"svw.info/pips/internal/domain"
)

// ErrUnsolvable reports an exhausted search: no piece/direction combination
// works at some anchor on every branch.
var ErrUnsolvable = errors.New("no valid placement")

// ErrTimeout reports a cancelled search. Apart from its label it is
// indistinguishable from ErrUnsolvable.
var ErrTimeout = errors.New("search timed out")

// BacktrackingSolver is a depth-first search over the immutable game chain.
// Each step picks the canonical anchor (topmost-then-leftmost open cell),
// tries every distinct remaining piece in every direction, and recurses into
// the game produced by the play transition.
type BacktrackingSolver struct {
	// Prune skips branches whose board contains a cell with no open
	// neighbor. Such branches can never complete; pruning them does not
	// change which solutions exist.
	Prune bool
	Log   zerolog.Logger
}

func NewBacktrackingSolver() *BacktrackingSolver {
	return &BacktrackingSolver{Prune: true, Log: zerolog.Nop()}
}

// allDirections fixes the candidate order. Doubletons skip South and West:
// those duplicate North and East cell-for-cell and value-for-value.
var allDirections = [4]domain.Direction{domain.North, domain.South, domain.East, domain.West}
var doubletonDirections = [2]domain.Direction{domain.North, domain.East}

func directionsFor(p domain.Piece) []domain.Direction {
	if p.IsDoubleton() {
		return doubletonDirections[:]
	}
	return allDirections[:]
}

// appendPath copies so sibling branches never share backing storage.
func appendPath(path []domain.Placement, pl domain.Placement) []domain.Placement {
	out := make([]domain.Placement, len(path)+1)
	copy(out, path)
	out[len(path)] = pl
	return out
}
