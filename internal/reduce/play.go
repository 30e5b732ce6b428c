package reduce

import (
	"errors"
	"fmt"

	"svw.info/pips/internal/domain"
)

// ErrIllegal marks a placement whose cells are not all open. Recoverable:
// the search simply tries the next candidate.
var ErrIllegal = errors.New("placement is not on open cells")

// Legal reports whether both occupied cells are open. Pure membership: a
// placement that strands the rest of the board is still legal.
func Legal(b domain.Board, pl domain.Placement) bool {
	pts := pl.Points()
	return b.Contains(pts[0]) && b.Contains(pts[1])
}

// Valid reports whether the placement is legal and every constraint accepts
// it. Kept separate from Legal so diagnostics can tell "off-board" from
// "constraint violation".
func Valid(g domain.Game, pl domain.Placement) bool {
	if !Legal(g.Board, pl) {
		return false
	}
	_, err := Set(g.Constraints, pl)
	return err == nil
}

// Play is the sole state-advancing operation: subtract the placement's cells
// from the board, remove one matching piece, and reduce every constraint.
// All three steps succeed or Play fails as a whole; since Game is an
// immutable value, a failed Play leaves the caller's game untouched.
//
// The board check runs first, so a piece-removal miss on a legal placement
// signals a logic bug in the caller rather than a dead branch.
func Play(g domain.Game, pl domain.Placement) (domain.Game, error) {
	pts := pl.Points()
	board, err := g.Board.Subtract(pts[0], pts[1])
	if err != nil {
		return domain.Game{}, fmt.Errorf("%w: %v", ErrIllegal, err)
	}
	pieces, err := domain.RemoveOnePiece(g.Pieces, pl.Piece)
	if err != nil {
		return domain.Game{}, err
	}
	constraints, err := Set(g.Constraints, pl)
	if err != nil {
		return domain.Game{}, err
	}
	return domain.NewGame(board, pieces, constraints), nil
}
