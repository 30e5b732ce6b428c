package domain

// Game is one immutable snapshot of a puzzle: the open board, the remaining
// piece multiset, and the still-live constraints. It is produced once by a
// loader and thereafter only ever replaced by the play transition, never
// mutated in place. The search holds a chain of these snapshots and discards
// them on backtrack.
type Game struct {
	Board       Board
	Pieces      []Piece
	Constraints []Constraint
}

// NewGame bundles a game value. Structural validity is the validator's job.
func NewGame(board Board, pieces []Piece, constraints []Constraint) Game {
	return Game{Board: board, Pieces: pieces, Constraints: constraints}
}

// IsWon reports the distinguished terminal state: nothing left to cover,
// place, or satisfy.
func (g Game) IsWon() bool {
	return g.Board.IsEmpty() && len(g.Pieces) == 0 && len(g.Constraints) == 0
}
