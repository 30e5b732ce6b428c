package domain

import "strings"

// Difficulty labels the three sections of a daily puzzle.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty maps a label to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}

// Puzzle is a persisted puzzle with metadata. Text holds the puzzle in the
// textual board/pieces/constraints format the loader reads.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"text"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}

// Conflict points at a cell that breaks structural validity.
type Conflict struct {
	Point  Point  `json:"point"`
	Reason string `json:"reason"`
}

// Hint suggests the next forced placement.
type Hint struct {
	Placement Placement `json:"placement"`
	Message   string    `json:"message,omitempty"`
}
