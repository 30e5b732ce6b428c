package loader

import (
	"fmt"
	"strings"

	"svw.info/pips/internal/domain"
)

// Format renders a game back into the textual puzzle syntax. Formatting then
// parsing yields an equal game; absolute coordinates are preserved, so a
// board not touching the origin keeps its leading blank columns and rows.
func (l *TextLoader) Format(g domain.Game) string {
	var sb strings.Builder

	sb.WriteString("board:\n")
	maxX, maxY := 0, 0
	for _, p := range g.Board.Sorted() {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for y := 0; y <= maxY; y++ {
		var row strings.Builder
		for x := 0; x <= maxX; x++ {
			if g.Board.Contains(domain.Point{X: x, Y: y}) {
				row.WriteByte('#')
			} else {
				row.WriteByte(' ')
			}
		}
		line := strings.TrimRight(row.String(), " ")
		if line == "" {
			// A row with no open cells still needs a board character,
			// or the parser would end the section early.
			line = " "
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString("\npieces:\n")
	for i, p := range g.Pieces {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d%d", p.Lo, p.Hi)
	}
	sb.WriteByte('\n')

	if len(g.Constraints) > 0 {
		sb.WriteString("\nconstraints:\n")
		for _, c := range g.Constraints {
			sb.WriteString(c.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
