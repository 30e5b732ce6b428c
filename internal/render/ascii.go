// Package render draws boards, solutions, and domino lists as text. Output
// is a slice of lines; color is plain ANSI with a switch, nothing fancier.
package render

import (
	"fmt"
	"sort"
	"strings"

	"svw.info/pips/internal/domain"
)

const cellWidth = 3

// ansi palette cycled per constraint region.
var regionColors = [...]string{"\x1b[31m", "\x1b[32m", "\x1b[33m", "\x1b[34m", "\x1b[35m", "\x1b[36m"}

const ansiReset = "\x1b[0m"

// Renderer produces text renderings of a game.
type Renderer struct {
	Color bool
}

func New(color bool) *Renderer { return &Renderer{Color: color} }

// Board renders the unsolved board. Unconstrained open cells show '#'; each
// constraint region shows its label at the region's topmost-leftmost cell
// and '.' elsewhere.
func (r *Renderer) Board(g domain.Game) []string {
	labels := map[domain.Point]string{}
	regions := map[domain.Point]int{}
	for i, c := range g.Constraints {
		pts := c.Points.Sorted()
		if len(pts) == 0 {
			continue
		}
		labels[pts[0]] = constraintLabel(c)
		for _, p := range pts {
			regions[p] = i
		}
	}
	return r.grid(g.Board, func(p domain.Point) (string, int) {
		region, inRegion := regions[p]
		if !inRegion {
			return "#", -1
		}
		if l, ok := labels[p]; ok {
			return l, region
		}
		return ".", region
	})
}

// Solution renders the board with the pip values of a placement sequence
// filled in.
func (r *Renderer) Solution(g domain.Game, placements []domain.Placement) []string {
	values := map[domain.Point]domain.Pips{}
	for _, pl := range placements {
		for _, a := range pl.Assignments() {
			values[a.Point] = a.Pips
		}
	}
	regions := map[domain.Point]int{}
	for i, c := range g.Constraints {
		for p := range c.Points {
			regions[p] = i
		}
	}
	return r.grid(g.Board, func(p domain.Point) (string, int) {
		region, inRegion := regions[p]
		if !inRegion {
			region = -1
		}
		if v, ok := values[p]; ok {
			return fmt.Sprintf("%d", v), region
		}
		return ".", region
	})
}

// Pieces renders the domino list, eight to a line.
func (r *Renderer) Pieces(pieces []domain.Piece) []string {
	if len(pieces) == 0 {
		return nil
	}
	tokens := make([]string, len(pieces))
	for i, p := range pieces {
		tokens[i] = p.String()
	}
	sort.Strings(tokens)
	const perLine, columnWidth = 8, 6
	var out []string
	for start := 0; start < len(tokens); start += perLine {
		end := start + perLine
		if end > len(tokens) {
			end = len(tokens)
		}
		var sb strings.Builder
		for _, tok := range tokens[start:end] {
			sb.WriteString(fmt.Sprintf("%-*s", columnWidth, tok))
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	return out
}

// grid walks the bounding box and formats one cellWidth-wide field per cell,
// coloring by region when enabled.
func (r *Renderer) grid(b domain.Board, cell func(domain.Point) (string, int)) []string {
	if b.IsEmpty() {
		return nil
	}
	maxX, maxY := 0, 0
	for _, p := range b.Sorted() {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	var out []string
	for y := 0; y <= maxY; y++ {
		var sb strings.Builder
		for x := 0; x <= maxX; x++ {
			p := domain.Point{X: x, Y: y}
			if !b.Contains(p) {
				sb.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			text, region := cell(p)
			if len(text) > cellWidth {
				text = text[:cellWidth]
			}
			field := fmt.Sprintf("%-*s", cellWidth, text)
			if r.Color && region >= 0 {
				field = regionColors[region%len(regionColors)] + field + ansiReset
			}
			sb.WriteString(field)
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	return out
}

// constraintLabel is the short per-region marker shown on unsolved boards.
func constraintLabel(c domain.Constraint) string {
	switch c.Kind {
	case domain.KindAllSame:
		if c.Target != nil {
			return fmt.Sprintf("=%d", *c.Target)
		}
		return "="
	case domain.KindAllDifferent:
		return "!="
	case domain.KindLessThan:
		return fmt.Sprintf("<%d", c.Bound)
	case domain.KindExactly:
		return fmt.Sprintf("%d", c.Bound)
	default:
		return fmt.Sprintf(">%d", c.Bound)
	}
}
