// Package loader reads and writes the textual puzzle format:
//
//	// optional comment lines
//	board:
//	##
//	##
//
//	pieces:
//	12,23
//
//	constraints:
//	Exactly 5 {(0,0),(1,0)}
//	AllSame None {(0,1),(1,1)}
//
// Board rows are '#' (open cell) and spaces, top-left origin, row-major.
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"svw.info/pips/internal/domain"
)

// TextLoader parses puzzle text into validated games and formats games back
// into the same syntax.
type TextLoader struct{}

func New() *TextLoader { return &TextLoader{} }

// Parse reads a full puzzle, then validates it structurally (constraint
// invariants hold by construction; consistency and cell counts are checked
// here). The returned game is ready for the solver.
func (l *TextLoader) Parse(text string) (domain.Game, error) {
	p := &parser{lines: strings.Split(text, "\n")}
	g, err := p.game()
	if err != nil {
		return domain.Game{}, err
	}
	if err := ValidateGame(g); err != nil {
		return domain.Game{}, err
	}
	return g, nil
}

type parser struct {
	lines []string
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.lines) }

// peek returns the current line with trailing \r stripped.
func (p *parser) peek() string { return strings.TrimRight(p.lines[p.pos], "\r") }

func (p *parser) skipBlankAndComments() {
	for !p.eof() {
		t := strings.TrimSpace(p.peek())
		if t == "" || strings.HasPrefix(t, "//") {
			p.pos++
			continue
		}
		return
	}
}

func (p *parser) game() (domain.Game, error) {
	p.skipBlankAndComments()
	if p.eof() || strings.TrimSpace(p.peek()) != "board:" {
		return domain.Game{}, fmt.Errorf("line %d: expected \"board:\"", p.pos+1)
	}
	p.pos++

	board, err := p.board()
	if err != nil {
		return domain.Game{}, err
	}

	p.skipBlankAndComments()
	pieces, err := p.pieces()
	if err != nil {
		return domain.Game{}, err
	}

	p.skipBlankAndComments()
	var constraints []domain.Constraint
	if !p.eof() && strings.TrimSpace(p.peek()) == "constraints:" {
		p.pos++
		constraints, err = p.constraints()
		if err != nil {
			return domain.Game{}, err
		}
	}

	p.skipBlankAndComments()
	if !p.eof() {
		return domain.Game{}, fmt.Errorf("line %d: trailing input %q", p.pos+1, strings.TrimSpace(p.peek()))
	}
	return domain.NewGame(board, pieces, constraints), nil
}

// isBoardLine accepts non-empty lines of '#' and spaces. A line of only
// spaces is a board row with no open cells; only a fully empty line ends the
// board section.
func isBoardLine(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r != '#' && r != ' ' {
			return false
		}
	}
	return true
}

func (p *parser) board() (domain.Board, error) {
	var points []domain.Point
	y := 0
	for !p.eof() && isBoardLine(p.peek()) {
		for x, r := range p.peek() {
			if r == '#' {
				points = append(points, domain.Point{X: x, Y: y})
			}
		}
		y++
		p.pos++
	}
	if len(points) == 0 {
		return domain.Board{}, fmt.Errorf("line %d: board has no open cells", p.pos+1)
	}
	return domain.NewBoard(points...), nil
}

func (p *parser) pieces() ([]domain.Piece, error) {
	if p.eof() || !strings.HasPrefix(strings.TrimSpace(p.peek()), "pieces:") {
		return nil, fmt.Errorf("line %d: expected \"pieces:\"", p.pos+1)
	}
	rest := strings.TrimPrefix(strings.TrimSpace(p.peek()), "pieces:")
	p.pos++

	// The list may share the tag's line or follow on its own lines.
	var tokens []string
	collect := func(s string) {
		for _, tok := range strings.Split(s, ",") {
			if t := strings.TrimSpace(tok); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	collect(rest)
	for !p.eof() {
		t := strings.TrimSpace(p.peek())
		if t == "" || t == "constraints:" || strings.HasPrefix(t, "//") {
			break
		}
		collect(t)
		p.pos++
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("line %d: no pieces listed", p.pos+1)
	}
	pieces := make([]domain.Piece, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) != 2 {
			return nil, fmt.Errorf("bad piece %q: want two pip digits", tok)
		}
		a, err := pipsFromByte(tok[0])
		if err != nil {
			return nil, fmt.Errorf("bad piece %q: %v", tok, err)
		}
		b, err := pipsFromByte(tok[1])
		if err != nil {
			return nil, fmt.Errorf("bad piece %q: %v", tok, err)
		}
		pieces = append(pieces, domain.NewPiece(a, b))
	}
	return pieces, nil
}

func pipsFromByte(c byte) (domain.Pips, error) {
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%q is not a digit", c)
	}
	return domain.NewPips(int(c - '0'))
}

func (p *parser) constraints() ([]domain.Constraint, error) {
	var out []domain.Constraint
	for !p.eof() {
		t := strings.TrimSpace(p.peek())
		if t == "" || strings.HasPrefix(t, "//") {
			p.pos++
			continue
		}
		c, err := parseConstraint(t)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", p.pos+1, err)
		}
		out = append(out, c)
		p.pos++
	}
	return out, nil
}

func parseConstraint(line string) (domain.Constraint, error) {
	kind, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch kind {
	case "AllSame":
		arg, pointsPart, ok := strings.Cut(rest, " ")
		if !ok {
			return domain.Constraint{}, fmt.Errorf("AllSame needs a target and a point set")
		}
		var target *domain.Pips
		if arg != "None" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return domain.Constraint{}, fmt.Errorf("AllSame target %q: %v", arg, err)
			}
			v, err := domain.NewPips(n)
			if err != nil {
				return domain.Constraint{}, err
			}
			target = &v
		}
		points, err := parsePointSet(strings.TrimSpace(pointsPart))
		if err != nil {
			return domain.Constraint{}, err
		}
		return domain.NewAllSame(target, points)

	case "AllDifferent":
		if !strings.HasPrefix(rest, "{") {
			return domain.Constraint{}, fmt.Errorf("AllDifferent needs a forbidden pip set")
		}
		end := strings.Index(rest, "}")
		if end < 0 {
			return domain.Constraint{}, fmt.Errorf("unterminated pip set in %q", rest)
		}
		forbidden, err := parsePipSet(rest[:end+1])
		if err != nil {
			return domain.Constraint{}, err
		}
		points, err := parsePointSet(strings.TrimSpace(rest[end+1:]))
		if err != nil {
			return domain.Constraint{}, err
		}
		return domain.NewAllDifferent(forbidden, points)

	case "Exactly", "LessThan", "MoreThan":
		arg, pointsPart, ok := strings.Cut(rest, " ")
		if !ok {
			return domain.Constraint{}, fmt.Errorf("%s needs a bound and a point set", kind)
		}
		bound, err := strconv.Atoi(arg)
		if err != nil {
			return domain.Constraint{}, fmt.Errorf("%s bound %q: %v", kind, arg, err)
		}
		points, err := parsePointSet(strings.TrimSpace(pointsPart))
		if err != nil {
			return domain.Constraint{}, err
		}
		switch kind {
		case "Exactly":
			return domain.NewExactly(bound, points)
		case "LessThan":
			return domain.NewLessThan(bound, points)
		default:
			return domain.NewMoreThan(bound, points)
		}

	default:
		return domain.Constraint{}, fmt.Errorf("unknown constraint kind %q", kind)
	}
}

// parsePipSet reads "{1,2,3}" (possibly empty braces).
func parsePipSet(s string) (domain.PipSet, error) {
	body, err := braceBody(s)
	if err != nil {
		return nil, err
	}
	out := domain.NewPipSet()
	for _, tok := range strings.Split(body, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("bad pip %q: %v", tok, err)
		}
		v, err := domain.NewPips(n)
		if err != nil {
			return nil, err
		}
		out[v] = struct{}{}
	}
	return out, nil
}

// parsePointSet reads "{(0,0),(1,2)}".
func parsePointSet(s string) (domain.PointSet, error) {
	body, err := braceBody(s)
	if err != nil {
		return nil, err
	}
	out := domain.NewPointSet()
	for len(body) > 0 {
		body = strings.TrimLeft(body, ", \t")
		if body == "" {
			break
		}
		if body[0] != '(' {
			return nil, fmt.Errorf("bad point list near %q", body)
		}
		end := strings.IndexByte(body, ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated point in %q", body)
		}
		xs, ys, ok := strings.Cut(body[1:end], ",")
		if !ok {
			return nil, fmt.Errorf("bad point %q", body[:end+1])
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("bad point %q: %v", body[:end+1], err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("bad point %q: %v", body[:end+1], err)
		}
		if x < 0 || y < 0 {
			return nil, fmt.Errorf("point (%d,%d) has negative coordinates", x, y)
		}
		out[domain.Point{X: x, Y: y}] = struct{}{}
		body = body[end+1:]
	}
	return out, nil
}

func braceBody(s string) (string, error) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", fmt.Errorf("expected a braced set, got %q", s)
	}
	return s[1 : len(s)-1], nil
}
