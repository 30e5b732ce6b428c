// Package fetch retrieves daily puzzles from the NYT pips JSON feed and
// converts them into games. The source can be the live endpoint, any
// HTTP(S) base URL, a local directory of game-<date>.json files, or a
// file:// base pointing at such a directory.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/loader"
)

// DefaultBaseURL is the public puzzle feed.
const DefaultBaseURL = "https://www.nytimes.com/svc/pips/v1"

// Environment overrides, mirroring the CLI flags.
const (
	EnvBaseURL = "PIPS_NYT_BASE_URL"
	EnvJSONDir = "PIPS_NYT_JSON_DIR"
)

// DateLayout is the feed's date format.
const DateLayout = "2006-01-02"

// Client fetches and converts puzzles.
type Client struct {
	BaseURL    string // HTTP(S) base, file:// base, or directory path
	Dir        string // when set, read game-<date>.json from this directory
	HTTPClient *http.Client
	Log        zerolog.Logger
}

// NewClient applies environment overrides and defaults.
func NewClient() *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Log:        zerolog.Nop(),
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJSONDir)); v != "" {
		c.Dir = v
	}
	return c
}

// puzzleFile is one day's feed: three games keyed by difficulty.
type puzzleFile struct {
	Easy   gameDef `json:"easy"`
	Medium gameDef `json:"medium"`
	Hard   gameDef `json:"hard"`
}

type gameDef struct {
	Constructors string   `json:"constructors"`
	Dominoes     [][2]int `json:"dominoes"`
	Regions      []region `json:"regions"`
	ID           uint64   `json:"id"`
}

// region indices arrive as [row, col] pairs.
type region struct {
	Indices [][2]int `json:"indices"`
	Target  *int     `json:"target,omitempty"`
	Kind    string   `json:"type"`
}

// Fetch retrieves the puzzle for date (yyyy-mm-dd) and returns the section
// for the requested difficulty as a storable puzzle whose Text parses into a
// validated game.
func (c *Client) Fetch(ctx context.Context, date string, d domain.Difficulty) (*domain.Puzzle, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q (want %s): %w", date, DateLayout, err)
	}
	raw, err := c.fetchJSON(ctx, day)
	if err != nil {
		return nil, err
	}
	var pf puzzleFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse puzzle JSON: %w", err)
	}
	def := pf.Easy
	switch d {
	case domain.Medium:
		def = pf.Medium
	case domain.Hard:
		def = pf.Hard
	}
	text, err := convertGame(&def, d)
	if err != nil {
		return nil, err
	}
	// Round through the loader so the stored text is known-valid.
	if _, err := loader.New().Parse(text); err != nil {
		return nil, fmt.Errorf("feed produced an invalid game: %w", err)
	}
	name := fmt.Sprintf("NYT pips %s (%s)", date, d)
	if def.Constructors != "" {
		name += " by " + def.Constructors
	}
	return &domain.Puzzle{
		Name:       name,
		Difficulty: d,
		Text:       text,
		CreatedAt:  time.Now().UnixNano(),
	}, nil
}

func (c *Client) fetchJSON(ctx context.Context, day time.Time) ([]byte, error) {
	if c.Dir != "" {
		return readFromDirectory(c.Dir, day)
	}
	base := strings.TrimSpace(c.BaseURL)
	if rest, ok := strings.CutPrefix(base, "file://"); ok {
		return readFromDirectory(rest, day)
	}
	if fi, err := os.Stat(base); err == nil && fi.IsDir() {
		return readFromDirectory(base, day)
	}
	return c.fetchRemote(ctx, base, day)
}

func readFromDirectory(dir string, day time.Time) ([]byte, error) {
	path := filepath.Join(dir, fmt.Sprintf("game-%s.json", day.Format(DateLayout)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (c *Client) fetchRemote(ctx context.Context, base string, day time.Time) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.json", strings.TrimRight(base, "/"), day.Format(DateLayout))
	c.Log.Debug().Str("url", url).Msg("fetching puzzle")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// convertGame renders a feed section as puzzle text: board rows spanning the
// bounding box of all region cells, the domino list, and one constraint line
// per non-empty region.
func convertGame(def *gameDef, d domain.Difficulty) (string, error) {
	cells := domain.NewPointSet()
	for _, r := range def.Regions {
		for _, idx := range r.Indices {
			cells[domain.Point{X: idx[1], Y: idx[0]}] = struct{}{}
		}
	}
	if len(cells) == 0 {
		return "", fmt.Errorf("game %d (%s) has no board cells", def.ID, d)
	}

	maxX, maxY := 0, 0
	for p := range cells {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// id %d (%s)", def.ID, d)
	if def.Constructors != "" {
		sb.WriteString(" - " + def.Constructors)
	}
	sb.WriteString("\nboard:\n")
	for y := 0; y <= maxY; y++ {
		var row strings.Builder
		for x := 0; x <= maxX; x++ {
			if cells.Contains(domain.Point{X: x, Y: y}) {
				row.WriteByte('#')
			} else {
				row.WriteByte(' ')
			}
		}
		line := strings.TrimRight(row.String(), " ")
		if line == "" {
			line = " "
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString("\npieces:\n")
	for i, pair := range def.Dominoes {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d%d", pair[0], pair[1])
	}
	sb.WriteByte('\n')

	sb.WriteString("\nconstraints:\n")
	for _, r := range def.Regions {
		if r.Kind == "empty" {
			continue
		}
		line, err := convertRegion(&r, d)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func convertRegion(r *region, d domain.Difficulty) (string, error) {
	points := make([]domain.Point, 0, len(r.Indices))
	for _, idx := range r.Indices {
		points = append(points, domain.Point{X: idx[1], Y: idx[0]})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })
	var ps strings.Builder
	ps.WriteByte('{')
	for i, p := range points {
		if i > 0 {
			ps.WriteByte(',')
		}
		ps.WriteString(p.String())
	}
	ps.WriteByte('}')

	needTarget := func() (int, error) {
		if r.Target == nil {
			return 0, fmt.Errorf("%s constraint missing target in %s game", r.Kind, d)
		}
		return *r.Target, nil
	}
	switch r.Kind {
	case "equals":
		return fmt.Sprintf("AllSame None %s", ps.String()), nil
	case "unequal":
		return fmt.Sprintf("AllDifferent {} %s", ps.String()), nil
	case "sum":
		t, err := needTarget()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Exactly %d %s", t, ps.String()), nil
	case "greater":
		t, err := needTarget()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MoreThan %d %s", t, ps.String()), nil
	case "less":
		t, err := needTarget()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("LessThan %d %s", t, ps.String()), nil
	default:
		return "", fmt.Errorf("unknown constraint type %q in %s game", r.Kind, d)
	}
}
