package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/loader"
	"svw.info/pips/internal/ports"
)

// RandomGenerator builds solvable puzzles: it tiles a rectangle with
// dominoes, assigns pip values, derives the piece multiset, carves
// constraint regions consistent with the hidden assignment, and confirms
// solvability with the provided solver. Deterministic per seed.
type RandomGenerator struct {
	Solver ports.Solver
}

func NewRandomGenerator(s ports.Solver) *RandomGenerator {
	return &RandomGenerator{Solver: s}
}

// boardDims returns width, height, and the number of constraint regions to
// carve for a difficulty. Cell counts are even by construction.
func boardDims(d domain.Difficulty) (w, h, regions int) {
	switch d {
	case domain.Easy:
		return 4, 3, 2
	case domain.Hard:
		return 6, 5, 5
	default:
		return 5, 4, 3
	}
}

func (g *RandomGenerator) Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	w, h, regionCount := boardDims(d)

	tiling, ok := tileRect(rng, w, h)
	if !ok {
		return nil, ports.Stats{}, errors.New("could not tile board")
	}

	values := make(map[domain.Point]domain.Pips, w*h)
	var points []domain.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := domain.Point{X: x, Y: y}
			points = append(points, p)
			values[p] = domain.Pips(rng.Intn(domain.MaxPips + 1))
		}
	}

	pieces := make([]domain.Piece, 0, len(tiling))
	for _, dom := range tiling {
		pieces = append(pieces, domain.NewPiece(values[dom[0]], values[dom[1]]))
	}

	constraints, err := carveRegions(rng, points, values, regionCount)
	if err != nil {
		return nil, ports.Stats{}, err
	}

	game := domain.NewGame(domain.NewBoard(points...), pieces, constraints)
	text := loader.New().Format(game)

	// The hidden assignment is a solution by construction; the solve run is
	// a sanity check and supplies node statistics.
	_, st, err := g.Solver.Solve(ctx, game)
	if err != nil {
		return nil, st, fmt.Errorf("generated puzzle failed solvability check: %w", err)
	}

	return &domain.Puzzle{
		Seed:       seed,
		Difficulty: d,
		Text:       text,
		CreatedAt:  time.Now().UnixNano(),
	}, ports.Stats{Nodes: st.Nodes, Duration: time.Since(start)}, nil
}

// tileRect covers a w×h rectangle with dominoes by randomized depth-first
// search, pairing the canonical open cell with its right or lower neighbor.
func tileRect(rng *rand.Rand, w, h int) ([][2]domain.Point, bool) {
	open := domain.NewPointSet()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			open[domain.Point{X: x, Y: y}] = struct{}{}
		}
	}
	var tiling [][2]domain.Point
	var dfs func() bool
	dfs = func() bool {
		if len(open) == 0 {
			return true
		}
		var anchor domain.Point
		found := false
		for p := range open {
			if !found || p.Less(anchor) {
				anchor, found = p, true
			}
		}
		neighbors := [2]domain.Point{
			{X: anchor.X + 1, Y: anchor.Y},
			{X: anchor.X, Y: anchor.Y + 1},
		}
		order := [2]int{0, 1}
		if rng.Intn(2) == 1 {
			order = [2]int{1, 0}
		}
		for _, i := range order {
			n := neighbors[i]
			if !open.Contains(n) {
				continue
			}
			delete(open, anchor)
			delete(open, n)
			tiling = append(tiling, [2]domain.Point{anchor, n})
			if dfs() {
				return true
			}
			tiling = tiling[:len(tiling)-1]
			open[anchor] = struct{}{}
			open[n] = struct{}{}
		}
		return false
	}
	return tiling, dfs()
}

// carveRegions grows count disjoint regions of 2..4 cells and emits one
// constraint per region, chosen among the kinds the hidden values satisfy.
func carveRegions(rng *rand.Rand, points []domain.Point, values map[domain.Point]domain.Pips, count int) ([]domain.Constraint, error) {
	unused := domain.NewPointSet(points...)
	var constraints []domain.Constraint
	for i := 0; i < count && len(unused) >= 2; i++ {
		region := growRegion(rng, unused, 2+rng.Intn(3))
		if len(region) < 2 {
			break
		}
		c, err := constraintFor(rng, region, values)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

// growRegion picks a random seed cell and grows by random open neighbors.
func growRegion(rng *rand.Rand, unused domain.PointSet, size int) domain.PointSet {
	candidates := unused.Sorted()
	seedCell := candidates[rng.Intn(len(candidates))]
	region := domain.NewPointSet(seedCell)
	delete(unused, seedCell)
	for len(region) < size {
		var frontier []domain.Point
		for p := range region {
			for _, n := range []domain.Point{
				{X: p.X + 1, Y: p.Y}, {X: p.X - 1, Y: p.Y},
				{X: p.X, Y: p.Y + 1}, {X: p.X, Y: p.Y - 1},
			} {
				if unused.Contains(n) && !region.Contains(n) {
					frontier = append(frontier, n)
				}
			}
		}
		if len(frontier) == 0 {
			break
		}
		next := frontier[rng.Intn(len(frontier))]
		region[next] = struct{}{}
		delete(unused, next)
	}
	return region
}

// constraintFor picks a constraint kind the region's hidden values satisfy.
func constraintFor(rng *rand.Rand, region domain.PointSet, values map[domain.Point]domain.Pips) (domain.Constraint, error) {
	sum := 0
	allSame, allDiff := true, true
	seen := domain.NewPipSet()
	var first domain.Pips
	for i, p := range region.Sorted() {
		v := values[p]
		sum += int(v)
		if i == 0 {
			first = v
		} else if v != first {
			allSame = false
		}
		if seen.Contains(v) {
			allDiff = false
		}
		seen[v] = struct{}{}
	}

	n := len(region)
	type builder func() (domain.Constraint, error)
	var options []builder
	options = append(options, func() (domain.Constraint, error) {
		return domain.NewExactly(sum, region)
	})
	if sum+1 < domain.MaxPips*n {
		options = append(options, func() (domain.Constraint, error) {
			return domain.NewLessThan(sum+1, region)
		})
	}
	if sum > 0 {
		options = append(options, func() (domain.Constraint, error) {
			return domain.NewMoreThan(sum-1, region)
		})
	}
	if allSame {
		options = append(options, func() (domain.Constraint, error) {
			return domain.NewAllSame(nil, region)
		})
	}
	if allDiff {
		options = append(options, func() (domain.Constraint, error) {
			return domain.NewAllDifferent(nil, region)
		})
	}
	return options[rng.Intn(len(options))]()
}
