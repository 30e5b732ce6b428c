package solver

import (
	"context"

	"svw.info/pips/internal/domain"
)

// Tileable answers whether the open board can be exactly covered by
// dominoes at all, ignoring pip values and constraints. It is an Algorithm X
// / Dancing Links existence check over the exact-cover mapping:
//
//	columns: one per open cell
//	rows:    one per candidate domino position — a cell paired with its
//	         open right neighbor, or with its open lower neighbor
//
// A board that fails this check is unsolvable no matter which pieces remain,
// so callers can answer "unsolvable" without entering the value search. An
// odd number of open cells fails immediately.
func Tileable(ctx context.Context, b domain.Board) bool {
	if b.IsEmpty() {
		return true
	}
	if b.Len()%2 != 0 {
		return false
	}
	d := newTiling(b)
	if d == nil {
		return false
	}
	return d.search(ctx)
}

// node/column structures (classic dancing links)
type tnode struct {
	left, right, up, down *tnode
	col                   *tcolumn
}

type tcolumn struct {
	tnode
	size       int
	prev, next *tcolumn // active-column ring
}

type tiling struct {
	head   tcolumn // sentinel of the active-column ring
	active int
}

// newTiling builds the sparse matrix. Returns nil when some open cell has no
// candidate position at all (an isolated cell).
func newTiling(b domain.Board) *tiling {
	d := &tiling{}
	d.head.prev = &d.head
	d.head.next = &d.head

	cols := make(map[domain.Point]*tcolumn, b.Len())
	for _, p := range b.Sorted() {
		c := &tcolumn{}
		c.up = &c.tnode
		c.down = &c.tnode
		c.col = c
		// append to active ring
		c.prev = d.head.prev
		c.next = &d.head
		d.head.prev.next = c
		d.head.prev = c
		cols[p] = c
		d.active++
	}

	addRow := func(a, b domain.Point) {
		ca, cb := cols[a], cols[b]
		na := &tnode{col: ca}
		nb := &tnode{col: cb}
		na.left, na.right = nb, nb
		nb.left, nb.right = na, na
		for _, n := range [2]*tnode{na, nb} {
			c := n.col
			n.down = &c.tnode
			n.up = c.tnode.up
			c.tnode.up.down = n
			c.tnode.up = n
			c.size++
		}
	}

	for _, p := range b.Sorted() {
		if right := (domain.Point{X: p.X + 1, Y: p.Y}); b.Contains(right) {
			addRow(p, right)
		}
		if down := (domain.Point{X: p.X, Y: p.Y + 1}); b.Contains(down) {
			addRow(p, down)
		}
	}

	for _, c := range cols {
		if c.size == 0 {
			return nil
		}
	}
	return d
}

func (d *tiling) cover(col *tcolumn) {
	col.prev.next = col.next
	col.next.prev = col.prev
	d.active--
	for i := col.down; i != &col.tnode; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *tiling) uncover(col *tcolumn) {
	for i := col.up; i != &col.tnode; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	col.prev.next = col
	col.next.prev = col
	d.active++
}

// chooseColumn picks the active column with the fewest candidate positions.
func (d *tiling) chooseColumn() *tcolumn {
	var best *tcolumn
	for c := d.head.next; c != &d.head; c = c.next {
		if best == nil || c.size < best.size {
			best = c
			if best.size == 0 {
				break
			}
		}
	}
	return best
}

func (d *tiling) search(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}
	if d.active == 0 {
		return true
	}
	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.tnode; r = r.down {
		for j := r.right; j != r; j = j.right {
			d.cover(j.col)
		}
		if d.search(ctx) {
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}
