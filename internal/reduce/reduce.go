// Package reduce implements the incremental constraint-reduction algebra:
// given one pinned (pips, cell) fact, each constraint either rejects it or
// shrinks to the residual obligation on its remaining cells.
package reduce

import (
	"errors"
	"fmt"

	"svw.info/pips/internal/domain"
)

// ErrConstraint is the generic recoverable "this branch is dead" signal for
// a constraint rejection. Individual rules wrap it with diagnostics.
var ErrConstraint = errors.New("constraint violated")

// Assignment reduces a single constraint by a single assignment. A
// constraint whose region does not contain the assigned cell is returned
// unchanged. The empty constraint result means fully discharged.
func Assignment(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	if c.IsEmpty() || !c.Points.Contains(a.Point) {
		return c, nil
	}
	switch c.Kind {
	case domain.KindAllSame:
		return reduceAllSame(c, a)
	case domain.KindAllDifferent:
		return reduceAllDifferent(c, a)
	case domain.KindExactly:
		return reduceExactly(c, a)
	case domain.KindLessThan:
		return reduceLessThan(c, a)
	default:
		return reduceMoreThan(c, a)
	}
}

func reduceAllSame(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	if c.Target != nil && *c.Target != a.Pips {
		return domain.Empty(), fmt.Errorf("%w: region is fixed to %d, got %d at %s",
			ErrConstraint, *c.Target, a.Pips, a.Point)
	}
	rest := c.Points.Without(a.Point)
	switch len(c.Points) {
	case 1:
		return domain.Empty(), nil
	case 2:
		// One cell left and the target is known (or just fixed): the
		// remaining cell must hold exactly that value.
		return domain.Constraint{Kind: domain.KindExactly, Bound: int(a.Pips), Points: rest}, nil
	default:
		target := a.Pips
		return domain.Constraint{Kind: domain.KindAllSame, Target: &target, Points: rest}, nil
	}
}

func reduceAllDifferent(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	if c.Forbidden.Contains(a.Pips) {
		return domain.Empty(), fmt.Errorf("%w: value %d already used in region at %s",
			ErrConstraint, a.Pips, a.Point)
	}
	rest := c.Points.Without(a.Point)
	if len(rest) == 0 {
		return domain.Empty(), nil
	}
	return domain.Constraint{
		Kind:      domain.KindAllDifferent,
		Forbidden: c.Forbidden.With(a.Pips),
		Points:    rest,
	}, nil
}

func reduceExactly(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	v := int(a.Pips)
	if len(c.Points) == 1 {
		if v != c.Bound {
			return domain.Empty(), fmt.Errorf("%w: last cell %s needs %d, got %d",
				ErrConstraint, a.Point, c.Bound, v)
		}
		return domain.Empty(), nil
	}
	if v > c.Bound {
		return domain.Empty(), fmt.Errorf("%w: value %d at %s exceeds remaining target %d",
			ErrConstraint, v, a.Point, c.Bound)
	}
	rest := c.Points.Without(a.Point)
	remaining := c.Bound - v
	if remaining > domain.MaxPips*len(rest) {
		return domain.Empty(), fmt.Errorf("%w: remaining target %d unreachable over %d cells",
			ErrConstraint, remaining, len(rest))
	}
	return domain.Constraint{Kind: domain.KindExactly, Bound: remaining, Points: rest}, nil
}

func reduceLessThan(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	v := int(a.Pips)
	if v >= c.Bound {
		return domain.Empty(), fmt.Errorf("%w: value %d at %s reaches bound %d",
			ErrConstraint, v, a.Point, c.Bound)
	}
	if len(c.Points) == 1 {
		return domain.Empty(), nil
	}
	rest := c.Points.Without(a.Point)
	remaining := c.Bound - v
	if remaining == 1 && len(c.Points) == 2 {
		// The last cell must stay below 1, i.e. be zero.
		return domain.Constraint{Kind: domain.KindExactly, Bound: 0, Points: rest}, nil
	}
	return domain.Constraint{Kind: domain.KindLessThan, Bound: remaining, Points: rest}, nil
}

func reduceMoreThan(c domain.Constraint, a domain.Assignment) (domain.Constraint, error) {
	v := int(a.Pips)
	if len(c.Points) == 1 {
		if v <= c.Bound {
			return domain.Empty(), fmt.Errorf("%w: last cell %s needs more than %d, got %d",
				ErrConstraint, a.Point, c.Bound, v)
		}
		return domain.Empty(), nil
	}
	rest := c.Points.Without(a.Point)
	remaining := c.Bound - v
	if remaining < 0 {
		remaining = 0
	}
	if remaining == domain.MaxPips-1 && len(c.Points) == 2 {
		// The last cell must exceed 5, i.e. be exactly 6.
		return domain.Constraint{Kind: domain.KindExactly, Bound: domain.MaxPips, Points: rest}, nil
	}
	return domain.Constraint{Kind: domain.KindMoreThan, Bound: remaining, Points: rest}, nil
}

// Placement folds a placement's two assignments through a constraint in
// order, short-circuiting on the first rejection. A placement satisfies the
// constraint iff this fold succeeds.
func Placement(c domain.Constraint, pl domain.Placement) (domain.Constraint, error) {
	out := c
	for _, a := range pl.Assignments() {
		if out.IsEmpty() {
			return out, nil
		}
		next, err := Assignment(out, a)
		if err != nil {
			return domain.Empty(), err
		}
		out = next
	}
	return out, nil
}

// Set reduces every constraint in the set by the placement, dropping fully
// discharged constraints. Any individual rejection fails the whole set with
// the generic ErrConstraint; which constraint rejected is diagnostics only.
func Set(constraints []domain.Constraint, pl domain.Placement) ([]domain.Constraint, error) {
	out := make([]domain.Constraint, 0, len(constraints))
	for _, c := range constraints {
		next, err := Placement(c, pl)
		if err != nil {
			return nil, err
		}
		if next.IsEmpty() {
			continue
		}
		out = append(out, next)
	}
	return out, nil
}
