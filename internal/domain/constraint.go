package domain

import (
	"fmt"
	"strings"
)

// ConstraintKind tags the closed set of region constraint variants.
type ConstraintKind uint8

const (
	KindAllSame ConstraintKind = iota
	KindAllDifferent
	KindLessThan
	KindExactly
	KindMoreThan
)

func (k ConstraintKind) String() string {
	switch k {
	case KindAllSame:
		return "AllSame"
	case KindAllDifferent:
		return "AllDifferent"
	case KindLessThan:
		return "LessThan"
	case KindExactly:
		return "Exactly"
	default:
		return "MoreThan"
	}
}

// Constraint is a tagged variant over a region of cells. Only the fields for
// its kind are meaningful: Target for AllSame, Forbidden for AllDifferent,
// Bound for the three sum kinds. A constraint with no points is the
// distinguished empty constraint, trivially satisfied and dropped from
// constraint sets.
//
// The New* constructors enforce the construction invariants. Reduction
// results are built directly and are not re-validated: a residual constraint
// encodes an obligation, not a freshly loaded region.
type Constraint struct {
	Kind      ConstraintKind
	Target    *Pips  // AllSame: fixed once the first cell is assigned
	Forbidden PipSet // AllDifferent: values already used in the region
	Bound     int    // LessThan / Exactly / MoreThan
	Points    PointSet
}

// Empty is the universal "trivially satisfied, remove me" sentinel.
func Empty() Constraint { return Constraint{} }

// IsEmpty reports whether the constraint is fully discharged.
func (c Constraint) IsEmpty() bool { return len(c.Points) == 0 }

// NewAllSame requires every cell in the region to hold the same value.
// target may be nil; the first assignment then fixes it. A region with no
// target needs at least two cells to say anything; once a target is fixed
// a single remaining cell is still a real obligation.
func NewAllSame(target *Pips, points PointSet) (Constraint, error) {
	if len(points) == 0 {
		return Constraint{}, fmt.Errorf("AllSame needs a non-empty region")
	}
	if target == nil && len(points) < 2 {
		return Constraint{}, fmt.Errorf("AllSame without a target needs at least 2 cells, got %d", len(points))
	}
	return Constraint{Kind: KindAllSame, Target: target, Points: points}, nil
}

// NewAllDifferent forbids any two cells in the region sharing a value.
// forbidden carries values already placed; nil means none.
func NewAllDifferent(forbidden PipSet, points PointSet) (Constraint, error) {
	if forbidden == nil {
		forbidden = NewPipSet()
	}
	if len(forbidden)+len(points) > MaxPips+1 {
		return Constraint{}, fmt.Errorf(
			"AllDifferent over %d cells with %d forbidden values cannot be satisfied with %d distinct values",
			len(points), len(forbidden), MaxPips+1)
	}
	if len(forbidden) == 0 && len(points) < 2 {
		return Constraint{}, fmt.Errorf("AllDifferent needs at least 2 cells, got %d", len(points))
	}
	return Constraint{Kind: KindAllDifferent, Forbidden: forbidden, Points: points}, nil
}

// NewLessThan requires the region sum to stay strictly below bound.
func NewLessThan(bound int, points PointSet) (Constraint, error) {
	if bound <= 0 || bound >= MaxPips*len(points) {
		return Constraint{}, fmt.Errorf(
			"LessThan bound %d is outside 0 < bound < %d for %d cells", bound, MaxPips*len(points), len(points))
	}
	return Constraint{Kind: KindLessThan, Bound: bound, Points: points}, nil
}

// NewExactly requires the region sum to equal bound.
func NewExactly(bound int, points PointSet) (Constraint, error) {
	if bound < 0 || bound > MaxPips*len(points) {
		return Constraint{}, fmt.Errorf(
			"Exactly bound %d is unreachable over %d cells (max %d)", bound, len(points), MaxPips*len(points))
	}
	return Constraint{Kind: KindExactly, Bound: bound, Points: points}, nil
}

// NewMoreThan requires the region sum to exceed bound.
func NewMoreThan(bound int, points PointSet) (Constraint, error) {
	if bound < 0 || bound > MaxPips*len(points) {
		return Constraint{}, fmt.Errorf(
			"MoreThan bound %d is unreachable over %d cells (max %d)", bound, len(points), MaxPips*len(points))
	}
	return Constraint{Kind: KindMoreThan, Bound: bound, Points: points}, nil
}

// Equal compares kind, variant state, and region by set equality.
func (c Constraint) Equal(o Constraint) bool {
	if c.IsEmpty() && o.IsEmpty() {
		return true
	}
	if c.Kind != o.Kind || !c.Points.Equal(o.Points) {
		return false
	}
	switch c.Kind {
	case KindAllSame:
		if (c.Target == nil) != (o.Target == nil) {
			return false
		}
		return c.Target == nil || *c.Target == *o.Target
	case KindAllDifferent:
		return c.Forbidden.Equal(o.Forbidden)
	default:
		return c.Bound == o.Bound
	}
}

func (c Constraint) String() string {
	if c.IsEmpty() {
		return "Empty"
	}
	var sb strings.Builder
	sb.WriteString(c.Kind.String())
	sb.WriteByte(' ')
	switch c.Kind {
	case KindAllSame:
		if c.Target == nil {
			sb.WriteString("None")
		} else {
			fmt.Fprintf(&sb, "%d", *c.Target)
		}
	case KindAllDifferent:
		sb.WriteByte('{')
		for i, v := range c.Forbidden.Sorted() {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", v)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(&sb, "%d", c.Bound)
	}
	sb.WriteString(" {")
	for i, p := range c.Points.Sorted() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
