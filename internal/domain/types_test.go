package domain

import "testing"

func TestNewPieceCanonical(t *testing.T) {
	if p := NewPiece(5, 2); p.Lo != 2 || p.Hi != 5 {
		t.Fatalf("NewPiece(5,2) = %v, want 2-5", p)
	}
	if NewPiece(5, 2) != NewPiece(2, 5) {
		t.Fatal("NewPiece not order-independent")
	}
	if !NewPiece(3, 3).IsDoubleton() {
		t.Fatal("3-3 should be a doubleton")
	}
	if NewPiece(3, 4).IsDoubleton() {
		t.Fatal("3-4 should not be a doubleton")
	}
}

func TestNewPipsRange(t *testing.T) {
	for _, v := range []int{-1, 7, 100} {
		if _, err := NewPips(v); err == nil {
			t.Errorf("NewPips(%d) should fail", v)
		}
	}
	for v := 0; v <= MaxPips; v++ {
		if _, err := NewPips(v); err != nil {
			t.Errorf("NewPips(%d) failed: %v", v, err)
		}
	}
}

func TestPointLess(t *testing.T) {
	// Topmost wins, then leftmost.
	if !(Point{X: 5, Y: 0}).Less(Point{X: 0, Y: 1}) {
		t.Fatal("(5,0) should order before (0,1)")
	}
	if !(Point{X: 0, Y: 1}).Less(Point{X: 1, Y: 1}) {
		t.Fatal("(0,1) should order before (1,1)")
	}
	if (Point{X: 1, Y: 1}).Less(Point{X: 1, Y: 1}) {
		t.Fatal("a point should not order before itself")
	}
}

func TestRemoveOnePiece(t *testing.T) {
	pieces := []Piece{NewPiece(1, 2), NewPiece(3, 3), NewPiece(1, 2)}

	out, err := RemoveOnePiece(pieces, NewPiece(2, 1))
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d pieces, want 2", len(out))
	}
	// Exactly one occurrence of the duplicate goes.
	dups := 0
	for _, p := range out {
		if p == NewPiece(1, 2) {
			dups++
		}
	}
	if dups != 1 {
		t.Fatalf("got %d copies of 1-2, want 1", dups)
	}
	// Input slice untouched.
	if len(pieces) != 3 {
		t.Fatal("input multiset was mutated")
	}

	if _, err := RemoveOnePiece(pieces, NewPiece(6, 6)); err == nil {
		t.Fatal("removing an absent piece should fail")
	}
}

func TestDistinctPieces(t *testing.T) {
	in := []Piece{NewPiece(1, 2), NewPiece(2, 1), NewPiece(3, 3), NewPiece(1, 2)}
	out := DistinctPieces(in)
	want := []Piece{NewPiece(1, 2), NewPiece(3, 3)}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestPlacementAssignments(t *testing.T) {
	piece := NewPiece(2, 5) // lo=2, hi=5
	anchor := Point{X: 3, Y: 4}

	cases := []struct {
		dir  Direction
		want [2]Assignment
	}{
		{North, [2]Assignment{{5, Point{3, 4}}, {2, Point{3, 5}}}},
		{South, [2]Assignment{{2, Point{3, 4}}, {5, Point{3, 5}}}},
		{East, [2]Assignment{{2, Point{3, 4}}, {5, Point{4, 4}}}},
		{West, [2]Assignment{{5, Point{3, 4}}, {2, Point{4, 4}}}},
	}
	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			got := Placement{Piece: piece, Point: anchor, Direction: tc.dir}.Assignments()
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlacementAssignmentsDoubleton(t *testing.T) {
	pl := Placement{Piece: NewPiece(4, 4), Point: Point{X: 0, Y: 0}}
	north := Placement{Piece: pl.Piece, Point: pl.Point, Direction: North}.Assignments()
	south := Placement{Piece: pl.Piece, Point: pl.Point, Direction: South}.Assignments()
	if north != south {
		t.Fatalf("doubleton north %v != south %v", north, south)
	}
	east := Placement{Piece: pl.Piece, Point: pl.Point, Direction: East}.Assignments()
	west := Placement{Piece: pl.Piece, Point: pl.Point, Direction: West}.Assignments()
	if east != west {
		t.Fatalf("doubleton east %v != west %v", east, west)
	}
}
