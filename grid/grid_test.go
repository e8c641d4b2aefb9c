package grid

import (
	"testing"

	"tactica/entity"
)

func TestGrid_OutOfBoundsIsAbsent(t *testing.T) {
	g := New(4)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if _, ok := g.Get(c); ok {
			t.Fatalf("Get%v should be absent", c)
		}
		if g.At(c) != nil {
			t.Fatalf("At%v should be nil", c)
		}
		if g.IsBlocked(c) {
			t.Fatalf("IsBlocked%v should be false when absent", c)
		}
		if g.IsWalkable(c) {
			t.Fatalf("IsWalkable%v should be false when absent", c)
		}
	}
}

func TestGrid_MutateThroughAt(t *testing.T) {
	g := New(3)
	g.At(C(1, 2)).Blocked = true
	g.At(C(2, 1)).Walkable = true
	if !g.IsBlocked(C(1, 2)) {
		t.Fatal("expected (1,2) blocked")
	}
	if g.IsBlocked(C(2, 1)) || !g.IsWalkable(C(2, 1)) {
		t.Fatal("expected (2,1) walkable and unblocked")
	}
	if g.Size() != 3 {
		t.Fatalf("size = %d, want 3", g.Size())
	}
}

func TestGrid_Occupant(t *testing.T) {
	g := New(2)
	a, b := entity.Ref("a"), entity.Ref("b")
	g.SetOccupant(C(0, 0), a)
	g.ClearOccupant(C(0, 0), b)
	if cell, _ := g.Get(C(0, 0)); cell.Occupant != a {
		t.Fatalf("occupant = %q, want a", cell.Occupant)
	}
	g.ClearOccupant(C(0, 0), a)
	if cell, _ := g.Get(C(0, 0)); !cell.Occupant.IsNone() {
		t.Fatal("occupant should be cleared")
	}
	g.SetOccupant(C(9, 9), a) // 越界忽略
}

func TestCoord_Chebyshev(t *testing.T) {
	if d := C(0, 0).Chebyshev(C(3, -1)); d != 3 {
		t.Fatalf("got %d want 3", d)
	}
}
