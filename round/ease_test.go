package round

import (
	"math"
	"testing"

	"tactica/grid"
	"tactica/world"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSmootherstep(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.5: 0.5, 1: 1, 2: 1}
	for x, want := range cases {
		if got := Smootherstep(0, 1, x); !near(got, want) {
			t.Errorf("Smootherstep(%v) = %v, want %v", x, got, want)
		}
	}
	// 两端导数为 0：靠近端点时变化比线性慢
	if Smootherstep(0, 1, 0.1) >= 0.1 || Smootherstep(0, 1, 0.9) <= 0.9 {
		t.Fatal("expected ease-in / ease-out")
	}
}

func TestHop(t *testing.T) {
	cases := map[float64]float64{0: 0, 0.25: 0.5, 0.5: 1, 0.75: 0.5, 1: 0}
	for a, want := range cases {
		if got := Hop(a); !near(got, want) {
			t.Errorf("Hop(%v) = %v, want %v", a, got, want)
		}
	}
}

func TestInterpolate(t *testing.T) {
	from, to := grid.C(0, 0), grid.C(2, 1)
	if v := Interpolate(from, to, 0); v != world.CellCenter(from) {
		t.Fatalf("alpha 0 = %+v", v)
	}
	if v := Interpolate(from, to, 1); !near(v.X, 2.5) || !near(v.Y, 1.5) || !near(v.Z, 0) {
		t.Fatalf("alpha 1 = %+v", v)
	}
	mid := Interpolate(from, to, 0.5)
	if !near(mid.X, 1.5) || !near(mid.Y, 1.0) || !near(mid.Z, HopHeight) {
		t.Fatalf("alpha 0.5 = %+v", mid)
	}
}
