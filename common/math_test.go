package common

import "testing"

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		v    float64
		size float64
		want int
	}{
		{0, 64, 0},
		{1, 64, 0},
		{63, 64, 0},
		{63.999, 64, 0},
		{64, 64, 1},
		{-0.5, 64, -1},
		{-1, 64, -1},
		{-63, 64, -1},
		{-64, 64, -1},
		{-65, 64, -2},
		{-128, 64, -2},
		{130, 64, 2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.v, c.size); got != c.want {
			t.Errorf("FloorDiv(%v, %v) = %d, want %d", c.v, c.size, got, c.want)
		}
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)
	if got := a.Add(b); got != V(4, 2) {
		t.Fatalf("Add = %+v", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Fatalf("Scale = %+v", got)
	}
	if got := a.Len(); got != 5 {
		t.Fatalf("Len = %v", got)
	}
	if x, y := V(12.9, -3.7).Round(); x != 12 || y != -3 {
		t.Fatalf("Round = %d,%d", x, y)
	}
}
