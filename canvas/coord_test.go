package canvas

import (
	"testing"

	"github.com/milk9111/levelmaker/common"
)

func TestCellOfFloorsAroundZero(t *testing.T) {
	cases := []struct {
		name   string
		pos    common.Vec
		origin common.Vec
		want   Cell
	}{
		{"origin", common.V(0, 0), common.Vec{}, Cell{0, 0}},
		{"just_negative", common.V(-1, -1), common.Vec{}, Cell{-1, -1}},
		{"fraction_negative", common.V(-0.25, 0.25), common.Vec{}, Cell{-1, 0}},
		{"last_pixel_of_first_cell", common.V(63, 63), common.Vec{}, Cell{0, 0}},
		{"next_cell", common.V(64, 0), common.Vec{}, Cell{1, 0}},
		{"negative_boundary", common.V(-64, -64), common.Vec{}, Cell{-1, -1}},
		{"past_negative_boundary", common.V(-65, -128), common.Vec{}, Cell{-2, -2}},
		{"panned_origin", common.V(100, 100), common.V(40, 40), Cell{0, 0}},
		{"panned_origin_left", common.V(39, 104), common.V(40, 40), Cell{-1, 1}},
		{"negative_origin", common.V(0, 0), common.V(-130, -64), Cell{2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CellOf(tc.pos, tc.origin, 64); got != tc.want {
				t.Fatalf("CellOf(%+v, %+v) = %v, want %v", tc.pos, tc.origin, got, tc.want)
			}
		})
	}
}

func TestCellOfMatchesFloorDivisionSweep(t *testing.T) {
	const ts = 16
	origin := common.V(7, -3)
	for px := -70; px <= 70; px++ {
		pos := common.V(float64(px), float64(-px))
		got := CellOf(pos, origin, ts)
		dx := px - 7
		dy := -px + 3
		want := Cell{floorInt(dx, ts), floorInt(dy, ts)}
		if got != want {
			t.Fatalf("CellOf(%v) = %v, want %v", pos, got, want)
		}
	}
}

func floorInt(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func TestPixelOfIsInverse(t *testing.T) {
	origin := common.V(-33, 12)
	for _, cell := range []Cell{{0, 0}, {-1, -1}, {5, -7}, {-12, 3}} {
		tl := PixelOf(cell, origin, 64)
		if got := CellOf(tl, origin, 64); got != cell {
			t.Fatalf("CellOf(PixelOf(%v)) = %v", cell, got)
		}
		inner := tl.Add(common.V(63.5, 63.5))
		if got := CellOf(inner, origin, 64); got != cell {
			t.Fatalf("inner pixel of %v mapped to %v", cell, got)
		}
	}
}

func TestCellKeyRoundTrip(t *testing.T) {
	for _, cell := range []Cell{{0, 0}, {-1, 0}, {0, -1}, {123456, -654321}, {-2147483648, 2147483647}} {
		if got := CellFromKey(cell.Key()); got != cell {
			t.Fatalf("CellFromKey(Key(%v)) = %v", cell, got)
		}
	}
	if (Cell{1, 2}).Key() == (Cell{2, 1}).Key() {
		t.Fatalf("keys for (1,2) and (2,1) collide")
	}
}
