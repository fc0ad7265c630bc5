package stamp

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/levelmaker/prefabs"
)

func loadCatalog(t *testing.T) *prefabs.Catalog {
	t.Helper()
	c, err := prefabs.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func TestRunPlaceByNameAndID(t *testing.T) {
	cat := loadCatalog(t)
	src := []byte(`
place(0, 0, "terrain")
place(1, -1, 3)
place(2, 0, tile.gold)
`)
	res, err := Run(context.Background(), src, Params{Width: 1, Height: 1}, cat)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []Edit{{0, 0, 2}, {1, -1, 3}, {2, 0, 4}}
	if len(res.Edits) != len(want) {
		t.Fatalf("expected %d edits, got %d", len(want), len(res.Edits))
	}
	for i := range want {
		if res.Edits[i] != want[i] {
			t.Fatalf("edit %d: expected %+v, got %+v", i, want[i], res.Edits[i])
		}
	}
	if res.OffsetCol != 0 || res.OffsetRow != 0 {
		t.Fatalf("expected zero offset, got %d,%d", res.OffsetCol, res.OffsetRow)
	}
}

func TestRunErrors(t *testing.T) {
	cat := loadCatalog(t)
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown name", `place(0, 0, "lava")`, ErrUnknownType},
		{"unknown id", `place(0, 0, 99)`, ErrUnknownType},
		{"bad type argument", `place(0, 0, [1])`, ErrBadArgument},
		{"bad col", `place("a", 0, "terrain")`, ErrBadArgument},
		{"bad offset", "initial_offset := [1]", ErrBadArgument},
		{"too many", `for i := 0; i < 5000; i++ { place(i, 0, "terrain") }`, ErrTooManyEdits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), []byte(tt.src), Params{}, cat)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunSyntaxError(t *testing.T) {
	cat := loadCatalog(t)
	if _, err := Run(context.Background(), []byte("place(("), Params{}, cat); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRunInitialOffset(t *testing.T) {
	cat := loadCatalog(t)
	src := []byte(`
initial_offset := [-1, -2]
place(0, 0, "water")
`)
	res, err := Run(context.Background(), src, Params{}, cat)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OffsetCol != -1 || res.OffsetRow != -2 {
		t.Fatalf("expected offset -1,-2, got %d,%d", res.OffsetCol, res.OffsetRow)
	}
}

func TestEmbeddedStamps(t *testing.T) {
	cat := loadCatalog(t)
	params := Params{Width: 5, Height: 3}
	tests := []struct {
		name  string
		count int
		check func(t *testing.T, edits []Edit)
	}{
		{"platform", 10, func(t *testing.T, edits []Edit) {
			for _, e := range edits {
				if e.TypeID != 2 {
					t.Fatalf("platform placed non-terrain %+v", e)
				}
			}
		}},
		// floor of 5 plus two walls of 2 plus 3 columns of 1 water.
		{"pool", 12, func(t *testing.T, edits []Edit) {
			water := 0
			for _, e := range edits {
				if e.TypeID == 3 {
					water++
				}
			}
			if water != 3 {
				t.Fatalf("expected 3 water cells, got %d", water)
			}
		}},
		{"coin_arc", 5, func(t *testing.T, edits []Edit) {
			if edits[2].TypeID != 6 {
				t.Fatalf("expected diamond at the middle, got %+v", edits[2])
			}
			for _, e := range edits {
				if e.Row > 0 {
					t.Fatalf("arc should rise above the anchor, got %+v", e)
				}
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := RunNamed(context.Background(), tt.name, params, cat)
			if err != nil {
				t.Fatalf("RunNamed: %v", err)
			}
			if len(res.Edits) != tt.count {
				t.Fatalf("expected %d edits, got %d", tt.count, len(res.Edits))
			}
			tt.check(t, res.Edits)
		})
	}
}

func TestRunNamedMissing(t *testing.T) {
	cat := loadCatalog(t)
	if _, err := RunNamed(context.Background(), "nope", Params{}, cat); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
