package levels

import (
	"testing"

	"github.com/milk9111/levelmaker/canvas"
)

func TestLoadEmbeddedDemo(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	defer func() { Dir = old }()

	snap, err := Load("demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.TileSize != 64 {
		t.Fatalf("expected tile size 64, got %d", snap.TileSize)
	}
	if got := len(snap.Layer(canvas.LayerTerrain)); got != 6 {
		t.Fatalf("expected 6 terrain entries, got %d", got)
	}
	if p, ok := snap.Layer(canvas.LayerFgObjects)[canvas.Point{X: 40, Y: 100}]; !ok || p.TypeID != 0 {
		t.Fatalf("expected the player spawn at 40,100")
	}
}

func TestSaveThenLoad(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	defer func() { Dir = old }()

	snap, err := Load("demo.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Save("copy", snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load("copy")
	if err != nil {
		t.Fatalf("Load copy: %v", err)
	}
	if !back.Equal(snap) {
		t.Fatalf("expected saved level to round trip")
	}

	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 2 || names[0] != "copy" || names[1] != "demo" {
		t.Fatalf("expected [copy demo], got %v", names)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"zero tile size", `{"tile_size": 0, "layers": {}}`},
		{"unknown layer", `{"tile_size": 64, "layers": {"lava": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load("missing"); err == nil {
		t.Fatalf("expected error for a missing level")
	}
}
