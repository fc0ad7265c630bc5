package level

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/ecs"
	"github.com/milk9111/levelmaker/levels"
	"github.com/milk9111/levelmaker/prefabs"
)

const (
	ts        = 64
	playerID  = 0
	skyID     = 1
	terrainID = 2
	waterID   = 3
	goldID    = 4
	spikesID  = 7
	toothID   = 8
	shellID   = 9
	smallFgID = 11
	rightFgID = 14
	smallBgID = 15
)

func loadCatalog(t *testing.T) *prefabs.Catalog {
	t.Helper()
	c, err := prefabs.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

// snapshot builds a snapshot from (layer, x, y, payload) entries.
type entry struct {
	layer   canvas.LayerName
	x, y    int
	id      int
	variant string
}

func snapshot(entries ...entry) canvas.Snapshot {
	s := canvas.Snapshot{TileSize: ts, Layers: map[canvas.LayerName]canvas.Layer{}}
	for _, name := range canvas.LayerOrder {
		s.Layers[name] = canvas.Layer{}
	}
	for _, e := range entries {
		s.Layers[e.layer][canvas.Point{X: e.x, Y: e.y}] = canvas.Payload{TypeID: e.id, Variant: e.variant}
		s.Cols = max(s.Cols, e.x/ts+1)
		s.Rows = max(s.Rows, e.y/ts+1)
	}
	return s
}

func player(x, y int) entry { return entry{canvas.LayerFgObjects, x, y, playerID, ""} }

func terrain(x, y int) entry { return entry{canvas.LayerTerrain, x, y, terrainID, "X"} }

func mustBuild(t *testing.T, snap canvas.Snapshot) *Level {
	t.Helper()
	l, err := Build(snap, loadCatalog(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func TestBuildErrors(t *testing.T) {
	cat := loadCatalog(t)
	tests := []struct {
		name    string
		snap    canvas.Snapshot
		catalog *prefabs.Catalog
		want    error
	}{
		{"no player", snapshot(terrain(0, 0)), cat, ErrNoPlayer},
		{"nil catalog", snapshot(player(0, 0)), nil, ErrNilCatalog},
		{"unknown id", snapshot(player(0, 0), entry{canvas.LayerCoin, 32, 32, 99, ""}), cat, ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.snap, tt.catalog); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := Build(canvas.Snapshot{}, cat); err == nil {
		t.Fatalf("expected error for zero tile size")
	}
}

func TestBuildEntities(t *testing.T) {
	l := mustBuild(t, snapshot(
		terrain(0, 128), terrain(64, 128), terrain(128, 128), terrain(256, 128),
		entry{canvas.LayerEnemies, 64, 64, toothID, ""},
		entry{canvas.LayerEnemies, 256, 64, spikesID, ""},
		entry{canvas.LayerEnemies, 384, 0, shellID, ""},
		entry{canvas.LayerCoin, 352, 32, goldID, ""},
		entry{canvas.LayerWater, 448, 128, waterID, "top"},
		player(0, 0),
		entry{canvas.LayerFgObjects, 0, 300, skyID, ""},
		entry{canvas.LayerFgObjects, 500, 0, rightFgID, ""},
		entry{canvas.LayerFgObjects, 600, 0, smallFgID, ""},
		entry{canvas.LayerBgPalms, 700, 0, smallBgID, ""},
	))
	w := l.World

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"sprites", ecs.Count(w, SpriteComponent.Kind()), 13},
		{"entities", len(l.Entities()), 15},
		{"coins", ecs.Count(w, CoinComponent.Kind()), 1},
		{"hazards", ecs.Count(w, HazardComponent.Kind()), 2},
		{"walkers", ecs.Count(w, WalkerComponent.Kind()), 1},
		{"water", ecs.Count(w, WaterComponent.Kind()), 1},
		// two terrain runs, the shell, the spikes and two palm blocks
		{"solids", ecs.Count(w, SolidComponent.Kind()), 6},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}

	if got := l.Spawn(); got != common.V(0, 0) {
		t.Fatalf("expected spawn at origin, got %+v", got)
	}
	if y, ok := l.Horizon(); !ok || y != 300 {
		t.Fatalf("expected horizon 300, got %v ok=%v", y, ok)
	}

	ecs.ForEach(w, WaterComponent.Kind(), func(_ ecs.Entity, water *Water) {
		if !water.Surface {
			t.Fatalf("expected surface water")
		}
	})
	ecs.ForEach(w, WalkerComponent.Kind(), func(_ ecs.Entity, walker *Walker) {
		if walker.MinX != 0 || walker.MaxX != 128 {
			t.Fatalf("expected walker bounds [0,128], got [%v,%v]", walker.MinX, walker.MaxX)
		}
	})

	var palmXs []float64
	ecs.ForEach2(w, SolidComponent.Kind(), SpriteComponent.Kind(), func(_ ecs.Entity, s *Solid, sp *Sprite) {
		if sp.Layer != canvas.LayerFgObjects {
			return
		}
		if s.W != palmBlockW || s.H != palmBlockH {
			t.Fatalf("expected palm block %dx%d, got %vx%v", palmBlockW, palmBlockH, s.W, s.H)
		}
		palmXs = append(palmXs, s.X)
	})
	if len(palmXs) != 2 || palmXs[0] != 550 || palmXs[1] != 600 {
		t.Fatalf("expected palm blocks at x 550 and 600, got %v", palmXs)
	}
}

func TestTerrainRuns(t *testing.T) {
	tests := []struct {
		name  string
		cells []canvas.Point
		want  []run
	}{
		{"empty", nil, nil},
		{"single", []canvas.Point{{X: 64, Y: 0}}, []run{{X: 64, Y: 0, W: 64}}},
		{"merged", []canvas.Point{{X: 128, Y: 0}, {X: 0, Y: 0}, {X: 64, Y: 0}}, []run{{X: 0, Y: 0, W: 192}}},
		{"gap and rows", []canvas.Point{{X: 0, Y: 64}, {X: 128, Y: 64}, {X: 0, Y: 0}}, []run{
			{X: 0, Y: 0, W: 64},
			{X: 0, Y: 64, W: 64},
			{X: 128, Y: 64, W: 64},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := canvas.Layer{}
			for _, p := range tt.cells {
				layer[p] = canvas.Payload{TypeID: terrainID}
			}
			got := terrainRuns(layer, ts)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestStepCollectsCoin(t *testing.T) {
	l := mustBuild(t, snapshot(player(0, 0), entry{canvas.LayerCoin, 24, 28, goldID, ""}))
	l.Step(1.0 / 60)
	got := l.Collected()
	if len(got) != 1 || got[0] != goldID {
		t.Fatalf("expected gold collected, got %v", got)
	}
	if n := ecs.Count(l.World, CoinComponent.Kind()); n != 0 {
		t.Fatalf("expected coin entity removed, %d left", n)
	}
	l.Step(1.0 / 60)
	if len(l.Collected()) != 1 {
		t.Fatalf("expected the coin to be collected once")
	}
}

func TestHazardRespawnsPlayer(t *testing.T) {
	l := mustBuild(t, snapshot(
		player(128, 0),
		terrain(0, 128), terrain(64, 128), terrain(128, 128),
		entry{canvas.LayerEnemies, 128, 64, spikesID, ""},
	))
	for i := 0; i < 30 && l.Hits() == 0; i++ {
		l.Step(1.0 / 60)
	}
	if l.Hits() == 0 {
		t.Fatalf("expected the player to land on the spikes")
	}
	if got := l.PlayerPosition(); got != l.Spawn() {
		t.Fatalf("expected player back at spawn %+v, got %+v", l.Spawn(), got)
	}
}

func TestWalkerStaysOnRun(t *testing.T) {
	l := mustBuild(t, snapshot(
		player(1000, 0),
		terrain(0, 128), terrain(64, 128), terrain(128, 128), terrain(192, 128),
		entry{canvas.LayerEnemies, 0, 64, toothID, ""},
	))
	tooth, ok := ecs.First(l.World, WalkerComponent.Kind())
	if !ok {
		t.Fatalf("expected a walker")
	}
	tr, _ := ecs.Get(l.World, tooth, TransformComponent.Kind())

	sawMax, backAtMin := false, false
	for i := 0; i < 300; i++ {
		l.Step(1.0 / 60)
		if tr.X < 0 || tr.X > 192 {
			t.Fatalf("step %d: walker left its run at x=%v", i, tr.X)
		}
		if tr.X == 192 {
			sawMax = true
		}
		if sawMax && tr.X == 0 {
			backAtMin = true
		}
	}
	if !sawMax || !backAtMin {
		t.Fatalf("expected the walker to patrol both ends, max=%v min=%v", sawMax, backAtMin)
	}
}

func TestMovePlayer(t *testing.T) {
	l := mustBuild(t, snapshot(player(0, 0), terrain(0, 64), terrain(64, 64), terrain(128, 64)))
	start := l.PlayerPosition()
	for i := 0; i < 20; i++ {
		l.Move(1)
		l.Step(1.0 / 60)
	}
	if got := l.PlayerPosition(); got.X <= start.X {
		t.Fatalf("expected the player to move right, start %+v now %+v", start, got)
	}
}

func TestBuildDemoLevel(t *testing.T) {
	snap, err := levels.Load("demo")
	if err != nil {
		t.Fatalf("levels.Load: %v", err)
	}
	l := mustBuild(t, snap)
	if n := ecs.Count(l.World, CoinComponent.Kind()); n != 2 {
		t.Fatalf("expected 2 coins, got %d", n)
	}
	if _, ok := l.Horizon(); !ok {
		t.Fatalf("expected the demo to carry a horizon")
	}

	for i := 0; i < 60; i++ {
		l.Step(1.0 / 60)
	}
	// The 56 px tall player lands on the terrain row at y=192.
	if got := l.PlayerPosition(); math.Abs(got.Y-136) > 2 {
		t.Fatalf("expected the player to rest on the ground, got y=%v", got.Y)
	}
	if l.Hits() != 0 {
		t.Fatalf("expected no hazard contact, got %d", l.Hits())
	}
}
