package canvas

import (
	"maps"

	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/prefabs"
)

// LayerName names one layer of the export snapshot. The names are part of
// the contract with the level builder.
type LayerName string

const (
	LayerWater     LayerName = "water"
	LayerBgPalms   LayerName = "bg palms"
	LayerTerrain   LayerName = "terrain"
	LayerEnemies   LayerName = "enemies"
	LayerCoin      LayerName = "coin"
	LayerFgObjects LayerName = "fg objects"
)

// LayerOrder is the bottom-to-top draw order.
var LayerOrder = []LayerName{
	LayerWater,
	LayerBgPalms,
	LayerTerrain,
	LayerEnemies,
	LayerCoin,
	LayerFgObjects,
}

// Point is a zero-based pixel coordinate in the exported level.
type Point struct {
	X int
	Y int
}

// Payload is the value stored at a layer point. Variant is set for terrain
// (autotile key) and water ("top"/"bottom").
type Payload struct {
	TypeID  int
	Variant string
}

type Layer map[Point]Payload

// Snapshot is the bounded, layered level produced by Export. It holds no
// references into the canvas it came from.
type Snapshot struct {
	TileSize int
	Cols     int
	Rows     int
	Layers   map[LayerName]Layer
}

func emptySnapshot(tileSize int) Snapshot {
	s := Snapshot{TileSize: tileSize, Layers: make(map[LayerName]Layer, len(LayerOrder))}
	for _, name := range LayerOrder {
		s.Layers[name] = Layer{}
	}
	return s
}

// Export folds the free objects into a copy of the canvas, normalizes the
// occupied area so its top-left cell sits at pixel (0,0), and splits the
// cells into the six named layers. The live canvas is not modified.
func Export(c *Canvas, objects *Registry, tileSize int) Snapshot {
	work := c.Clone()
	if objects != nil {
		for _, o := range objects.objects {
			cell := CellOf(o.Distance, common.Vec{}, tileSize)
			offset := o.Distance.Sub(PixelOf(cell, common.Vec{}, tileSize))
			work.attachObject(cell, o.TypeID, offset)
		}
	}

	snap := emptySnapshot(tileSize)
	left, top, ok := work.Bounds()
	if !ok {
		return snap
	}

	catalog := work.catalog
	terrainID := firstID(catalog, prefabs.KindTerrain)
	waterID := firstID(catalog, prefabs.KindWater)
	half := tileSize / 2

	for _, cell := range work.Cells() {
		t := work.tiles[cell]
		col := cell.Col - left
		row := cell.Row - top
		snap.Cols = max(snap.Cols, col+1)
		snap.Rows = max(snap.Rows, row+1)
		x := col * tileSize
		y := row * tileSize

		if t.HasWater {
			snap.Layers[LayerWater][Point{x, y}] = Payload{TypeID: waterID, Variant: t.Water()}
		}
		if t.HasTerrain {
			snap.Layers[LayerTerrain][Point{x, y}] = Payload{TypeID: terrainID, Variant: catalog.Variant(t.TerrainKey())}
		}
		if t.HasCoin() {
			snap.Layers[LayerCoin][Point{x + half, y + half}] = Payload{TypeID: t.Coin}
		}
		if t.HasEnemy() {
			snap.Layers[LayerEnemies][Point{x, y}] = Payload{TypeID: t.Enemy}
		}
		for _, obj := range t.Objects {
			layer := LayerFgObjects
			if catalog.IsBackground(obj.TypeID) {
				layer = LayerBgPalms
			}
			px, py := common.V(float64(x)+obj.Offset.X, float64(y)+obj.Offset.Y).Round()
			snap.Layers[layer][Point{px, py}] = Payload{TypeID: obj.TypeID}
		}
	}
	return snap
}

func firstID(catalog *prefabs.Catalog, kind prefabs.Kind) int {
	if ids := catalog.IDsWithKind(kind); len(ids) > 0 {
		return ids[0]
	}
	return NoID
}

func (s Snapshot) Layer(name LayerName) Layer {
	return s.Layers[name]
}

// Len returns the total number of entries across all layers.
func (s Snapshot) Len() int {
	n := 0
	for _, l := range s.Layers {
		n += len(l)
	}
	return n
}

func (s Snapshot) Empty() bool { return s.Len() == 0 }

// PixelSize returns the exported level's width and height in pixels.
func (s Snapshot) PixelSize() (int, int) {
	return s.Cols * s.TileSize, s.Rows * s.TileSize
}

func (s Snapshot) Equal(o Snapshot) bool {
	if s.TileSize != o.TileSize || s.Cols != o.Cols || s.Rows != o.Rows || len(s.Layers) != len(o.Layers) {
		return false
	}
	for name, l := range s.Layers {
		ol, ok := o.Layers[name]
		if !ok || !maps.Equal(l, ol) {
			return false
		}
	}
	return true
}
