package canvas

import (
	"slices"
	"strings"

	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/prefabs"
)

// NoID marks an empty coin or enemy slot.
const NoID = -1

// ObjectRef is an object attached to a cell at a sub-cell pixel offset.
type ObjectRef struct {
	TypeID int
	Offset common.Vec
}

// Tile is the record stored for one occupied cell.
type Tile struct {
	HasTerrain       bool
	TerrainNeighbors []string

	HasWater bool
	WaterTop bool

	Coin  int
	Enemy int

	Objects []ObjectRef

	// Empty is recomputed after every removal. Attached objects do not count,
	// so a cell holding only objects reads as empty.
	Empty bool
}

func newTile() *Tile {
	return &Tile{Coin: NoID, Enemy: NoID}
}

func (t Tile) HasCoin() bool  { return t.Coin != NoID }
func (t Tile) HasEnemy() bool { return t.Enemy != NoID }

func (t *Tile) add(id int, kind prefabs.Kind, offset common.Vec) {
	switch kind {
	case prefabs.KindTerrain:
		t.HasTerrain = true
	case prefabs.KindWater:
		t.HasWater = true
	case prefabs.KindCoin:
		t.Coin = id
	case prefabs.KindEnemy:
		t.Enemy = id
	default:
		ref := ObjectRef{TypeID: id, Offset: offset}
		if !slices.Contains(t.Objects, ref) {
			t.Objects = append(t.Objects, ref)
		}
	}
	t.Empty = false
}

// remove clears the field for kind. Coins and enemies are cleared whatever id
// is stored; objects are never removed here.
func (t *Tile) remove(kind prefabs.Kind) {
	switch kind {
	case prefabs.KindTerrain:
		t.HasTerrain = false
	case prefabs.KindWater:
		t.HasWater = false
	case prefabs.KindCoin:
		t.Coin = NoID
	case prefabs.KindEnemy:
		t.Enemy = NoID
	}
	t.checkContent()
}

func (t *Tile) checkContent() {
	t.Empty = !t.HasTerrain && !t.HasWater && !t.HasCoin() && !t.HasEnemy()
}

// Water returns the water layer payload: "bottom" when water sits above this
// cell, "top" for the surface.
func (t Tile) Water() string {
	if t.WaterTop {
		return "bottom"
	}
	return "top"
}

// TerrainKey concatenates the terrain neighbor codes in canonical order.
func (t Tile) TerrainKey() string {
	return strings.Join(t.TerrainNeighbors, "")
}

func (t *Tile) clone() *Tile {
	cp := *t
	cp.TerrainNeighbors = slices.Clone(t.TerrainNeighbors)
	cp.Objects = slices.Clone(t.Objects)
	return &cp
}
