package canvas

import (
	"sort"

	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/prefabs"
)

// Canvas is the sparse store of occupied cells. It is the single source of
// truth for the painted world and is only mutated from the frame loop.
type Canvas struct {
	catalog *prefabs.Catalog
	tiles   map[Cell]*Tile
}

func New(catalog *prefabs.Catalog) *Canvas {
	return &Canvas{catalog: catalog, tiles: make(map[Cell]*Tile)}
}

func (c *Canvas) Catalog() *prefabs.Catalog { return c.catalog }

// SetCatalog swaps the classification table, e.g. after a hot reload.
// Existing cells keep their contents.
func (c *Canvas) SetCatalog(catalog *prefabs.Catalog) {
	if catalog != nil {
		c.catalog = catalog
	}
}

// AddTo classifies id and sets the matching field on cell, creating the cell
// when needed. Terrain and water edits recompute the surrounding cluster.
// An id missing from the catalog panics.
func (c *Canvas) AddTo(cell Cell, id int, offset common.Vec) {
	kind := c.catalog.MustKind(id)

	t, ok := c.tiles[cell]
	if !ok {
		t = newTile()
		c.tiles[cell] = t
	}
	t.add(id, kind, offset)

	if kind == prefabs.KindTerrain || kind == prefabs.KindWater {
		c.RecomputeCluster(cell)
	}
}

// RemoveFrom clears the field matching id's kind on cell and deletes the
// cell once its primary fields are all clear, discarding attached objects.
// Removing from a missing cell is a no-op.
func (c *Canvas) RemoveFrom(cell Cell, id int) {
	kind := c.catalog.MustKind(id)

	t, ok := c.tiles[cell]
	if !ok {
		return
	}
	t.remove(kind)
	if t.Empty {
		delete(c.tiles, cell)
	}
	c.RecomputeCluster(cell)
}

// Tile returns a copy of the record stored at cell.
func (c *Canvas) Tile(cell Cell) (Tile, bool) {
	t, ok := c.tiles[cell]
	if !ok {
		return Tile{}, false
	}
	return *t.clone(), true
}

func (c *Canvas) Has(cell Cell) bool {
	_, ok := c.tiles[cell]
	return ok
}

func (c *Canvas) Len() int { return len(c.tiles) }

// Cells returns the occupied cells ordered by row, then column.
func (c *Canvas) Cells() []Cell {
	out := make([]Cell, 0, len(c.tiles))
	for cell := range c.tiles {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Bounds returns the smallest column and row over all occupied cells.
func (c *Canvas) Bounds() (left, top int, ok bool) {
	for cell := range c.tiles {
		if !ok {
			left, top, ok = cell.Col, cell.Row, true
			continue
		}
		left = min(left, cell.Col)
		top = min(top, cell.Row)
	}
	return left, top, ok
}

// Clone returns a deep copy that shares nothing with c except the catalog.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{catalog: c.catalog, tiles: make(map[Cell]*Tile, len(c.tiles))}
	for cell, t := range c.tiles {
		out.tiles[cell] = t.clone()
	}
	return out
}

func (c *Canvas) attachObject(cell Cell, id int, offset common.Vec) {
	t, ok := c.tiles[cell]
	if !ok {
		t = newTile()
		c.tiles[cell] = t
	}
	t.add(id, prefabs.KindObject, offset)
}
