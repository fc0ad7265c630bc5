package canvas

import (
	"fmt"

	"github.com/milk9111/levelmaker/common"
)

// Cell is a signed grid coordinate in the unbounded tile space.
type Cell struct {
	Col int
	Row int
}

func (c Cell) Add(dx, dy int) Cell {
	return Cell{Col: c.Col + dx, Row: c.Row + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Key packs the cell into a single 64-bit value, column in the high half.
// Coordinates outside the int32 range alias.
func (c Cell) Key() uint64 {
	return uint64(uint32(int32(c.Col)))<<32 | uint64(uint32(int32(c.Row)))
}

func CellFromKey(k uint64) Cell {
	return Cell{Col: int(int32(uint32(k >> 32))), Row: int(int32(uint32(k)))}
}

// CellOf maps a pixel position to the cell containing it, given the current
// pan origin. Both axes use floor division so positions left of or above the
// origin land in negative cells.
func CellOf(pos, origin common.Vec, tileSize int) Cell {
	d := pos.Sub(origin)
	ts := float64(tileSize)
	return Cell{Col: common.FloorDiv(d.X, ts), Row: common.FloorDiv(d.Y, ts)}
}

// PixelOf returns the top-left pixel of cell under the given origin.
func PixelOf(cell Cell, origin common.Vec, tileSize int) common.Vec {
	ts := float64(tileSize)
	return origin.Add(common.V(float64(cell.Col)*ts, float64(cell.Row)*ts))
}
