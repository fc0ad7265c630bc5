package common

import "math"

// FloorDiv returns floor(v / size) over the full signed range. Plain int()
// truncation rounds toward zero and would put positions just left of or above
// the origin into cell 0 instead of cell -1.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
