package canvas

// Direction is one of the eight compass offsets used for neighbor checks.
// Code is concatenated into the autotile variant key.
type Direction struct {
	Code string
	DX   int
	DY   int
}

// Directions is the canonical order. Changing it changes every autotile key.
var Directions = [8]Direction{
	{Code: "A", DX: 0, DY: -1},
	{Code: "B", DX: 1, DY: -1},
	{Code: "C", DX: 1, DY: 0},
	{Code: "D", DX: 1, DY: 1},
	{Code: "E", DX: 0, DY: 1},
	{Code: "F", DX: -1, DY: 1},
	{Code: "G", DX: -1, DY: 0},
	{Code: "H", DX: -1, DY: -1},
}

// TopDirection is the neighbor checked for water stacking.
var TopDirection = Directions[0]
