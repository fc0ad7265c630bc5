package common

import "math"

// Vec is a 2D pixel-space vector.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

// Len returns the vector magnitude.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Round returns the components truncated toward zero, matching an int()
// conversion of each axis.
func (v Vec) Round() (int, int) { return int(v.X), int(v.Y) }
