package main

import "math"

// Camera follows a world point and clamps the view to the level bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int

	// smoothing factor (0..1); higher follows faster.
	smooth float64
	// world bounds in pixels, 0 means unbounded
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		PosX:    float64(screenW) / 2,
		PosY:    float64(screenH) / 2,
		screenW: screenW,
		screenH: screenH,
		smooth:  0.15,
	}
}

func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - float64(c.screenW)/2, c.PosY - float64(c.screenH)/2
}

// View returns the visible world rectangle.
func (c *Camera) View() Rect {
	x, y := c.ViewTopLeft()
	return Rect{X: x, Y: y, Width: float64(c.screenW), Height: float64(c.screenH)}
}

// Update moves the camera toward the target. Call it from the fixed-rate
// update loop so smoothing is frame-rate independent.
func (c *Camera) Update(targetX, targetY float64) {
	c.PosX += (targetX - c.PosX) * c.smooth
	c.PosY += (targetY - c.PosY) * c.smooth
	c.settle()
}

// SnapTo places the camera without smoothing, e.g. right after a level build.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.settle()
}

func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
	c.PosX = clampAxis(c.PosX, float64(c.screenW)/2, c.worldW)
	c.PosY = clampAxis(c.PosY, float64(c.screenH)/2, c.worldH)
}

// clampAxis keeps a half-view of half inside [0, world]. A world smaller than
// the view is centered instead.
func clampAxis(v, half, world float64) float64 {
	if world <= 0 {
		return v
	}
	lo, hi := half, world-half
	if hi < lo {
		return world / 2
	}
	return math.Max(lo, math.Min(v, hi))
}
