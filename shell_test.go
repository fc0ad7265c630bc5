package main

import (
	"testing"

	"github.com/milk9111/levelmaker/common"
)

func TestRectContainsAndIntersects(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	points := []struct {
		p    common.Vec
		want bool
	}{
		{common.V(10, 10), true},
		{common.V(29.9, 19.9), true},
		{common.V(30, 15), false},
		{common.V(15, 20), false},
		{common.V(9, 15), false},
	}
	for _, tt := range points {
		if got := r.Contains(tt.p); got != tt.want {
			t.Fatalf("Contains(%+v): expected %v, got %v", tt.p, tt.want, got)
		}
	}
	if !r.Intersects(Rect{X: 25, Y: 0, Width: 10, Height: 11}) {
		t.Fatalf("expected overlapping rects to intersect")
	}
	if r.Intersects(Rect{X: 30, Y: 10, Width: 5, Height: 5}) {
		t.Fatalf("expected touching rects not to intersect")
	}
}

func TestCameraClampsToWorld(t *testing.T) {
	tests := []struct {
		name         string
		worldW       int
		worldH       int
		x, y         float64
		wantX, wantY float64
	}{
		{"unbounded", 0, 0, -500, 900, -500, 900},
		{"inside", 2000, 1000, 600, 500, 600, 500},
		{"left edge", 2000, 1000, 0, 500, 320, 500},
		{"bottom edge", 2000, 1000, 600, 2000, 600, 760},
		{"world smaller than view", 300, 200, 50, 50, 150, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(640, 480)
			c.SetWorldBounds(tt.worldW, tt.worldH)
			c.SnapTo(tt.x, tt.y)
			if c.PosX != tt.wantX || c.PosY != tt.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tt.wantX, tt.wantY, c.PosX, c.PosY)
			}
		})
	}
}

func TestCameraViewTopLeft(t *testing.T) {
	c := NewCamera(640, 480)
	c.SnapTo(1000, 1000)
	x, y := c.ViewTopLeft()
	if x != 680 || y != 760 {
		t.Fatalf("expected (680,760), got (%v,%v)", x, y)
	}
	if v := c.View(); v.Width != 640 || v.Height != 480 {
		t.Fatalf("expected a 640x480 view, got %+v", v)
	}
}

func TestTransitionSwitchesOnceAtMidpoint(t *testing.T) {
	tr := NewTransition()
	tr.Duration = 3
	switched := 0
	tr.Enter(func() { switched++ })
	tr.Enter(func() { t.Fatalf("a second Enter during a wipe must be ignored") })

	var frames int
	for tr.Update() {
		frames++
		if frames == 3 && switched != 1 {
			t.Fatalf("expected the switch after the closing phase, got %d", switched)
		}
		if frames > 10 {
			t.Fatalf("transition never finished")
		}
	}
	if switched != 1 {
		t.Fatalf("expected one switch, got %d", switched)
	}
	if frames != 6 {
		t.Fatalf("expected 6 busy frames, got %d", frames)
	}
	if tr.Active {
		t.Fatalf("expected the transition to end")
	}
}

func TestTransitionProgress(t *testing.T) {
	tr := NewTransition()
	tr.Duration = 4
	tr.Enter(nil)
	tr.Update()
	tr.Update()
	if p := tr.progress(); p != 0.5 {
		t.Fatalf("expected half closed, got %v", p)
	}
	tr.Update()
	tr.Update() // switches to opening
	if p := tr.progress(); p != 1 {
		t.Fatalf("expected fully covered at the switch, got %v", p)
	}
}
