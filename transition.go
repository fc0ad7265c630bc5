package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Transition runs a circle wipe between scenes: a black disc grows from the
// screen center, the scene switches, and the disc shrinks away again.
type Transition struct {
	Active   bool
	Phase    int // 1: closing, 3: opening
	Frames   int
	Duration int
	// OnSwitch runs once the screen is fully covered.
	OnSwitch func()
}

func NewTransition() *Transition {
	return &Transition{Duration: 30}
}

// Enter starts a wipe. It is ignored while another wipe is running.
func (t *Transition) Enter(onSwitch func()) {
	if t.Active {
		return
	}
	t.Active = true
	t.Phase = 1
	t.Frames = 0
	t.OnSwitch = onSwitch
}

// Update advances the wipe and reports whether the caller should skip its
// scene update this tick.
func (t *Transition) Update() bool {
	if !t.Active {
		return false
	}
	t.Frames++
	switch t.Phase {
	case 1:
		if t.Frames >= t.Duration {
			if t.OnSwitch != nil {
				t.OnSwitch()
			}
			t.Phase = 3
			t.Frames = 0
		}
	case 3:
		if t.Frames >= t.Duration {
			t.Active = false
			t.Phase = 0
			t.Frames = 0
			t.OnSwitch = nil
		}
	}
	return true
}

// progress is 0 with the screen clear and 1 with it fully covered.
func (t *Transition) progress() float64 {
	p := float64(t.Frames) / float64(max(t.Duration, 1))
	p = math.Min(p, 1)
	if t.Phase == 3 {
		return 1 - p
	}
	return p
}

func (t *Transition) Draw(screen *ebiten.Image) {
	if !t.Active {
		return
	}
	p := t.progress()
	if p <= 0 {
		return
	}
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := math.Hypot(w, h) / 2 * p
	vector.FillCircle(screen, float32(w/2), float32(h/2), float32(r), color.Black, true)
}
