package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/levelmaker/assets"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/ecs"
	"github.com/milk9111/levelmaker/level"
	"golang.org/x/image/colornames"
)

const (
	stepDT          = 1.0 / 60
	waterFrameCount = 4
)

var seaColor = color.RGBA{R: 0x29, G: 0x5f, B: 0x8a, A: 0xff}

// LevelScene plays a built level.
type LevelScene struct {
	level  *level.Level
	atlas  *assets.Atlas
	camera *Camera
	debug  bool

	animFPS float64
	frame   int
}

func NewLevelScene(l *level.Level, atlas *assets.Atlas, screenW, screenH int, animFPS float64, debug bool) *LevelScene {
	cam := NewCamera(screenW, screenH)
	cam.SetWorldBounds(int(l.Width), int(l.Height))
	p := l.PlayerPosition()
	cam.SnapTo(p.X, p.Y)
	return &LevelScene{level: l, atlas: atlas, camera: cam, debug: debug, animFPS: animFPS}
}

func (s *LevelScene) Update() {
	in := pollPlayInput()
	s.level.Move(in.MoveX)
	if in.JumpPressed {
		s.level.Jump()
	}
	s.level.Step(stepDT)
	p := s.level.PlayerPosition()
	s.camera.Update(p.X, p.Y)
	s.frame++
}

// waterFrame is the surface animation frame for the current tick.
func (s *LevelScene) waterFrame() int {
	return int(float64(s.frame)*stepDT*s.animFPS) % waterFrameCount
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	vx, vy := s.camera.ViewTopLeft()
	view := s.camera.View()

	screen.Fill(colornames.Skyblue)
	if y, ok := s.level.Horizon(); ok {
		top := float32(math.Max(y-vy, 0))
		b := screen.Bounds()
		vector.FillRect(screen, 0, top, float32(b.Dx()), float32(b.Dy())-top, seaColor, false)
	}

	byLayer := make(map[canvas.LayerName][]ecs.Entity, len(canvas.LayerOrder))
	w := s.level.World
	ecs.ForEach2(w, level.TransformComponent.Kind(), level.SpriteComponent.Kind(), func(e ecs.Entity, t *level.Transform, sp *level.Sprite) {
		if !view.Intersects(Rect{X: t.X, Y: t.Y, Width: sp.Width, Height: sp.Height}) {
			return
		}
		byLayer[sp.Layer] = append(byLayer[sp.Layer], e)
	})

	for _, layer := range canvas.LayerOrder {
		for _, e := range byLayer[layer] {
			t, _ := ecs.Get(w, e, level.TransformComponent.Kind())
			sp, _ := ecs.Get(w, e, level.SpriteComponent.Kind())
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(math.Round(t.X-vx), math.Round(t.Y-vy))
			if water, ok := ecs.Get(w, e, level.WaterComponent.Kind()); ok && water.Surface {
				op.ColorScale.ScaleAlpha(0.7 + 0.1*float32(s.waterFrame()))
			}
			screen.DrawImage(s.atlas.Image(sp.TypeID, sp.Variant, int(sp.Width), int(sp.Height)), op)
		}
	}

	if s.debug {
		drawSpace(screen, s.level.Space, vx, vy)
	}

	hud := fmt.Sprintf("coins %d   hits %d   [Esc] back to editor", len(s.level.Collected()), s.level.Hits())
	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, hud, assets.Face(16), op)
}
