package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/levelmaker/ecs"
)

type controlSystem struct{ l *Level }

func (s *controlSystem) Update(w *ecs.World) {
	body := s.l.playerBody()
	if body == nil {
		return
	}
	v := body.Velocity()
	v.X = s.l.move * playerSpeed
	if s.l.jump && math.Abs(v.Y) < 1 {
		v.Y = -jumpSpeed
	}
	body.SetVelocityVector(v)
}

// physicsSystem steps the space and copies dynamic body positions back into
// transforms.
type physicsSystem struct{ l *Level }

func (s *physicsSystem) Update(w *ecs.World) {
	s.l.Space.Step(s.l.dt)
	ecs.ForEach3(w, BodyComponent.Kind(), TransformComponent.Kind(), SpriteComponent.Kind(), func(_ ecs.Entity, b *Body, t *Transform, sp *Sprite) {
		if b.Static || b.Body == nil {
			return
		}
		pos := b.Body.Position()
		t.X = pos.X - sp.Width/2
		t.Y = pos.Y - sp.Height/2
	})
}

// walkerSystem turns walkers around at the ends of their run and keeps them
// inside it.
type walkerSystem struct{}

func (s *walkerSystem) Update(w *ecs.World) {
	ecs.ForEach4(w, WalkerComponent.Kind(), TransformComponent.Kind(), BodyComponent.Kind(), SpriteComponent.Kind(), func(_ ecs.Entity, walker *Walker, t *Transform, b *Body, sp *Sprite) {
		if walker.MaxX <= walker.MinX {
			t.X = walker.MinX
			b.Body.SetVelocityVector(cp.Vector{})
			return
		}
		if t.X <= walker.MinX {
			t.X, walker.Dir = walker.MinX, 1
		} else if t.X >= walker.MaxX {
			t.X, walker.Dir = walker.MaxX, -1
		}
		b.Body.SetPosition(cp.Vector{X: t.X + sp.Width/2, Y: t.Y + sp.Height/2})
		b.Body.SetVelocityVector(cp.Vector{X: walker.Dir * walker.Speed})
	})
}

// pickupSystem removes touched coins from the level.
type pickupSystem struct{ l *Level }

func (s *pickupSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain(eventCoin) {
		coin, ok := ecs.Get(w, evt.Entity, CoinComponent.Kind())
		if !ok {
			continue
		}
		if b, ok := ecs.Get(w, evt.Entity, BodyComponent.Kind()); ok && b.Shape != nil {
			s.l.Space.RemoveShape(b.Shape)
		}
		s.l.collected = append(s.l.collected, coin.TypeID)
		ecs.DestroyEntity(w, evt.Entity)
	}
}

// hazardSystem sends the player back to the spawn after a hazard contact.
type hazardSystem struct{ l *Level }

func (s *hazardSystem) Update(w *ecs.World) {
	events := w.Events().Drain(eventHazard)
	if len(events) == 0 {
		return
	}
	s.l.hits += len(events)
	s.l.respawn()
}
