package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/ecs"
	"github.com/milk9111/levelmaker/prefabs"
)

const (
	gravity     = 1800
	playerSpeed = 300
	jumpSpeed   = 700
)

const (
	eventCoin   = "coin"
	eventHazard = "hazard"
)

// Level is a built, steppable level. It is owned by the frame loop and is
// not safe for concurrent use.
type Level struct {
	World    *ecs.World
	Space    *cp.Space
	TileSize int
	Width    float64
	Height   float64

	spawn      common.Vec
	horizon    float64
	hasHorizon bool
	player     ecs.Entity
	playerSize common.Vec

	dt        float64
	move      float64
	jump      bool
	collected []int
	hits      int
}

func newLevel(snap canvas.Snapshot) *Level {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w, h := snap.PixelSize()
	l := &Level{
		World:    ecs.NewWorld(),
		Space:    space,
		TileSize: snap.TileSize,
		Width:    float64(w),
		Height:   float64(h),
	}
	l.World.AddSystem(&controlSystem{l: l})
	l.World.AddSystem(&physicsSystem{l: l})
	l.World.AddSystem(&walkerSystem{})
	l.World.AddSystem(&pickupSystem{l: l})
	l.World.AddSystem(&hazardSystem{l: l})
	return l
}

func (l *Level) addPlayer(typ *prefabs.Type, x, y float64, payload canvas.Payload) {
	w, h := typ.Width, typ.Height
	e := ecs.CreateEntity(l.World)
	mustAdd(l.World, e, TransformComponent, &Transform{X: x, Y: y})
	mustAdd(l.World, e, SpriteComponent, &Sprite{TypeID: payload.TypeID, Width: w, Height: h, Layer: canvas.LayerFgObjects})
	mustAdd(l.World, e, PlayerTagComponent, &PlayerTag{})

	// Infinite moment keeps the player upright.
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x + w/2, Y: y + h/2})
	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.UserData = e
	l.Space.AddBody(body)
	l.Space.AddShape(shape)
	mustAdd(l.World, e, BodyComponent, &Body{Body: body, Shape: shape})

	l.player = e
	l.playerSize = common.V(w, h)
}

func (l *Level) installHandlers() {
	coin := l.Space.NewCollisionHandler(collisionTypePlayer, collisionTypeCoin)
	coin.UserData = l
	coin.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		pushContact(arb, userData, eventCoin)
		return false
	}

	hazard := l.Space.NewCollisionHandler(collisionTypePlayer, collisionTypeHazard)
	hazard.UserData = l
	hazard.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		pushContact(arb, userData, eventHazard)
		return true
	}
}

// pushContact queues an event for the non-player shape of arb. Shapes are
// never removed inside a step; systems act on the events afterwards.
func pushContact(arb *cp.Arbiter, userData interface{}, eventType string) {
	l, ok := userData.(*Level)
	if !ok || l == nil {
		return
	}
	a, b := arb.Shapes()
	other := b
	if a.UserData != l.player {
		other = a
	}
	e, ok := other.UserData.(ecs.Entity)
	if !ok {
		return
	}
	l.World.Events().Push(ecs.Event{Type: eventType, Entity: e, Other: l.player})
}

// Step advances the level by dt seconds.
func (l *Level) Step(dt float64) {
	if dt <= 0 {
		return
	}
	l.dt = dt
	l.World.Update()
	l.move = 0
	l.jump = false
}

// Move sets the horizontal input for the next step, -1 to 1.
func (l *Level) Move(dir float64) { l.move = max(-1, min(1, dir)) }

// Jump requests a jump on the next step; it only fires while grounded.
func (l *Level) Jump() { l.jump = true }

func (l *Level) Entities() []ecs.Entity { return ecs.Entities(l.World) }

// Spawn is the player's top-left start position.
func (l *Level) Spawn() common.Vec { return l.spawn }

// Horizon is the y of the sky handle, when the level has one.
func (l *Level) Horizon() (float64, bool) { return l.horizon, l.hasHorizon }

// Collected returns the type ids of the coins picked up so far.
func (l *Level) Collected() []int { return append([]int(nil), l.collected...) }

// Hits counts hazard contacts.
func (l *Level) Hits() int { return l.hits }

func (l *Level) Player() ecs.Entity { return l.player }

// PlayerPosition returns the player's top-left corner.
func (l *Level) PlayerPosition() common.Vec {
	t, ok := ecs.Get(l.World, l.player, TransformComponent.Kind())
	if !ok {
		return common.Vec{}
	}
	return t.Vec()
}

func (l *Level) playerBody() *cp.Body {
	b, ok := ecs.Get(l.World, l.player, BodyComponent.Kind())
	if !ok {
		return nil
	}
	return b.Body
}

func (l *Level) respawn() {
	body := l.playerBody()
	if body == nil {
		return
	}
	body.SetPosition(cp.Vector{X: l.spawn.X + l.playerSize.X/2, Y: l.spawn.Y + l.playerSize.Y/2})
	body.SetVelocityVector(cp.Vector{})
	if t, ok := ecs.Get(l.World, l.player, TransformComponent.Kind()); ok {
		t.X, t.Y = l.spawn.X, l.spawn.Y
	}
}
