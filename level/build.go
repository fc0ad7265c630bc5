// Package level turns an exported canvas snapshot into a playable level: ECS
// entities for everything drawable plus a chipmunk space for collisions.
package level

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/ecs"
	"github.com/milk9111/levelmaker/ecs/component"
	"github.com/milk9111/levelmaker/prefabs"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeCoin
	collisionTypeHazard
)

const (
	palmBlockW      = 76
	palmBlockH      = 50
	rightPalmShiftX = 50
	walkerSpeed     = 120
)

var (
	ErrNoPlayer    = errors.New("level: snapshot has no player spawn")
	ErrNilCatalog  = errors.New("level: nil catalog")
	ErrUnknownType = errors.New("level: unknown type id")
)

// Build instantiates snap. Layers are walked in draw order so entity ids
// follow the order the shell draws them in.
func Build(snap canvas.Snapshot, catalog *prefabs.Catalog) (*Level, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if snap.TileSize <= 0 {
		return nil, fmt.Errorf("level: invalid tile size %d", snap.TileSize)
	}

	l := newLevel(snap)
	b := &builder{l: l, catalog: catalog, ts: float64(snap.TileSize)}
	for _, name := range canvas.LayerOrder {
		layer := snap.Layer(name)
		for _, p := range sortedPoints(layer) {
			if err := b.place(name, p, layer[p]); err != nil {
				return nil, err
			}
		}
		if name == canvas.LayerTerrain {
			b.addTerrainRuns(layer)
		}
	}
	if !l.player.Valid() {
		return nil, ErrNoPlayer
	}
	b.boundWalkers()
	l.installHandlers()
	return l, nil
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		panic("level: add component: " + err.Error())
	}
}

type builder struct {
	l       *Level
	catalog *prefabs.Catalog
	ts      float64
	runs    []run
}

func (b *builder) place(layer canvas.LayerName, p canvas.Point, payload canvas.Payload) error {
	x, y := float64(p.X), float64(p.Y)
	typ, ok := b.catalog.Type(payload.TypeID)
	if !ok {
		return fmt.Errorf("%w: %d in %s at %d,%d", ErrUnknownType, payload.TypeID, layer, p.X, p.Y)
	}

	switch layer {
	case canvas.LayerTerrain:
		b.sprite(layer, x, y, b.ts, b.ts, payload)
	case canvas.LayerWater:
		e := b.sprite(layer, x, y, b.ts, b.ts, payload)
		mustAdd(b.l.World, e, WaterComponent, &Water{Surface: payload.Variant == "top"})
	case canvas.LayerCoin:
		b.addCoin(x, y, payload)
	case canvas.LayerEnemies:
		b.addEnemy(typ, x, y, payload)
	case canvas.LayerFgObjects:
		b.addForeground(typ, x, y, payload)
	case canvas.LayerBgPalms:
		b.sprite(layer, x, y, typ.Width, typ.Height, payload)
	}
	return nil
}

func (b *builder) sprite(layer canvas.LayerName, x, y, w, h float64, payload canvas.Payload) ecs.Entity {
	e := ecs.CreateEntity(b.l.World)
	mustAdd(b.l.World, e, TransformComponent, &Transform{X: x, Y: y})
	mustAdd(b.l.World, e, SpriteComponent, &Sprite{TypeID: payload.TypeID, Variant: payload.Variant, Width: w, Height: h, Layer: layer})
	return e
}

// staticBox adds an axis-aligned box to the static body. Chipmunk's BB uses
// B for the smaller y, which is the top edge in screen coordinates.
func (b *builder) staticBox(e ecs.Entity, x, y, w, h float64, ct cp.CollisionType, sensor bool) *cp.Shape {
	space := b.l.Space
	shape := cp.NewBox2(space.StaticBody, cp.BB{L: x, B: y, R: x + w, T: y + h}, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(ct)
	shape.SetSensor(sensor)
	shape.UserData = e
	space.AddShape(shape)
	mustAdd(b.l.World, e, BodyComponent, &Body{Body: space.StaticBody, Shape: shape, Static: true})
	mustAdd(b.l.World, e, SolidComponent, &Solid{X: x, Y: y, W: w, H: h})
	return shape
}

func (b *builder) addCoin(x, y float64, payload canvas.Payload) {
	r := b.ts / 4
	e := b.sprite(canvas.LayerCoin, x-r, y-r, 2*r, 2*r, payload)
	space := b.l.Space
	shape := cp.NewCircle(space.StaticBody, r, cp.Vector{X: x, Y: y})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeCoin)
	shape.UserData = e
	space.AddShape(shape)
	mustAdd(b.l.World, e, BodyComponent, &Body{Body: space.StaticBody, Shape: shape, Static: true})
	mustAdd(b.l.World, e, CoinComponent, &Coin{TypeID: payload.TypeID})
}

func (b *builder) addEnemy(typ *prefabs.Type, x, y float64, payload canvas.Payload) {
	e := b.sprite(canvas.LayerEnemies, x, y, b.ts, b.ts, payload)
	switch {
	case typ.Name == "tooth":
		b.addWalker(e, x, y)
	case strings.HasPrefix(typ.Name, "shell"):
		b.staticBox(e, x, y, b.ts, b.ts, collisionTypeSolid, false)
	default:
		// Spikes and anything unrecognised hurt on touch.
		b.staticBox(e, x, y, b.ts, b.ts, collisionTypeHazard, true)
		mustAdd(b.l.World, e, HazardComponent, &Hazard{})
	}
}

func (b *builder) addWalker(e ecs.Entity, x, y float64) {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: x + b.ts/2, Y: y + b.ts/2})
	shape := cp.NewBox(body, b.ts, b.ts, 0)
	shape.SetCollisionType(collisionTypeHazard)
	shape.UserData = e
	b.l.Space.AddBody(body)
	b.l.Space.AddShape(shape)
	mustAdd(b.l.World, e, BodyComponent, &Body{Body: body, Shape: shape})
	mustAdd(b.l.World, e, HazardComponent, &Hazard{})
	mustAdd(b.l.World, e, WalkerComponent, &Walker{Speed: walkerSpeed, Dir: 1, MinX: x, MaxX: x})
}

func (b *builder) addForeground(typ *prefabs.Type, x, y float64, payload canvas.Payload) {
	l := b.l
	switch typ.Style {
	case "player":
		l.spawn.X, l.spawn.Y = x, y
		l.addPlayer(typ, x, y, payload)
	case "sky":
		l.horizon, l.hasHorizon = y, true
	default:
		e := b.sprite(canvas.LayerFgObjects, x, y, typ.Width, typ.Height, payload)
		if typ.Style != "palm_fg" {
			return
		}
		bx := x
		if strings.HasPrefix(typ.Name, "right") {
			bx += rightPalmShiftX
		}
		b.staticBox(e, bx, y, palmBlockW, palmBlockH, collisionTypeSolid, false)
	}
}

// run is a horizontal stretch of terrain in one row, in level pixels.
type run struct {
	X, Y, W float64
}

func (r run) contains(x float64) bool { return x >= r.X && x < r.X+r.W }

// terrainRuns merges horizontally adjacent terrain tiles into one run each.
func terrainRuns(layer canvas.Layer, tileSize int) []run {
	rows := make(map[int][]int)
	for p := range layer {
		rows[p.Y] = append(rows[p.Y], p.X)
	}
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	var out []run
	for _, y := range ys {
		xs := rows[y]
		sort.Ints(xs)
		start, end := xs[0], xs[0]+tileSize
		for _, x := range xs[1:] {
			if x == end {
				end += tileSize
				continue
			}
			out = append(out, run{X: float64(start), Y: float64(y), W: float64(end - start)})
			start, end = x, x+tileSize
		}
		out = append(out, run{X: float64(start), Y: float64(y), W: float64(end - start)})
	}
	return out
}

func (b *builder) addTerrainRuns(layer canvas.Layer) {
	b.runs = terrainRuns(layer, int(b.ts))
	for _, r := range b.runs {
		e := ecs.CreateEntity(b.l.World)
		b.staticBox(e, r.X, r.Y, r.W, b.ts, collisionTypeSolid, false)
	}
}

// boundWalkers limits each walker to the terrain run directly below it.
func (b *builder) boundWalkers() {
	w := b.l.World
	ecs.ForEach2(w, WalkerComponent.Kind(), TransformComponent.Kind(), func(_ ecs.Entity, walker *Walker, t *Transform) {
		below := t.Y + b.ts
		for _, r := range b.runs {
			if r.Y != below || !r.contains(t.X) {
				continue
			}
			walker.MinX = r.X
			walker.MaxX = math.Max(r.X, r.X+r.W-b.ts)
			return
		}
	})
}

func sortedPoints(layer canvas.Layer) []canvas.Point {
	pts := make([]canvas.Point, 0, len(layer))
	for p := range layer {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}
