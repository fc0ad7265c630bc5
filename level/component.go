package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/ecs/component"
)

// Transform is the top-left corner of an entity in level pixels.
type Transform struct {
	X, Y float64
}

func (t *Transform) Vec() common.Vec { return common.V(t.X, t.Y) }

// Sprite is what the shell needs to draw an entity.
type Sprite struct {
	TypeID  int
	Variant string
	Width   float64
	Height  float64
	Layer   canvas.LayerName
}

// Body links an entity to its chipmunk body and main shape. Static entities
// share the space's static body.
type Body struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Static bool
}

type Coin struct {
	TypeID int
}

// Solid is a static collision rectangle in level pixels.
type Solid struct {
	X, Y, W, H float64
}

// Hazard hurts the player on contact.
type Hazard struct{}

// Walker patrols horizontally between MinX and MaxX (top-left x).
type Walker struct {
	Speed float64
	Dir   float64
	MinX  float64
	MaxX  float64
}

// Water marks a water tile; Surface tiles animate.
type Water struct {
	Surface bool
}

type PlayerTag struct{}

var (
	TransformComponent = component.NewComponent[Transform]()
	SpriteComponent    = component.NewComponent[Sprite]()
	BodyComponent      = component.NewComponent[Body]()
	CoinComponent      = component.NewComponent[Coin]()
	SolidComponent     = component.NewComponent[Solid]()
	HazardComponent    = component.NewComponent[Hazard]()
	WalkerComponent    = component.NewComponent[Walker]()
	WaterComponent     = component.NewComponent[Water]()
	PlayerTagComponent = component.NewComponent[PlayerTag]()
)
