package canvas

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/prefabs"
)

var (
	ErrNotDeletable     = errors.New("canvas: object cannot be deleted")
	ErrUnknownObject    = errors.New("canvas: object not in registry")
	ErrAlreadyBootstrap = errors.New("canvas: registry already bootstrapped")
)

// Object is a free-positioned entity. Its anchor is the top-left corner of
// its box, stored relative to the pan origin rather than to the grid.
type Object struct {
	Handle    int
	TypeID    int
	Distance  common.Vec
	Size      common.Vec
	Deletable bool

	dragging bool
	screen   common.Vec
	grab     common.Vec
}

// ScreenPos returns the top-left corner in screen pixels.
func (o *Object) ScreenPos(origin common.Vec) common.Vec {
	if o.dragging {
		return o.screen
	}
	return origin.Add(o.Distance)
}

// Center returns the box center in screen pixels.
func (o *Object) Center(origin common.Vec) common.Vec {
	return o.ScreenPos(origin).Add(o.Size.Scale(0.5))
}

func (o *Object) Contains(pointer, origin common.Vec) bool {
	tl := o.ScreenPos(origin)
	return pointer.X >= tl.X && pointer.X < tl.X+o.Size.X &&
		pointer.Y >= tl.Y && pointer.Y < tl.Y+o.Size.Y
}

func (o *Object) Dragging() bool { return o.dragging }

// Registry tracks free objects in placement order; later objects draw and
// hit-test on top of earlier ones.
type Registry struct {
	objects      []*Object
	nextHandle   int
	drag         *Object
	bootstrapped bool
}

func NewRegistry() *Registry {
	return &Registry{nextHandle: 1}
}

// Place creates an object of typ centered on pointer.
func (r *Registry) Place(typ *prefabs.Type, pointer, origin common.Vec) *Object {
	size := common.V(typ.Width, typ.Height)
	topLeft := pointer.Sub(size.Scale(0.5))
	o := &Object{
		Handle:    r.nextHandle,
		TypeID:    typ.ID,
		Distance:  topLeft.Sub(origin),
		Size:      size,
		Deletable: typ.Deletable,
	}
	r.nextHandle++
	r.objects = append(r.objects, o)
	return o
}

// Bootstrap creates the player spawn marker and the horizon handle. It runs
// once per registry.
func (r *Registry) Bootstrap(catalog *prefabs.Catalog, playerAt, horizonAt, origin common.Vec) error {
	if r.bootstrapped {
		return ErrAlreadyBootstrap
	}
	player, ok := catalog.WithStyle("player")
	if !ok {
		return fmt.Errorf("canvas: bootstrap: catalog has no player type")
	}
	sky, ok := catalog.WithStyle("sky")
	if !ok {
		return fmt.Errorf("canvas: bootstrap: catalog has no sky type")
	}
	r.Place(player, playerAt, origin)
	r.Place(sky, horizonAt, origin)
	r.bootstrapped = true
	return nil
}

// At returns the topmost object under pointer, or nil.
func (r *Registry) At(pointer, origin common.Vec) *Object {
	for i := len(r.objects) - 1; i >= 0; i-- {
		if r.objects[i].Contains(pointer, origin) {
			return r.objects[i]
		}
	}
	return nil
}

func (r *Registry) Delete(o *Object) error {
	idx := slices.Index(r.objects, o)
	if idx < 0 {
		return ErrUnknownObject
	}
	if !o.Deletable {
		return ErrNotDeletable
	}
	if r.drag == o {
		r.drag = nil
	}
	r.objects = slices.Delete(r.objects, idx, idx+1)
	return nil
}

// StartDrag picks o up; until EndDrag it follows the pointer in screen space.
func (r *Registry) StartDrag(o *Object, pointer, origin common.Vec) {
	if o == nil {
		return
	}
	if r.drag != nil && r.drag != o {
		r.EndDrag(origin)
	}
	o.screen = o.ScreenPos(origin)
	o.grab = pointer.Sub(o.screen)
	o.dragging = true
	r.drag = o
}

func (r *Registry) DragTo(pointer common.Vec) {
	if r.drag == nil {
		return
	}
	r.drag.screen = pointer.Sub(r.drag.grab)
}

// EndDrag drops the dragged object and re-anchors it to origin.
func (r *Registry) EndDrag(origin common.Vec) {
	o := r.drag
	if o == nil {
		return
	}
	o.Distance = o.screen.Sub(origin)
	o.dragging = false
	r.drag = nil
}

func (r *Registry) Dragging() *Object { return r.drag }

// Objects returns the objects in placement order.
func (r *Registry) Objects() []*Object {
	return slices.Clone(r.objects)
}

func (r *Registry) Len() int { return len(r.objects) }
