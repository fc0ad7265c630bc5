package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/prefabs"
	"github.com/milk9111/levelmaker/stamp"
)

var ErrReservedType = errors.New("editor: type cannot be stamped")

// Session owns everything the editor mutates: the canvas, the free objects,
// the pan origin and the current selection. It is driven one Input per tick.
type Session struct {
	Canvas  *canvas.Canvas
	Objects *canvas.Registry

	catalog  *prefabs.Catalog
	settings *prefabs.SettingsSpec

	origin    common.Vec
	panActive bool
	panOffset common.Vec

	selection   int
	lastCell    canvas.Cell
	hasLastCell bool
	cooldown    Cooldown
}

func NewSession(catalog *prefabs.Catalog, settings *prefabs.SettingsSpec) (*Session, error) {
	if catalog == nil || settings == nil {
		return nil, fmt.Errorf("editor: session needs a catalog and settings")
	}
	s := &Session{
		Canvas:   canvas.New(catalog),
		Objects:  canvas.NewRegistry(),
		catalog:  catalog,
		settings: settings,
		cooldown: Cooldown{Frames: settings.ObjectCooldownFrames},
	}
	s.selection = catalog.ClampSelection(settings.InitialSelection)

	player := common.V(settings.PlayerStart.X, settings.PlayerStart.Y)
	horizon := common.V(settings.HorizonStart.X, settings.HorizonStart.Y)
	if err := s.Objects.Bootstrap(catalog, player, horizon, s.origin); err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	return s, nil
}

func (s *Session) Origin() common.Vec { return s.origin }
func (s *Session) Selection() int { return s.selection }
func (s *Session) Catalog() *prefabs.Catalog { return s.catalog }
func (s *Session) Settings() *prefabs.SettingsSpec { return s.settings }
func (s *Session) Panning() bool { return s.panActive }

func (s *Session) TileSize() int { return s.settings.TileSize }

// Select sets the selection, clamped to the palette range.
func (s *Session) Select(id int) {
	s.selection = s.catalog.ClampSelection(id)
}

func (s *Session) PointerCell(pointer common.Vec) canvas.Cell {
	return canvas.CellOf(pointer, s.origin, s.settings.TileSize)
}

// Update applies one tick of input: pan, selection, drag, add, remove.
func (s *Session) Update(in Input) {
	s.pan(in)
	s.selectionInput(in)
	s.drag(in)
	s.add(in)
	s.remove(in)
	s.cooldown.Tick()
}

func (s *Session) pan(in Input) {
	if in.MiddleJustPressed {
		s.panActive = true
		s.panOffset = in.Pointer.Sub(s.origin)
	}
	if !in.MiddlePressed {
		s.panActive = false
	}
	if s.panActive {
		s.origin = in.Pointer.Sub(s.panOffset)
	}

	if in.Wheel != 0 {
		step := in.Wheel * s.settings.WheelPanStep
		if in.Ctrl {
			s.origin.Y -= step
		} else {
			s.origin.X -= step
		}
	}
}

func (s *Session) selectionInput(in Input) {
	if in.NextSelection {
		s.Select(s.selection + 1)
	}
	if in.PrevSelection {
		s.Select(s.selection - 1)
	}
	if in.MenuSelection >= 0 {
		s.Select(in.MenuSelection)
	}
}

func (s *Session) drag(in Input) {
	if in.LeftJustPressed && !in.OverMenu {
		if o := s.Objects.At(in.Pointer, s.origin); o != nil {
			s.Objects.StartDrag(o, in.Pointer, s.origin)
		}
	}
	if s.Objects.Dragging() != nil {
		s.Objects.DragTo(in.Pointer)
		if in.LeftJustReleased || !in.LeftPressed {
			s.Objects.EndDrag(s.origin)
		}
	}
}

func (s *Session) add(in Input) {
	if !in.LeftPressed {
		s.hasLastCell = false
		return
	}
	if in.OverMenu || s.Objects.Dragging() != nil {
		return
	}

	// An unclassified selection is a catalog mismatch; fail fast.
	kind := s.catalog.MustKind(s.selection)
	if kind.IsTile() {
		cell := s.PointerCell(in.Pointer)
		if s.hasLastCell && cell == s.lastCell {
			return
		}
		s.Canvas.AddTo(cell, s.selection, common.Vec{})
		s.lastCell, s.hasLastCell = cell, true
		return
	}

	if s.cooldown.Active() {
		return
	}
	typ, _ := s.catalog.Type(s.selection)
	s.Objects.Place(typ, in.Pointer, s.origin)
	s.cooldown.Activate()
}

func (s *Session) remove(in Input) {
	if !in.RightPressed || in.OverMenu {
		return
	}
	if o := s.Objects.At(in.Pointer, s.origin); o != nil {
		if err := s.Objects.Delete(o); err != nil && !errors.Is(err, canvas.ErrNotDeletable) {
			log.Printf("editor: delete object %d: %v", o.Handle, err)
		}
	}
	if s.Canvas.Len() == 0 {
		return
	}
	s.Canvas.RemoveFrom(s.PointerCell(in.Pointer), s.selection)
}

// Export snapshots the current canvas and free objects.
func (s *Session) Export() canvas.Snapshot {
	return canvas.Export(s.Canvas, s.Objects, s.settings.TileSize)
}

// SetCatalog swaps the catalog after a hot reload and re-clamps the
// selection to the new palette range.
func (s *Session) SetCatalog(catalog *prefabs.Catalog) {
	if catalog == nil {
		return
	}
	s.catalog = catalog
	s.Canvas.SetCatalog(catalog)
	s.Select(s.selection)
}

// ApplyStamp places res relative to anchor. Every edit is validated before
// any is applied, so a bad stamp leaves the session untouched. Object types
// are centered on their cell.
func (s *Session) ApplyStamp(res stamp.Result, anchor canvas.Cell) (int, error) {
	for i, e := range res.Edits {
		typ, ok := s.catalog.Type(e.TypeID)
		if !ok {
			return 0, fmt.Errorf("editor: stamp edit %d: %w: id %d", i, stamp.ErrUnknownType, e.TypeID)
		}
		if !typ.Kind.IsTile() && !typ.Deletable {
			return 0, fmt.Errorf("editor: stamp edit %d: %w: %s", i, ErrReservedType, typ.Name)
		}
	}

	ts := s.settings.TileSize
	half := float64(ts) / 2
	for _, e := range res.Edits {
		cell := anchor.Add(res.OffsetCol+e.Col, res.OffsetRow+e.Row)
		typ, _ := s.catalog.Type(e.TypeID)
		if typ.Kind.IsTile() {
			s.Canvas.AddTo(cell, e.TypeID, common.Vec{})
			continue
		}
		center := canvas.PixelOf(cell, s.origin, ts).Add(common.V(half, half))
		s.Objects.Place(typ, center, s.origin)
	}
	return len(res.Edits), nil
}

// Preview returns the screen rectangle the current selection would occupy
// at pointer: the hovered cell for tile kinds, the centered box otherwise.
func (s *Session) Preview(pointer common.Vec) (topLeft, size common.Vec) {
	ts := float64(s.settings.TileSize)
	typ, ok := s.catalog.Type(s.selection)
	if !ok || typ.Kind.IsTile() {
		return canvas.PixelOf(s.PointerCell(pointer), s.origin, s.settings.TileSize), common.V(ts, ts)
	}
	size = common.V(typ.Width, typ.Height)
	return pointer.Sub(size.Scale(0.5)), size
}
