package main

import (
	"context"
	"fmt"
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/levelmaker/assets"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/common"
	"github.com/milk9111/levelmaker/editor"
	"github.com/milk9111/levelmaker/prefabs"
	"github.com/milk9111/levelmaker/stamp"
)

const stampTimeout = 250 * time.Millisecond

var (
	editorBackground = color.RGBA{R: 0x9a, G: 0xa5, B: 0xb1, A: 0xff}
	gridColor        = color.RGBA{A: 0x40}
	previewColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	horizonColor     = color.RGBA{R: 0xf0, G: 0xf0, B: 0xff, A: 0xff}
	skyTint          = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0x50}
	grassColor       = color.RGBA{R: 0xa7, G: 0xc9, B: 0x57, A: 0xff}
)

// stampSize is the width and height handed to stamp scripts, in cells.
var stampSize = stamp.Params{Width: 5, Height: 3}

// EditorScene draws and drives an editor.Session.
type EditorScene struct {
	session *editor.Session
	atlas   *assets.Atlas
	palette *Palette
	stamps  []string

	// notify shows a short status line.
	notify func(format string, args ...any)
}

func NewEditorScene(session *editor.Session, atlas *assets.Atlas, notify func(string, ...any)) *EditorScene {
	s := &EditorScene{session: session, atlas: atlas, notify: notify}
	s.rebuildPalette()
	s.loadStampNames()
	return s
}

func (s *EditorScene) rebuildPalette() {
	s.palette = NewPalette(s.session.Catalog(), s.atlas, s.session.Selection())
}

func (s *EditorScene) loadStampNames() {
	names, err := prefabs.ScriptNames()
	if err != nil {
		s.notify("stamps unavailable: %v", err)
		return
	}
	slices.Sort(names)
	s.stamps = names
}

// SetCatalog applies a reloaded catalog to the session, atlas and palette.
func (s *EditorScene) SetCatalog(catalog *prefabs.Catalog) {
	s.session.SetCatalog(catalog)
	s.atlas.SetCatalog(catalog)
	s.rebuildPalette()
}

func (s *EditorScene) Update() {
	s.palette.Update()
	in := pollEditorInput(s.palette.Bounds(), s.palette.Take())
	s.session.Update(in)
	s.palette.Sync(s.session.Selection())

	if ctrlHeld() && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.copyExport()
	}
	for i, name := range s.stamps {
		if i > 8 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			s.applyStamp(name, in.Pointer)
		}
	}
}

func (s *EditorScene) copyExport() {
	data, err := s.session.Export().MarshalIndent()
	if err != nil {
		s.notify("export failed: %v", err)
		return
	}
	if !clipboardReady {
		s.notify("clipboard unavailable")
		return
	}
	writeClipboard(data)
	s.notify("level copied to clipboard (%d bytes)", len(data))
}

func (s *EditorScene) applyStamp(name string, pointer common.Vec) {
	ctx, cancel := context.WithTimeout(context.Background(), stampTimeout)
	defer cancel()
	res, err := stamp.RunNamed(ctx, name, stampSize, s.session.Catalog())
	if err != nil {
		s.notify("stamp %s: %v", name, err)
		return
	}
	n, err := s.session.ApplyStamp(res, s.session.PointerCell(pointer))
	if err != nil {
		s.notify("stamp %s: %v", name, err)
		return
	}
	s.notify("stamp %s: %d edits", name, n)
}

func (s *EditorScene) Draw(screen *ebiten.Image) {
	screen.Fill(editorBackground)
	s.drawHorizon(screen)
	s.drawGrid(screen)

	origin := s.session.Origin()
	s.drawObjects(screen, origin, true)
	s.drawTiles(screen, origin)
	s.drawObjects(screen, origin, false)
	s.drawPreview(screen)

	vector.StrokeCircle(screen, float32(origin.X), float32(origin.Y), 6, 2, color.Black, true)
	s.palette.Draw(screen)
	s.drawStatus(screen)
}

func (s *EditorScene) drawHorizon(screen *ebiten.Image) {
	catalog := s.session.Catalog()
	origin := s.session.Origin()
	w := float32(screen.Bounds().Dx())
	for _, o := range s.session.Objects.Objects() {
		typ, ok := catalog.Type(o.TypeID)
		if !ok || typ.Style != "sky" {
			continue
		}
		y := float32(o.Center(origin).Y)
		if y > 0 {
			vector.FillRect(screen, 0, 0, w, y, skyTint, false)
		}
		vector.StrokeLine(screen, 0, y, w, y, 2, horizonColor, false)
	}
}

func (s *EditorScene) drawGrid(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	ts := float64(s.session.TileSize())
	origin := s.session.Origin()

	startX := origin.X - ts*float64(common.FloorDiv(origin.X, ts))
	for x := startX; x < w; x += ts {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, gridColor, false)
	}
	startY := origin.Y - ts*float64(common.FloorDiv(origin.Y, ts))
	for y := startY; y < h; y += ts {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, gridColor, false)
	}
}

func (s *EditorScene) drawTiles(screen *ebiten.Image, origin common.Vec) {
	catalog := s.session.Catalog()
	ts := s.session.TileSize()
	waterID := firstOfKind(catalog, prefabs.KindWater)
	terrainID := firstOfKind(catalog, prefabs.KindTerrain)

	view := rectOf(screen.Bounds())
	for _, cell := range s.session.Canvas.Cells() {
		tile, ok := s.session.Canvas.Tile(cell)
		if !ok {
			continue
		}
		pos := canvas.PixelOf(cell, origin, ts)
		if !view.Intersects(Rect{X: pos.X, Y: pos.Y, Width: float64(ts), Height: float64(ts)}) {
			continue
		}
		if tile.HasWater {
			s.blit(screen, s.atlas.TileImage(waterID, tile.Water()), pos)
		}
		if tile.HasTerrain {
			s.blit(screen, s.atlas.TileImage(terrainID, catalog.Variant(tile.TerrainKey())), pos)
			if !slices.Contains(tile.TerrainNeighbors, canvas.TopDirection.Code) {
				vector.FillRect(screen, float32(pos.X), float32(pos.Y), float32(ts), float32(ts)/8, grassColor, false)
			}
		}
		if tile.HasCoin() {
			half := ts / 2
			s.blit(screen, s.atlas.Image(tile.Coin, "", half, half), pos.Add(common.V(float64(ts)/4, float64(ts)/4)))
		}
		if tile.HasEnemy() {
			s.blit(screen, s.atlas.TileImage(tile.Enemy, ""), pos)
		}
	}
}

func (s *EditorScene) drawObjects(screen *ebiten.Image, origin common.Vec, background bool) {
	catalog := s.session.Catalog()
	for _, o := range s.session.Objects.Objects() {
		if catalog.IsBackground(o.TypeID) != background {
			continue
		}
		pos := o.ScreenPos(origin)
		s.blit(screen, s.atlas.Image(o.TypeID, "", int(o.Size.X), int(o.Size.Y)), pos)
		if !o.Deletable {
			vector.StrokeRect(screen, float32(pos.X), float32(pos.Y), float32(o.Size.X), float32(o.Size.Y), 2, color.Black, false)
		}
	}
}

func (s *EditorScene) drawPreview(screen *ebiten.Image) {
	if s.session.Objects.Dragging() != nil || s.session.Panning() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pointer := common.V(float64(mx), float64(my))
	if s.palette.Bounds().Contains(pointer) {
		return
	}
	if o := s.session.Objects.At(pointer, s.session.Origin()); o != nil {
		pos := o.ScreenPos(s.session.Origin())
		vector.StrokeRect(screen, float32(pos.X), float32(pos.Y), float32(o.Size.X), float32(o.Size.Y), 2, previewColor, false)
		return
	}
	tl, size := s.session.Preview(pointer)
	vector.StrokeRect(screen, float32(tl.X), float32(tl.Y), float32(size.X), float32(size.Y), 2, previewColor, false)
}

func (s *EditorScene) drawStatus(screen *ebiten.Image) {
	name := "?"
	if t, ok := s.session.Catalog().Type(s.session.Selection()); ok {
		name = t.Name
	}
	origin := s.session.Origin()
	line := fmt.Sprintf("%s   origin %.0f,%.0f   [Enter] play  [Ctrl+C] copy  [Ctrl+S] save  [1-%d] stamps",
		name, origin.X, origin.Y, len(s.stamps))
	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.ColorScale.ScaleWithColor(color.Black)
	text.Draw(screen, line, assets.Face(14), op)
}

func (s *EditorScene) blit(screen, img *ebiten.Image, pos common.Vec) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	screen.DrawImage(img, op)
}

func firstOfKind(catalog *prefabs.Catalog, kind prefabs.Kind) int {
	if ids := catalog.IDsWithKind(kind); len(ids) > 0 {
		return ids[0]
	}
	return -1
}
