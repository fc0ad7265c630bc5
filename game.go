package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/levelmaker/assets"
	"github.com/milk9111/levelmaker/canvas"
	"github.com/milk9111/levelmaker/editor"
	"github.com/milk9111/levelmaker/level"
	"github.com/milk9111/levelmaker/levels"
	"github.com/milk9111/levelmaker/prefabs"
	"golang.org/x/image/colornames"
)

const statusFrames = 180

type scene int

const (
	sceneEditor scene = iota
	sceneLevel
)

// Options are the command-line settings the game starts with.
type Options struct {
	Debug bool
	// Level, when set, starts straight in play mode on a saved level.
	Level string
	// SaveAs is the level name Ctrl+S writes.
	SaveAs string
	Watch  bool
}

type Game struct {
	opts     Options
	settings *prefabs.SettingsSpec
	catalog  *prefabs.Catalog

	editor     *EditorScene
	play       *LevelScene
	scene      scene
	transition *Transition
	atlas      *assets.Atlas
	watcher    *prefabs.Watcher

	status       string
	statusFrames int
}

func NewGame(opts Options) (*Game, error) {
	settings, err := prefabs.LoadSettings()
	if err != nil {
		return nil, err
	}
	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		return nil, err
	}
	session, err := editor.NewSession(catalog, settings)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		settings:   settings,
		catalog:    catalog,
		transition: NewTransition(),
		atlas:      assets.NewAtlas(catalog, settings.TileSize),
	}
	g.editor = NewEditorScene(session, g.atlas, g.notify)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if opts.Level != "" {
		snap, err := levels.Load(opts.Level)
		if err != nil {
			return nil, err
		}
		if err := g.startLevel(snap); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) notify(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusFrames = statusFrames
	log.Print(g.status)
}

func (g *Game) startLevel(snap canvas.Snapshot) error {
	l, err := level.Build(snap, g.catalog)
	if err != nil {
		return err
	}
	g.play = NewLevelScene(l, g.atlas, g.settings.WindowWidth, g.settings.WindowHeight, g.settings.AnimationFPS, g.opts.Debug)
	g.scene = sceneLevel
	return nil
}

// reloadPrefabs swaps in an edited catalog. A catalog that fails to load is
// logged and the old one stays in use.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Poll()
	reload := false
	for _, path := range changed {
		if prefabs.IsCatalog(path) {
			reload = true
		}
	}
	if len(changed) > 0 {
		g.editor.loadStampNames()
	}
	if !reload {
		return
	}
	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		g.notify("catalog reload failed: %v", err)
		return
	}
	g.catalog = catalog
	g.editor.SetCatalog(catalog)
	g.notify("catalog reloaded: %d types", len(catalog.Types()))
}

func (g *Game) Update() error {
	if g.statusFrames > 0 {
		g.statusFrames--
	}
	g.reloadPrefabs()

	if g.transition.Update() {
		return nil
	}

	switch g.scene {
	case sceneEditor:
		g.editor.Update()
		g.editorKeys()
	case sceneLevel:
		g.play.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.transition.Enter(func() {
				g.play = nil
				g.scene = sceneEditor
			})
		}
	}
	return nil
}

func (g *Game) editorKeys() {
	if ctrlHeld() && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		path, err := levels.Save(g.opts.SaveAs, g.editor.session.Export())
		if err != nil {
			g.notify("save failed: %v", err)
		} else {
			g.notify("saved %s", path)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		snap := g.editor.session.Export()
		// Build up front so a bad level never starts the wipe.
		if _, err := level.Build(snap, g.catalog); err != nil {
			g.notify("cannot play: %v", err)
			return
		}
		g.transition.Enter(func() {
			if err := g.startLevel(snap); err != nil {
				g.notify("cannot play: %v", err)
			}
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.scene {
	case sceneEditor:
		g.editor.Draw(screen)
	case sceneLevel:
		g.play.Draw(screen)
	}
	g.transition.Draw(screen)

	if g.statusFrames > 0 {
		op := &text.DrawOptions{}
		op.GeoM.Translate(12, float64(g.settings.WindowHeight)-28)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, g.status, assets.Face(14), op)
	}
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f", ebiten.ActualFPS(), ebiten.ActualTPS()), 12, 32)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.settings.WindowWidth), float64(g.settings.WindowHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
