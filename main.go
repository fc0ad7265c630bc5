package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/levelmaker/levels"
	"github.com/milk9111/levelmaker/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (FPS and collision outlines)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start in play mode on a level in levels/ (basename, .json optional)")
	saveAs := flag.String("save", "untitled", "level name Ctrl+S writes to")
	watch := flag.Bool("watch", false, "reload the catalog and stamp scripts when they change on disk")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory checked for catalog, settings and stamp overrides")
	levelsDir := flag.String("levels", levels.Dir, "directory levels are saved to and loaded from")
	flag.Parse()

	prefabs.Dir = *prefabsDir
	levels.Dir = *levelsDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	initClipboard()

	game, err := NewGame(Options{Debug: *debug, Level: *levelName, SaveAs: *saveAs, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(game.settings.WindowWidth, game.settings.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("levelmaker")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
