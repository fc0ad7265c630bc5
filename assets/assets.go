// Package assets builds the images and fonts the shell draws with. There are
// no sprite sheets: every type is drawn as a block in its catalog color.
package assets

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/levelmaker/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
)

// Face returns a Go Regular face at size points.
func Face(size float64) text.Face {
	fontOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Fatalf("assets: load font: %v", err)
		}
		fontSource = s
	})
	return &text.GoTextFace{Source: fontSource, Size: size}
}

// Atlas caches one solid image per type id, sized to the tile or object box.
type Atlas struct {
	catalog  *prefabs.Catalog
	tileSize int
	images   map[string]*ebiten.Image
}

func NewAtlas(catalog *prefabs.Catalog, tileSize int) *Atlas {
	return &Atlas{catalog: catalog, tileSize: tileSize, images: make(map[string]*ebiten.Image)}
}

// SetCatalog drops cached images so recolored types show up after a reload.
func (a *Atlas) SetCatalog(catalog *prefabs.Catalog) {
	a.catalog = catalog
	for k, img := range a.images {
		img.Deallocate()
		delete(a.images, k)
	}
}

// Color returns the catalog color for id, or magenta for unknown ids.
func (a *Atlas) Color(id int) color.Color {
	t, ok := a.catalog.Type(id)
	if !ok || t.Color == nil {
		return colornames.Magenta
	}
	return t.Color
}

// Image returns a w x h block for id. Variants share a color but get their own
// cache slot so terrain edges can be shaded differently.
func (a *Atlas) Image(id int, variant string, w, h int) *ebiten.Image {
	key := fmt.Sprintf("%d/%s/%dx%d", id, variant, w, h)
	if img, ok := a.images[key]; ok {
		return img
	}
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(a.Color(id))
	if variant == "bottom" {
		// Water below the surface is drawn darker.
		img.Fill(darken(a.Color(id), 0.75))
	}
	a.images[key] = img
	return img
}

// TileImage is Image at the tile size.
func (a *Atlas) TileImage(id int, variant string) *ebiten.Image {
	return a.Image(id, variant, a.tileSize, a.tileSize)
}

func darken(c color.Color, f float64) color.Color {
	r, g, b, al := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * f),
		G: uint8(float64(g>>8) * f),
		B: uint8(float64(b>>8) * f),
		A: uint8(al >> 8),
	}
}
