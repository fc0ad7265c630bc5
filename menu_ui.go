package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/levelmaker/assets"
	"github.com/milk9111/levelmaker/prefabs"
)

const paletteColumns = 4

// Palette is the clickable type menu in the bottom-right corner. One toggle
// button per menu type; the radio group keeps exactly one pressed.
type Palette struct {
	ui      *ebitenui.UI
	panel   *widget.Container
	group   *widget.RadioGroup
	buttons map[int]*widget.Button

	current int
	picked  int
}

func NewPalette(catalog *prefabs.Catalog, atlas *assets.Atlas, selection int) *Palette {
	p := &Palette{buttons: make(map[int]*widget.Button), current: -1, picked: -1}

	face := assets.Face(11)
	titleFace := assets.Face(14)
	labelColor := &widget.ButtonTextColor{
		Idle:    color.Black,
		Hover:   color.Black,
		Pressed: color.White,
	}

	p.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 220})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	p.panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Types", &titleFace, color.White),
	))

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(paletteColumns),
			widget.GridLayoutOpts.Spacing(4, 4),
		)),
	)
	p.panel.AddChild(grid)

	var ids []int
	var elements []widget.RadioGroupElement
	for _, t := range catalog.MenuTypes() {
		btn := newTypeButton(t, atlas.Color(t.ID), &face, labelColor)
		grid.AddChild(btn)
		p.buttons[t.ID] = btn
		ids = append(ids, t.ID)
		elements = append(elements, btn)
	}

	p.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for _, id := range ids {
				if args.Active != p.buttons[id] {
					continue
				}
				// Changes caused by Sync come back through here a tick later.
				if id != p.current {
					p.current = id
					p.picked = id
				}
				return
			}
		}),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(p.panel)
	p.ui = &ebitenui.UI{Container: root}

	p.Sync(selection)
	return p
}

func newTypeButton(t *prefabs.Type, fill color.Color, face *text.Face, labelColor *widget.ButtonTextColor) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(fill),
			Hover:   imageui.NewNineSliceColor(shade(fill, 1.15)),
			Pressed: imageui.NewNineSliceColor(shade(fill, 0.45)),
		}),
		widget.ButtonOpts.Text(t.Name, face, labelColor),
		widget.ButtonOpts.ToggleMode(),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(72, 36),
		),
	)
}

// Sync presses the button for a selection made outside the palette, e.g. by
// the arrow keys.
func (p *Palette) Sync(selection int) {
	if selection == p.current {
		return
	}
	btn, ok := p.buttons[selection]
	if !ok {
		return
	}
	p.current = selection
	p.group.SetActive(btn)
}

// Take returns the id clicked since the last call, or -1.
func (p *Palette) Take() int {
	id := p.picked
	p.picked = -1
	return id
}

func (p *Palette) Bounds() Rect {
	return rectOf(p.panel.GetWidget().Rect)
}

func (p *Palette) Update() {
	p.ui.Update()
}

func (p *Palette) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

func shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	ch := func(v uint32) uint8 {
		return uint8(min(float64(v>>8)*f, 255))
	}
	return color.NRGBA{R: ch(r), G: ch(g), B: ch(b), A: uint8(a >> 8)}
}
