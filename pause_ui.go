package main

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/flightsim/common"
	"github.com/milk9111/flightsim/game"
)

var (
	textColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimColor  = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

// CommandPanel is the side panel with the simulation controls and the
// status readout.
type CommandPanel struct {
	UI *ebitenui.UI

	panel  *widget.Container
	pause  *widget.Button
	status *widget.Text
	stats  *widget.Text
}

// NewCommandPanel builds the panel. Buttons use coloured nine-slices and the
// built-in basic font, so no theme assets are needed.
func NewCommandPanel(g *Game) *CommandPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 8, Right: 8, Top: 4, Bottom: 4}),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	label := func(c color.Color) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", &face, c),
			widget.TextOpts.WidgetOpts(rowData),
		)
	}

	p := &CommandPanel{
		status: label(textColor),
		stats:  label(dimColor),
	}
	p.pause = button("Pause", func() {
		g.state.SetPaused(!g.state.Paused())
	})

	p.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/6, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	p.panel.AddChild(p.status)
	p.panel.AddChild(p.pause)
	// g.state is replaced on paste, so handlers look it up on click
	p.panel.AddChild(button("Tick", func() { g.state.ManualTick() }))
	p.panel.AddChild(button("Spawn crablet", func() { g.state.SpawnCrab() }))
	p.panel.AddChild(button("Spawn plankton", func() { g.state.SpawnPlankton() }))
	p.panel.AddChild(button("Clear plankton", func() { g.state.ClearPlankton() }))
	p.panel.AddChild(button("Reset airplane", func() { g.reset(game.ModeAirplane) }))
	p.panel.AddChild(button("Reset aquarium", func() { g.reset(game.ModeAquarium) }))
	p.panel.AddChild(button("Save", g.save))
	p.panel.AddChild(button("Copy state", g.copyState))
	p.panel.AddChild(button("Paste state", g.pasteState))
	p.panel.AddChild(p.stats)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
	)
	root.AddChild(p.panel)

	p.UI = &ebitenui.UI{Container: root}
	return p
}

// Refresh updates the labels from s.
func (p *CommandPanel) Refresh(s *game.State) {
	if s.Paused() {
		p.pause.SetText("Resume")
	} else {
		p.pause.SetText("Pause")
	}
	p.status.Label = s.Mode.String() + "  " + s.FPSLabel
	p.stats.Label = s.Stats.String()
}

// Contains reports whether the screen point (x, y) is over the panel.
func (p *CommandPanel) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.panel.GetWidget().Rect)
}
