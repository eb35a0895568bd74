package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/flightsim/render"
)

// atlasCellPx is the size of one sprite cell in the generated atlas.
const atlasCellPx = 32

// newAtlas paints the sprite sheet the scenegraph's sprites address. Sprites
// are drawn white-ish so quad mix colours tint them.
func newAtlas() *ebiten.Image {
	size := render.AtlasCells * atlasCellPx
	img := ebiten.NewImage(size, size)

	leafX, leafY := cellOrigin(render.Leaf)
	paintLeaf(img, leafX, leafY)
	crabX, crabY := cellOrigin(render.Crab)
	paintCrab(img, crabX, crabY)
	paintWing(img, render.Wing)
	paintDisc(img, render.Wheel, 0.4, colornames.Dimgray)
	paintDisc(img, render.Center, 0.3, colornames.Yellow)
	paintFuselage(img, render.Plane)
	return img
}

func cellOrigin(s render.Sprite) (x, y float32) {
	return float32(s.Pos[0]) * atlasCellPx, float32(s.Pos[1]) * atlasCellPx
}

func cellSize(s render.Sprite) (w, h float32) {
	return float32(s.Size[0]) * atlasCellPx, float32(s.Size[1]) * atlasCellPx
}

func paintLeaf(img *ebiten.Image, x, y float32) {
	const c = atlasCellPx / 2
	vector.FillCircle(img, x+c, y+c, c*0.6, colornames.Mediumseagreen, true)
	vector.FillCircle(img, x+c*1.2, y+c*0.8, c*0.25, colornames.Palegreen, true)
}

func paintCrab(img *ebiten.Image, x, y float32) {
	const c = atlasCellPx / 2
	vector.FillCircle(img, x+c, y+c, c*0.75, colornames.Whitesmoke, true)
	// eyes face +X, the crablet's forward axis
	vector.FillCircle(img, x+c*1.5, y+c*0.6, c*0.18, colornames.Black, true)
	vector.FillCircle(img, x+c*1.5, y+c*1.4, c*0.18, colornames.Black, true)
}

func paintWing(img *ebiten.Image, s render.Sprite) {
	x, y := cellOrigin(s)
	w, h := cellSize(s)
	vector.FillRect(img, x+2, y+h*0.3, w-4, h*0.4, colornames.Lightgray, true)
	vector.StrokeRect(img, x+2, y+h*0.3, w-4, h*0.4, 1, colornames.Gray, true)
}

func paintDisc(img *ebiten.Image, s render.Sprite, radius float32, c color.Color) {
	x, y := cellOrigin(s)
	w, h := cellSize(s)
	vector.FillCircle(img, x+w/2, y+h/2, w*radius, c, true)
}

func paintFuselage(img *ebiten.Image, s render.Sprite) {
	x, y := cellOrigin(s)
	w, h := cellSize(s)
	vector.FillRect(img, x+w*0.05, y+h*0.4, w*0.9, h*0.25, colornames.White, true)
	// tail fin at the back, nose to +X
	vector.FillRect(img, x+w*0.05, y+h*0.15, w*0.08, h*0.3, colornames.White, true)
	vector.FillCircle(img, x+w*0.93, y+h*0.525, h*0.125, colornames.Lightsteelblue, true)
}
