package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/flightsim/game"
	"github.com/milk9111/flightsim/vmath"
)

var keyBindings = []struct {
	ebiten ebiten.Key
	game   game.Key
}{
	{ebiten.KeyArrowLeft, game.KeyLeft},
	{ebiten.KeyArrowRight, game.KeyRight},
	{ebiten.KeyArrowUp, game.KeyUp},
	{ebiten.KeyArrowDown, game.KeyDown},
	{ebiten.KeyS, game.KeyS},
	{ebiten.KeyF, game.KeyF},
	{ebiten.KeyE, game.KeyE},
	{ebiten.KeyD, game.KeyD},
	{ebiten.KeySpace, game.KeySpace},
	{ebiten.KeyHome, game.KeyHome},
}

// Input copies one frame of keyboard and mouse state into the simulation's
// input snapshot.
type Input struct {
	// Sensitivity scales drag panning, 1 pans the world with the cursor.
	Sensitivity float64
	// ZoomStep is the zoom factor per wheel notch.
	ZoomStep float64

	dragging  bool
	lastMouse vmath.Vec2
}

// Update fills in. Mouse buttons and the wheel are ignored while the cursor
// is over the UI.
func (i *Input) Update(in *game.Inputs, overUI bool) {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.ebiten) {
			in.Press(b.game)
		} else if ebiten.IsKeyPressed(b.ebiten) {
			in.Hold(b.game)
		}
	}

	mx, my := ebiten.CursorPosition()
	mouse := vmath.V2(float64(mx), float64(my))
	in.PointerPix = mouse
	defer func() { i.lastMouse = mouse }()

	if overUI {
		i.dragging = false
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 && i.ZoomStep > 1 {
		in.Zoom(math.Pow(i.ZoomStep, wy))
	}

	in.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.MouseJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.MouseJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	drag := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if drag && i.dragging {
		in.Pan(i.lastMouse.Sub(mouse).Scale(i.Sensitivity / game.PanSensitivity))
	}
	i.dragging = drag
}
