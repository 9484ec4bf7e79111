package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 260
	panelHeight = 190
	panelMargin = 10
)

// panelRect places the controls panel in the top-right corner.
func (g *Game) panelRect() rl.Rectangle {
	windowW := float32(g.renderer.w * g.renderer.scale)
	return rl.Rectangle{
		X:      windowW - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: panelHeight,
	}
}

// panelContains reports whether a screen position lies inside the panel.
func (g *Game) panelContains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, g.panelRect())
}

// drawControlsPanel renders the brush controls.
func (g *Game) drawControlsPanel() {
	panel := g.panelRect()
	rl.DrawRectangleRec(panel, rl.Fade(rl.Black, 0.7))
	rl.DrawRectangleLinesEx(panel, 1, rl.DarkGray)

	x := panel.X + 10
	y := panel.Y + 10
	sliderW := panel.Width - 90

	rl.DrawText("Brush", int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	rl.DrawText("Radius", int32(x), int32(y), 14, rl.Gray)
	y += 18
	newRadius := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"0", "16",
		float32(g.brushRadius), 0, 16,
	)
	rl.DrawText(fmt.Sprintf("%d", g.brushRadius), int32(x+sliderW+14), int32(y+2), 16, rl.RayWhite)
	if int(newRadius) != g.brushRadius {
		g.brushRadius = int(newRadius)
	}
	y += 32

	rl.DrawText("Inject amount", int32(x), int32(y), 14, rl.Gray)
	y += 18
	maxCharge := float32(g.engine.MaxCharge())
	newAmount := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 20},
		"0", fmt.Sprintf("%d", g.engine.MaxCharge()),
		float32(g.injectAmount), 0, maxCharge,
	)
	rl.DrawText(fmt.Sprintf("%d", g.injectAmount), int32(x+sliderW+14), int32(y+2), 16, rl.RayWhite)
	if int32(newAmount) != g.injectAmount {
		g.injectAmount = int32(newAmount)
	}
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, pauseLabel(g.paused)) {
		g.paused = !g.paused
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 28}, "Step once") {
		g.stepOnce = true
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
