package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes mouse painting and keyboard controls.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Single step while paused
	if rl.IsKeyPressed(rl.KeyN) {
		g.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 16 {
		g.stepsPerUpdate++
	}

	// Debug mode toggle
	if rl.IsKeyPressed(rl.KeyD) {
		g.debugMode = !g.debugMode
		if g.debugMode {
			g.debugShowDist = true // Default to showing the distance overlay
		}
	}

	// Debug sub-options (only when debug mode is active)
	if g.debugMode {
		if rl.IsKeyPressed(rl.KeyR) {
			g.debugShowDist = !g.debugShowDist
		}
		if rl.IsKeyPressed(rl.KeyC) {
			g.debugShowCost = !g.debugShowCost
		}
	}

	// Controls panel toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showControls = !g.showControls
	}

	g.handleMouse()
}

// handleMouse applies the paint and inject brushes and probe toggling. The
// panel swallows clicks so slider drags don't paint through it.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if g.showControls && g.panelContains(mouse) {
		return
	}

	cx, cy, ok := g.cellAt(mouse)
	if !ok {
		return
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.paintBrush(cx, cy)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		g.injectBrush(cx, cy)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		g.probes.Add(cx, cy)
	}
}

// cellAt maps a screen position to grid coordinates. Negative positions
// would truncate toward cell zero, so they are rejected outright.
func (g *Game) cellAt(mouse rl.Vector2) (int, int, bool) {
	if mouse.X < 0 || mouse.Y < 0 {
		return 0, 0, false
	}
	scale := g.renderer.scale
	cx := int(mouse.X) / scale
	cy := int(mouse.Y) / scale
	if !g.engine.Grid().InBounds(cx, cy) {
		return 0, 0, false
	}
	return cx, cy, true
}

// paintBrush marks ground in a disc around the cell.
func (g *Game) paintBrush(cx, cy int) {
	r := g.brushRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			g.engine.PaintGround(cx+dx, cy+dy)
		}
	}
}

// injectBrush writes charge in a disc around the cell.
func (g *Game) injectBrush(cx, cy int) {
	r := g.brushRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			g.engine.InjectCharge(cx+dx, cy+dy, g.injectAmount)
		}
	}
}
