package game

import (
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/groundflow/config"
	"github.com/pthm-cable/groundflow/telemetry"
)

// fieldRenderer draws the grid as a single texture scaled to the window.
type fieldRenderer struct {
	texture rl.Texture2D
	pixels  []color.RGBA
	w, h    int
	scale   int
}

func newFieldRenderer(cfg *config.Config) *fieldRenderer {
	w, h := cfg.Grid.Width, cfg.Grid.Height
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &fieldRenderer{
		texture: texture,
		pixels:  make([]color.RGBA, w*h),
		w:       w,
		h:       h,
		scale:   cfg.Screen.Scale,
	}
}

func (r *fieldRenderer) unload() {
	rl.UnloadTexture(r.texture)
}

// Draw renders the field, probes, HUD, and controls panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.perfCollector.StartPhase(telemetry.PhaseRender)

	g.updatePixels()
	rl.UpdateTexture(g.renderer.texture, g.renderer.pixels)

	r := g.renderer
	rl.DrawTexturePro(
		r.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.w), Height: float32(r.h)},
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.w * r.scale), Height: float32(r.h * r.scale)},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)

	g.drawProbes()
	g.drawHUD()
	if g.showControls {
		g.drawControlsPanel()
	}

	rl.EndDrawing()
	g.perfCollector.EndTick()
}

// updatePixels fills the pixel buffer from the committed field state.
func (g *Game) updatePixels() {
	if g.debugMode && g.debugShowCost {
		g.fillCostPixels()
		return
	}
	if g.debugMode && g.debugShowDist {
		g.fillDistPixels()
		return
	}
	g.fillFieldPixels()
}

// fillFieldPixels is the standard view: ground white, charge amber scaled by
// fill level, valid empty cells dark blue, invalid cells near-black.
func (g *Game) fillFieldPixels() {
	ground := g.engine.GroundData()
	charge := g.engine.ChargeData()
	valid := g.engine.ValidData()
	maxCharge := float32(g.engine.MaxCharge())

	for i := range g.renderer.pixels {
		switch {
		case ground[i]:
			g.renderer.pixels[i] = color.RGBA{R: 240, G: 240, B: 240, A: 255}
		case charge[i] > 0:
			t := float32(charge[i]) / maxCharge
			if t > 1 {
				t = 1
			}
			g.renderer.pixels[i] = color.RGBA{
				R: uint8(80 + t*175),
				G: uint8(50 + t*130),
				B: uint8(10 + t*20),
				A: 255,
			}
		case valid[i]:
			g.renderer.pixels[i] = color.RGBA{R: 15, G: 25, B: 60, A: 255}
		default:
			g.renderer.pixels[i] = color.RGBA{R: 5, G: 5, B: 8, A: 255}
		}
	}
}

// fillDistPixels shades reachable cells by distance with the usual
// dark-blue to white gradient. Unreachable cells stay black.
func (g *Game) fillDistPixels() {
	valid := g.engine.ValidData()
	dist := g.engine.DistData()

	var maxDist float32 = 1
	for i, d := range dist {
		if valid[i] && d > maxDist {
			maxDist = d
		}
	}

	for i := range g.renderer.pixels {
		if !valid[i] {
			g.renderer.pixels[i] = color.RGBA{R: 5, G: 5, B: 8, A: 255}
			continue
		}
		g.renderer.pixels[i] = gradientColor(dist[i] / maxDist)
	}
}

// fillCostPixels shades each cell by its terrain weight, light is cheap.
func (g *Game) fillCostPixels() {
	cost := g.engine.CostData()

	minCost, maxCost := cost[0], cost[0]
	for _, c := range cost {
		if c < minCost {
			minCost = c
		}
		if c > maxCost {
			maxCost = c
		}
	}
	span := maxCost - minCost
	if span == 0 {
		span = 1
	}

	for i, c := range cost {
		v := uint8(220 - (c-minCost)/span*180)
		g.renderer.pixels[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
}

// gradientColor maps a normalized value to dark blue -> cyan -> yellow -> white.
func gradientColor(v float32) color.RGBA {
	var r, g, b uint8
	switch {
	case v < 0.25:
		t := v / 0.25
		r = uint8(10 + t*30)
		g = uint8(20 + t*60)
		b = uint8(60 + t*100)
	case v < 0.5:
		t := (v - 0.25) / 0.25
		r = uint8(40 + t*20)
		g = uint8(80 + t*120)
		b = uint8(160 + t*40)
	case v < 0.75:
		t := (v - 0.5) / 0.25
		r = uint8(60 + t*140)
		g = uint8(200 - t*40)
		b = uint8(200 - t*150)
	default:
		t := (v - 0.75) / 0.25
		r = uint8(200 + t*55)
		g = uint8(160 + t*95)
		b = uint8(50 + t*205)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawProbes marks probed cells and shows their latest reading.
func (g *Game) drawProbes() {
	scale := g.renderer.scale
	half := int32(scale / 2)

	for _, s := range g.probes.Snapshots() {
		px := int32(s.X*scale) + half
		py := int32(s.Y*scale) + half
		rl.DrawCircleLines(px, py, float32(scale), rl.Magenta)
		label := fmt.Sprintf("#%d c=%d", s.ID, s.Charge)
		if s.Valid {
			label += fmt.Sprintf(" d=%.0f", s.Dist)
		}
		rl.DrawText(label, px+int32(scale), py-int32(scale), 14, rl.Magenta)
	}
}

// drawHUD renders the status line and debug info.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Frame: %d", g.engine.Frame()), 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Ground: %d  Valid: %d  Charge: %d",
			g.engine.GroundCount(), g.engine.ValidCount(), g.engine.TotalCharge()),
		10, 35, 20, rl.White,
	)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", g.stepsPerUpdate), 10, 60, 20, rl.White)

	if g.paused {
		rl.DrawText("PAUSED [N steps once]", 10, 85, 20, rl.Yellow)
	}

	if g.debugMode {
		stats := g.engine.Stats()
		perf := g.perfCollector.Stats()
		rl.DrawText(
			fmt.Sprintf("moved=%d blocked=%d absorbed=%d  tick=%s",
				stats.Moved, stats.Blocked, stats.Absorbed,
				perf.AvgTickDuration.Round(time.Microsecond)),
			10, 110, 20, rl.Lime,
		)
		rl.DrawText("[R] distance  [C] cost", 10, 135, 20, rl.Lime)
	}
}
