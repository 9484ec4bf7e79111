// Package game drives the interactive simulation: input handling, the
// per-frame engine pipeline, telemetry flushing, and rendering.
package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/groundflow/config"
	"github.com/pthm-cable/groundflow/probe"
	"github.com/pthm-cable/groundflow/sim"
	"github.com/pthm-cable/groundflow/telemetry"
)

// Options configures game initialization.
type Options struct {
	LogStats       bool    // log window stats and perf via slog
	StatsWindowSec float64 // seconds per stats window (0 = use config)
	OutputDir      string  // CSV output directory ("" = disabled)
	Headless       bool    // skip all rendering state
	StepsPerUpdate int     // simulation frames per update call
}

// Game holds the complete simulation state.
type Game struct {
	engine *sim.Engine
	probes *probe.Manager

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// State
	paused         bool
	stepOnce       bool
	stepsPerUpdate int
	logStats       bool
	flushEvery     int64 // frames per stats window

	// Debug overlay state
	debugMode     bool
	debugShowDist bool
	debugShowCost bool
	showControls  bool

	// Brush state, adjustable from the controls panel
	brushRadius  int
	injectAmount int32

	headless bool
	renderer *fieldRenderer
}

// NewGameWithOptions creates a game instance with the given options.
// Config must be initialized before calling this.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = cfg.Telemetry.StatsWindow
	}
	flushEvery := int64(windowSec * float64(cfg.Screen.TargetFPS))
	if flushEvery < 1 {
		flushEvery = 1
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		engine:         sim.NewEngine(cfg),
		probes:         probe.NewManager(),
		collector:      telemetry.NewCollector(),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		flushEvery:     flushEvery,
		brushRadius:    cfg.Brush.Radius,
		injectAmount:   int32(cfg.Brush.InjectAmount),
		headless:       opts.Headless,
	}

	g.engine.SetPhaseHook(g.perfCollector.StartPhase)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.renderer = newFieldRenderer(cfg)
	}

	return g
}

// Update runs input handling and simulation frames for one display frame.
// The perf tick stays open until Draw finishes so render time is attributed.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseMutate)
	g.handleInput()

	if g.paused && !g.stepOnce {
		return
	}

	steps := g.stepsPerUpdate
	if g.stepOnce {
		steps = 1
		g.stepOnce = false
	}
	for i := 0; i < steps; i++ {
		g.stepFrame()
	}
}

// UpdateHeadless runs simulation frames without touching any raylib state.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.stepFrame()
	}
	g.perfCollector.EndTick()
}

// stepFrame runs one engine frame plus probe sampling and telemetry.
func (g *Game) stepFrame() {
	start := time.Now()
	g.engine.Step()
	stepSeconds := time.Since(start).Seconds()

	g.perfCollector.StartPhase(telemetry.PhaseProbes)
	g.probes.Sample(g.engine)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordFrame(stepSeconds)
	g.flushTelemetry()
}

// Unload releases rendering resources and closes output files.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
	g.engine.Close()
}

// Engine exposes the underlying simulation engine.
func (g *Game) Engine() *sim.Engine { return g.engine }

// Tick returns the current simulation frame index.
func (g *Game) Tick() int64 {
	return g.engine.Frame()
}
