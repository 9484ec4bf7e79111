package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/groundflow/config"
)

func init() {
	config.MustInit("")
	// Keep headless loop tests fast
	cfg := config.Cfg()
	cfg.Grid.Width = 32
	cfg.Grid.Height = 32
	cfg.Sim.Workers = 1
}

func TestHeadlessRunAdvancesFrames(t *testing.T) {
	g := NewGameWithOptions(Options{Headless: true, StepsPerUpdate: 4})
	defer g.Unload()

	e := g.Engine()
	e.PaintGround(0, 0)
	e.InjectCharge(8, 8, 5)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 40 {
		t.Errorf("expected 40 frames, got %d", g.Tick())
	}
	if e.ValidCount() == 0 {
		t.Error("wavefront should have reached some cells")
	}
}

func TestHeadlessRunWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g := NewGameWithOptions(Options{
		Headless:       true,
		StepsPerUpdate: 1,
		OutputDir:      dir,
		StatsWindowSec: 0.05, // 3 frames at 60 fps
	})
	defer g.Unload()

	g.Engine().PaintGround(4, 4)
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	for _, name := range []string{"config.yaml", "telemetry.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
