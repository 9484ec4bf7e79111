package sim

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/groundflow/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

// testConfig returns a fresh config with the given grid size. Tests mutate
// the copy freely without touching the global config.
func testConfig(t testing.TB, w, h int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Grid.Width = w
	cfg.Grid.Height = h
	cfg.Sim.Workers = 1
	return cfg
}

func newTestEngine(t testing.TB, w, h int, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := testConfig(t, w, h)
	if mutate != nil {
		mutate(cfg)
	}
	e := NewEngine(cfg)
	t.Cleanup(e.Close)
	return e
}

func TestInjectChargeClamped(t *testing.T) {
	e := newTestEngine(t, 4, 4, nil)

	e.InjectCharge(1, 1, 100)
	if got := e.Cell(1, 1).Charge; got != e.MaxCharge() {
		t.Errorf("expected injection clamped to %d, got %d", e.MaxCharge(), got)
	}

	e.InjectCharge(1, 1, -3)
	if got := e.Cell(1, 1).Charge; got != 0 {
		t.Errorf("expected negative injection clamped to 0, got %d", got)
	}

	// Out of bounds writes are ignored
	e.InjectCharge(-1, 0, 5)
	e.PaintGround(4, 4)
}

func TestGroundMonotonic(t *testing.T) {
	e := newTestEngine(t, 8, 8, nil)

	e.PaintGround(3, 3)
	e.PaintGround(3, 3) // idempotent
	for i := 0; i < 20; i++ {
		e.Step()
	}
	if !e.Cell(3, 3).Ground {
		t.Error("ground flag must survive stepping")
	}
	if e.GroundCount() != 1 {
		t.Errorf("expected exactly 1 ground cell, got %d", e.GroundCount())
	}
}

func TestValidMonotonic(t *testing.T) {
	e := newTestEngine(t, 16, 16, nil)
	e.PaintGround(8, 8)

	prev := make([]bool, len(e.ValidData()))
	for frame := 0; frame < 30; frame++ {
		e.Step()
		valid := e.ValidData()
		for i, was := range prev {
			if was && !valid[i] {
				x, y := e.Grid().Coords(i)
				t.Fatalf("frame %d: cell (%d,%d) lost validity", frame, x, y)
			}
		}
		copy(prev, valid)
	}
}

func TestChargeBoundsEveryFrame(t *testing.T) {
	e := newTestEngine(t, 16, 16, nil)
	rng := rand.New(rand.NewSource(7))

	e.PaintGround(0, 0)
	e.PaintGround(15, 15)
	for frame := 0; frame < 100; frame++ {
		// Keep injecting and painting while the field evolves
		e.InjectCharge(rng.Intn(16), rng.Intn(16), int32(rng.Intn(40)-4))
		if frame%7 == 0 {
			e.PaintGround(rng.Intn(16), rng.Intn(16))
		}
		e.Step()

		for i, c := range e.ChargeData() {
			if c < 0 || c > e.MaxCharge() {
				x, y := e.Grid().Coords(i)
				t.Fatalf("frame %d: cell (%d,%d) charge %d out of [0,%d]",
					frame, x, y, c, e.MaxCharge())
			}
		}
	}
}

func TestFrameCounter(t *testing.T) {
	e := newTestEngine(t, 4, 4, nil)
	for i := 0; i < 5; i++ {
		e.Step()
	}
	if e.Frame() != 5 {
		t.Errorf("expected frame 5, got %d", e.Frame())
	}
}

// TestWorkerCountIndependence runs the same scenario serial and parallel and
// expects bit-identical committed state: propagation writes only own-cell
// records and transport accumulation is commutative.
func TestWorkerCountIndependence(t *testing.T) {
	run := func(workers int) *Engine {
		e := newTestEngine(t, 128, 128, func(cfg *config.Config) {
			cfg.Sim.Workers = workers
		})
		rng := rand.New(rand.NewSource(99))
		for k := 0; k < 40; k++ {
			e.PaintGround(rng.Intn(128), rng.Intn(128))
		}
		for frame := 0; frame < 60; frame++ {
			e.InjectCharge(rng.Intn(128), rng.Intn(128), int32(rng.Intn(17)))
			e.Step()
		}
		return e
	}

	serial := run(1)
	parallel := run(8)

	charge1, charge2 := serial.ChargeData(), parallel.ChargeData()
	valid1, valid2 := serial.ValidData(), parallel.ValidData()
	dist1, dist2 := serial.DistData(), parallel.DistData()
	fwd1, fwd2 := serial.ForwardData(), parallel.ForwardData()
	for i := range charge1 {
		if charge1[i] != charge2[i] || valid1[i] != valid2[i] ||
			dist1[i] != dist2[i] || fwd1[i] != fwd2[i] {
			x, y := serial.Grid().Coords(i)
			t.Fatalf("cell (%d,%d) diverges between 1 and 8 workers", x, y)
		}
	}
}

func BenchmarkStep(b *testing.B) {
	cfg := testConfig(b, 256, 256)
	cfg.Sim.Workers = 0
	e := NewEngine(cfg)
	defer e.Close()

	rng := rand.New(rand.NewSource(1))
	for k := 0; k < 64; k++ {
		e.PaintGround(rng.Intn(256), rng.Intn(256))
	}
	for k := 0; k < 512; k++ {
		e.InjectCharge(rng.Intn(256), rng.Intn(256), 16)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}

func BenchmarkStepSerial(b *testing.B) {
	cfg := testConfig(b, 256, 256)
	e := NewEngine(cfg)
	defer e.Close()

	for k := 0; k < 64; k++ {
		e.PaintGround((k*37)%256, (k*53)%256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}
