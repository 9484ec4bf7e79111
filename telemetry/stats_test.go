package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/groundflow/config"
)

func TestCollectorFlushEmpty(t *testing.T) {
	c := NewCollector()
	if _, ok := c.Flush(); ok {
		t.Error("flush of empty collector should report no window")
	}
}

func TestCollectorAggregates(t *testing.T) {
	c := NewCollector()
	c.Record(FrameRecord{Frame: 1, TotalCharge: 10, ValidCells: 4, Moved: 2, StepSeconds: 0.001})
	c.Record(FrameRecord{Frame: 2, TotalCharge: 8, ValidCells: 6, Moved: 3, Absorbed: 2, StepSeconds: 0.003})

	ws, ok := c.Flush()
	if !ok {
		t.Fatal("expected a window")
	}
	if ws.WindowEndFrame != 2 || ws.Frames != 2 {
		t.Errorf("window end=%d frames=%d", ws.WindowEndFrame, ws.Frames)
	}
	if ws.Moved != 5 || ws.Absorbed != 2 {
		t.Errorf("moved=%d absorbed=%d", ws.Moved, ws.Absorbed)
	}
	if ws.ChargeMean != 9 {
		t.Errorf("charge mean = %g, want 9", ws.ChargeMean)
	}
	if ws.StepMeanMs != 2 {
		t.Errorf("step mean = %gms, want 2", ws.StepMeanMs)
	}
	if c.Pending() != 0 {
		t.Error("flush should reset the window")
	}

	// Valid delta is relative to the previous window's end
	c.Record(FrameRecord{Frame: 3, TotalCharge: 8, ValidCells: 9})
	ws, _ = c.Flush()
	if ws.ValidDelta != 3 {
		t.Errorf("valid delta = %d, want 3", ws.ValidDelta)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	// nil receiver is a no-op everywhere
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil output manager write: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil output manager close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	if err := om.WriteTelemetry(WindowStats{WindowEndFrame: 60, TotalCharge: 42}); err != nil {
		t.Fatalf("writing telemetry: %v", err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndFrame: 120, TotalCharge: 40}); err != nil {
		t.Fatalf("writing telemetry: %v", err)
	}
	if err := om.WriteProbes([]ProbeRow{{Frame: 60, Probe: 1, X: 3, Y: 4, Charge: 2, Valid: true, Dist: 5}}); err != nil {
		t.Fatalf("writing probes: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config snapshot: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}

	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "total_charge") {
		t.Errorf("missing header column: %q", lines[0])
	}
}
