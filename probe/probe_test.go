package probe

import (
	"testing"

	"github.com/pthm-cable/groundflow/config"
	"github.com/pthm-cable/groundflow/sim"
)

func init() {
	config.MustInit("")
}

func newTestEngine(t *testing.T) *sim.Engine {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Grid.Width = 8
	cfg.Grid.Height = 8
	cfg.Sim.Workers = 1
	e := sim.NewEngine(cfg)
	t.Cleanup(e.Close)
	return e
}

func TestAddAndToggle(t *testing.T) {
	m := NewManager()

	if id := m.Add(2, 3); id == 0 {
		t.Fatal("expected a probe ID")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 probe, got %d", m.Count())
	}

	// Second add on the same cell removes the probe
	if id := m.Add(2, 3); id != 0 {
		t.Errorf("toggle should return 0, got %d", id)
	}
	if m.Count() != 0 {
		t.Fatalf("expected 0 probes after toggle, got %d", m.Count())
	}
}

func TestSampleTracksEngine(t *testing.T) {
	e := newTestEngine(t)
	m := NewManager()
	m.Add(3, 0)

	e.PaintGround(0, 0)
	e.InjectCharge(3, 0, 5)
	for i := 0; i < 4; i++ {
		e.Step()
		m.Sample(e)
	}

	snaps := m.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	s := snaps[0]
	if !s.Valid || s.Dist != 3 {
		t.Errorf("probe should see valid cell at dist 3, got valid=%v dist=%g", s.Valid, s.Dist)
	}
	want := e.Cell(3, 0).Charge
	if s.Charge != want {
		t.Errorf("probe charge %d, engine charge %d", s.Charge, want)
	}
}

func TestHistoryRing(t *testing.T) {
	var s Series
	for i := int32(0); i < 130; i++ {
		s.Push(i)
	}
	recent := s.Recent(3)
	if len(recent) != 3 || recent[0] != 127 || recent[2] != 129 {
		t.Errorf("unexpected recent samples: %v", recent)
	}
	if got := len(s.Recent(1000)); got != historyLen {
		t.Errorf("history should cap at %d, got %d", historyLen, got)
	}
}

func TestRows(t *testing.T) {
	e := newTestEngine(t)
	m := NewManager()
	m.Add(1, 1)
	e.Step()
	m.Sample(e)

	rows := m.Rows(e.Frame())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Frame != 1 || rows[0].X != 1 || rows[0].Y != 1 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
	if rows[0].Dist != -1 {
		t.Errorf("invalid cell should export dist -1, got %g", rows[0].Dist)
	}
}
