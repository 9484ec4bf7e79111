package game

import (
	"log/slog"

	"github.com/pthm-cable/groundflow/telemetry"
)

// recordFrame feeds the frame just stepped into the stats collector.
func (g *Game) recordFrame(stepSeconds float64) {
	stats := g.engine.Stats()
	g.collector.Record(telemetry.FrameRecord{
		Frame:       g.engine.Frame(),
		TotalCharge: g.engine.TotalCharge(),
		ValidCells:  g.engine.ValidCount(),
		GroundCells: g.engine.GroundCount(),
		Moved:       stats.Moved,
		Blocked:     stats.Blocked,
		Absorbed:    stats.Absorbed,
		StepSeconds: stepSeconds,
	})
}

// flushTelemetry closes the stats window when it is full and writes the
// aggregate to the log and the CSV output.
func (g *Game) flushTelemetry() {
	if int64(g.collector.Pending()) < g.flushEvery {
		return
	}

	stats, ok := g.collector.Flush()
	if !ok {
		return
	}

	if g.logStats {
		stats.Log()
		g.perfCollector.Stats().LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if rows := g.probes.Rows(g.engine.Frame()); len(rows) > 0 {
			if err := g.outputManager.WriteProbes(rows); err != nil {
				slog.Error("failed to write probes", "error", err)
			}
		}
	}
}
