package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// FrameRecord is the per-frame field measurement fed into the collector.
type FrameRecord struct {
	Frame       int64
	TotalCharge int64
	ValidCells  int
	GroundCells int
	Moved       int64
	Blocked     int64
	Absorbed    int64
	StepSeconds float64
}

// WindowStats holds aggregated statistics for a stats window, written as one
// CSV row per window.
type WindowStats struct {
	WindowEndFrame int64   `csv:"window_end"`
	Frames         int     `csv:"frames"`
	GroundCells    int     `csv:"ground_cells"`
	ValidCells     int     `csv:"valid_cells"`
	ValidDelta     int     `csv:"valid_delta"`
	TotalCharge    int64   `csv:"total_charge"`
	ChargeMean     float64 `csv:"charge_mean"`
	ChargeStd      float64 `csv:"charge_std"`
	Moved          int64   `csv:"moved"`
	Blocked        int64   `csv:"blocked"`
	Absorbed       int64   `csv:"absorbed"`
	StepMeanMs     float64 `csv:"step_mean_ms"`
	StepStdMs      float64 `csv:"step_std_ms"`
}

// Collector aggregates frame records into window statistics.
type Collector struct {
	frames      []FrameRecord
	lastValid   int
	haveBase    bool
	chargeSer   []float64
	stepSer     []float64
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record adds one frame's measurements to the current window.
func (c *Collector) Record(r FrameRecord) {
	c.frames = append(c.frames, r)
	c.chargeSer = append(c.chargeSer, float64(r.TotalCharge))
	c.stepSer = append(c.stepSer, r.StepSeconds)
}

// Pending returns the number of frames in the unflushed window.
func (c *Collector) Pending() int { return len(c.frames) }

// Flush closes the current window and returns its aggregate. The boolean is
// false when no frames were recorded since the last flush.
func (c *Collector) Flush() (WindowStats, bool) {
	n := len(c.frames)
	if n == 0 {
		return WindowStats{}, false
	}
	last := c.frames[n-1]

	var moved, blocked, absorbed int64
	for _, f := range c.frames {
		moved += f.Moved
		blocked += f.Blocked
		absorbed += f.Absorbed
	}

	chargeMean, chargeStd := stat.MeanStdDev(c.chargeSer, nil)
	stepMean, stepStd := stat.MeanStdDev(c.stepSer, nil)
	if n < 2 {
		chargeStd, stepStd = 0, 0
	}

	ws := WindowStats{
		WindowEndFrame: last.Frame,
		Frames:         n,
		GroundCells:    last.GroundCells,
		ValidCells:     last.ValidCells,
		TotalCharge:    last.TotalCharge,
		ChargeMean:     chargeMean,
		ChargeStd:      chargeStd,
		Moved:          moved,
		Blocked:        blocked,
		Absorbed:       absorbed,
		StepMeanMs:     stepMean * 1000,
		StepStdMs:      stepStd * 1000,
	}
	if c.haveBase {
		ws.ValidDelta = last.ValidCells - c.lastValid
	}
	c.lastValid = last.ValidCells
	c.haveBase = true

	c.frames = c.frames[:0]
	c.chargeSer = c.chargeSer[:0]
	c.stepSer = c.stepSer[:0]
	return ws, true
}

// Log writes the window aggregate via slog.
func (ws WindowStats) Log() {
	slog.Info("window",
		"frame", ws.WindowEndFrame,
		"ground", ws.GroundCells,
		"valid", ws.ValidCells,
		"valid_delta", ws.ValidDelta,
		"charge", ws.TotalCharge,
		"moved", ws.Moved,
		"blocked", ws.Blocked,
		"absorbed", ws.Absorbed,
		"step_ms", ws.StepMeanMs,
	)
}
