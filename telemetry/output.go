package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/groundflow/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	probeFile     *os.File

	telemetryHeaderWritten bool
	probeHeaderWritten     bool
}

// ProbeRow is one probe sample written to probes.csv.
type ProbeRow struct {
	Frame  int64   `csv:"frame"`
	Probe  uint32  `csv:"probe"`
	X      int     `csv:"x"`
	Y      int     `csv:"y"`
	Charge int32   `csv:"charge"`
	Valid  bool    `csv:"valid"`
	Dist   float64 `csv:"dist"`
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "probes.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating probes.csv: %w", err)
	}
	om.probeFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WriteProbes appends probe samples to probes.csv.
func (om *OutputManager) WriteProbes(rows []ProbeRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}

	if !om.probeHeaderWritten {
		if err := gocsv.Marshal(rows, om.probeFile); err != nil {
			return fmt.Errorf("writing probes: %w", err)
		}
		om.probeHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.probeFile); err != nil {
			return fmt.Errorf("writing probes: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.telemetryFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.probeFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
