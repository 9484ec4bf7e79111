// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Field     FieldConfig     `yaml:"field"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Sim       SimConfig       `yaml:"sim"`
	Brush     BrushConfig     `yaml:"brush"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The window is always grid size times
// the scale factor; input coordinates map back through the same factor.
type ScreenConfig struct {
	Scale     int `yaml:"scale"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the simulation grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FieldConfig holds field-store and pass parameters.
type FieldConfig struct {
	MaxCharge    int    `yaml:"max_charge"`    // per-cell charge capacity
	CostModel    string `yaml:"cost_model"`    // uniform | weighted
	CommitPolicy string `yaml:"commit_policy"` // clamp | overshoot
	AbsorbPolicy string `yaml:"absorb_policy"` // decay | instant
	AbsorbRate   int    `yaml:"absorb_rate"`   // units per frame for decay
}

// TerrainConfig holds cost-weight generation parameters for the weighted
// cost model. Weights come from opensimplex noise mapped into [min, max].
type TerrainConfig struct {
	Seed    int64   `yaml:"seed"`
	Scale   float64 `yaml:"scale"` // noise feature size in cells
	MinCost float64 `yaml:"min_cost"`
	MaxCost float64 `yaml:"max_cost"`
}

// SimConfig holds execution parameters.
type SimConfig struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// BrushConfig holds painting parameters for the input boundary.
type BrushConfig struct {
	Radius       int `yaml:"radius"`        // cells; 0 paints a single cell
	InjectAmount int `yaml:"inject_amount"` // charge written by injection, clamped to max_charge
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks averaged for perf stats
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	CellCount    int
	WindowWidth  int32
	WindowHeight int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Field.MaxCharge <= 0 {
		return fmt.Errorf("field.max_charge must be positive, got %d", c.Field.MaxCharge)
	}
	if c.Field.AbsorbRate < 0 {
		return fmt.Errorf("field.absorb_rate must not be negative, got %d", c.Field.AbsorbRate)
	}
	if c.Terrain.MinCost < 0 || c.Terrain.MaxCost < c.Terrain.MinCost {
		return fmt.Errorf("terrain cost range [%g, %g] is invalid", c.Terrain.MinCost, c.Terrain.MaxCost)
	}
	if c.Screen.Scale <= 0 {
		return fmt.Errorf("screen.scale must be positive, got %d", c.Screen.Scale)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellCount = c.Grid.Width * c.Grid.Height
	c.Derived.WindowWidth = int32(c.Grid.Width * c.Screen.Scale)
	c.Derived.WindowHeight = int32(c.Grid.Height * c.Screen.Scale)

	if c.Field.AbsorbRate == 0 {
		c.Field.AbsorbRate = 1
	}
	if c.Brush.InjectAmount == 0 || c.Brush.InjectAmount > c.Field.MaxCharge {
		c.Brush.InjectAmount = c.Field.MaxCharge
	}
	if c.Telemetry.PerfCollectorWindow == 0 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// WriteYAML saves the configuration to a file for experiment reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
