package sim

import (
	"math"

	"github.com/pthm-cable/groundflow/config"
)

// Unreachable is the distance label of cells with no known path to ground.
// It must never be read for anything but comparison while the cell is invalid.
var Unreachable = float32(math.Inf(1))

// Engine owns the field store and runs the per-frame pipeline:
// mutations → propagation → transport → commit. It is not safe for
// concurrent mutation during Step; the interactive loop and the headless
// runner both drive it from a single goroutine.
type Engine struct {
	grid Grid

	maxCharge    int32
	costModel    CostModel
	commitPolicy CommitPolicy
	absorbPolicy AbsorbPolicy
	absorbRate   int32

	// Permanent per-cell state
	ground []bool
	cost   []float32

	// Charge: authoritative buffer plus per-frame staging
	charge []int32
	staged []int32

	// Distance field, double-buffered: cur is read, 1-cur is written, then
	// the buffers swap. The propagation pass is a pure function of the
	// previous frame's values.
	valid   [2][]bool
	dist    [2][]float32
	forward [2][]int32
	cur     int

	pool  *sweepPool
	frame int64

	stats     FrameStats
	phaseHook func(name string)
}

// FrameStats counts transport outcomes for the most recent frame.
type FrameStats struct {
	Moved    int64 // unit transfers that passed the capacity check
	Blocked  int64 // transfers refused because the destination was full
	Absorbed int64 // units removed at ground cells
}

// CellState is the read-only render projection of a single cell.
type CellState struct {
	Ground bool
	Charge int32
	Valid  bool
	Dist   float32
}

// NewEngine creates an engine for the configured grid. All cells start
// uncharged, invalid, and forwarding to themselves; weighted cost models get
// their terrain weights generated from the configured noise parameters.
func NewEngine(cfg *config.Config) *Engine {
	grid := Grid{W: cfg.Grid.Width, H: cfg.Grid.Height}
	n := grid.Cells()

	costModel, err := ParseCostModel(cfg.Field.CostModel)
	if err != nil {
		panic("sim: " + err.Error())
	}
	commitPolicy, err := ParseCommitPolicy(cfg.Field.CommitPolicy)
	if err != nil {
		panic("sim: " + err.Error())
	}
	absorbPolicy, err := ParseAbsorbPolicy(cfg.Field.AbsorbPolicy)
	if err != nil {
		panic("sim: " + err.Error())
	}

	e := &Engine{
		grid:         grid,
		maxCharge:    int32(cfg.Field.MaxCharge),
		costModel:    costModel,
		commitPolicy: commitPolicy,
		absorbPolicy: absorbPolicy,
		absorbRate:   int32(cfg.Field.AbsorbRate),
		ground:       make([]bool, n),
		cost:         make([]float32, n),
		charge:       make([]int32, n),
		staged:       make([]int32, n),
		pool:         newSweepPool(n, cfg.Sim.Workers),
	}

	for b := 0; b < 2; b++ {
		e.valid[b] = make([]bool, n)
		e.dist[b] = make([]float32, n)
		e.forward[b] = make([]int32, n)
	}
	for i := 0; i < n; i++ {
		e.cost[i] = 1
		e.dist[0][i] = Unreachable
		e.dist[1][i] = Unreachable
		e.forward[0][i] = int32(i)
		e.forward[1][i] = int32(i)
	}

	if costModel == CostWeighted {
		GenerateCosts(e.cost, grid, cfg.Terrain)
	}

	return e
}

// Close stops the worker pool. The engine must not be stepped afterwards.
func (e *Engine) Close() {
	e.pool.stopWorkers()
}

// SetPhaseHook installs a callback invoked at the start of each pipeline
// phase during Step, with the phase name. Used for timing instrumentation.
func (e *Engine) SetPhaseHook(hook func(name string)) {
	e.phaseHook = hook
}

func (e *Engine) enterPhase(name string) {
	if e.phaseHook != nil {
		e.phaseHook(name)
	}
}

// Step runs one frame of the pipeline. Mutations made since the previous
// Step are visible to this frame's propagation pass.
func (e *Engine) Step() {
	e.stats = FrameStats{}
	e.enterPhase("propagate")
	e.propagate()
	e.enterPhase("transport")
	e.transport()
	e.enterPhase("commit")
	e.commit()
	e.frame++
}

// PaintGround marks a cell as a permanent source/sink. Idempotent; a ground
// cell never reverts. Out-of-bounds coordinates are ignored.
func (e *Engine) PaintGround(x, y int) {
	if !e.grid.InBounds(x, y) {
		return
	}
	e.ground[e.grid.Index(x, y)] = true
}

// InjectCharge overwrites a cell's charge, bypassing transport. The amount
// is clamped to [0, MaxCharge]; both the authoritative and staged values are
// set so a mid-pipeline read never sees the stale charge.
func (e *Engine) InjectCharge(x, y int, amount int32) {
	if !e.grid.InBounds(x, y) {
		return
	}
	if amount < 0 {
		amount = 0
	}
	if amount > e.maxCharge {
		amount = e.maxCharge
	}
	i := e.grid.Index(x, y)
	e.charge[i] = amount
	e.staged[i] = amount
}

// Grid returns the engine's coordinate space.
func (e *Engine) Grid() Grid { return e.grid }

// Frame returns the number of completed frames.
func (e *Engine) Frame() int64 { return e.frame }

// MaxCharge returns the per-cell charge capacity.
func (e *Engine) MaxCharge() int32 { return e.maxCharge }

// Stats returns the transport counters of the most recent frame.
func (e *Engine) Stats() FrameStats { return e.stats }

// Cell returns the committed state of one cell for external consumers.
func (e *Engine) Cell(x, y int) CellState {
	i := e.grid.Index(x, y)
	return CellState{
		Ground: e.ground[i],
		Charge: e.charge[i],
		Valid:  e.valid[e.cur][i],
		Dist:   e.dist[e.cur][i],
	}
}

// GroundData returns the ground flags for visualization. Read-only.
func (e *Engine) GroundData() []bool { return e.ground }

// ChargeData returns the committed charge field for visualization. Read-only.
func (e *Engine) ChargeData() []int32 { return e.charge }

// ValidData returns the committed validity field. Read-only.
func (e *Engine) ValidData() []bool { return e.valid[e.cur] }

// DistData returns the committed distance field. Entries are only meaningful
// where the cell is valid. Read-only.
func (e *Engine) DistData() []float32 { return e.dist[e.cur] }

// ForwardData returns the committed forwarding pointers. Read-only.
func (e *Engine) ForwardData() []int32 { return e.forward[e.cur] }

// CostData returns the terrain cost weights. Read-only.
func (e *Engine) CostData() []float32 { return e.cost }

// TotalCharge sums the committed charge across the grid.
func (e *Engine) TotalCharge() int64 {
	var total int64
	for _, c := range e.charge {
		total += int64(c)
	}
	return total
}

// ValidCount returns the number of cells with a known path to ground.
func (e *Engine) ValidCount() int {
	count := 0
	for _, v := range e.valid[e.cur] {
		if v {
			count++
		}
	}
	return count
}

// GroundCount returns the number of painted ground cells.
func (e *Engine) GroundCount() int {
	count := 0
	for _, g := range e.ground {
		if g {
			count++
		}
	}
	return count
}
