// Package probe implements measurement probes: user-placed markers that
// sample the committed cell state under them every frame. Probes live in an
// ark ECS world so the HUD and telemetry can query them uniformly.
package probe

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/groundflow/sim"
	"github.com/pthm-cable/groundflow/telemetry"
)

// historyLen is the number of recent charge samples kept per probe.
const historyLen = 120

// Position is the probed grid cell.
type Position struct {
	X, Y int
}

// Series holds the latest sample and a rolling charge history.
type Series struct {
	ID     uint32
	Charge int32
	Valid  bool
	Dist   float32

	History [historyLen]int32
	Head    int
	Len     int
}

// Push appends a charge sample to the rolling history.
func (s *Series) Push(c int32) {
	s.History[s.Head] = c
	s.Head = (s.Head + 1) % historyLen
	if s.Len < historyLen {
		s.Len++
	}
}

// Recent returns up to n samples, oldest first.
func (s *Series) Recent(n int) []int32 {
	if n > s.Len {
		n = s.Len
	}
	out := make([]int32, 0, n)
	for k := n; k > 0; k-- {
		idx := (s.Head - k + historyLen) % historyLen
		out = append(out, s.History[idx])
	}
	return out
}

// Snapshot is a read-only view of one probe for the HUD.
type Snapshot struct {
	ID     uint32
	X, Y   int
	Charge int32
	Valid  bool
	Dist   float32
}

// Manager owns the probe world.
type Manager struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Series]
	filter *ecs.Filter2[Position, Series]
	nextID uint32
}

// NewManager creates an empty probe set.
func NewManager() *Manager {
	world := ecs.NewWorld()
	return &Manager{
		world:  world,
		mapper: ecs.NewMap2[Position, Series](world),
		filter: ecs.NewFilter2[Position, Series](world),
		nextID: 1,
	}
}

// Add places a probe at a grid cell and returns its ID. Adding a second
// probe on an occupied cell removes the existing one instead (toggle
// semantics for the middle-click binding).
func (m *Manager) Add(x, y int) uint32 {
	if existing, ok := m.at(x, y); ok {
		m.mapper.Remove(existing)
		return 0
	}

	id := m.nextID
	m.nextID++
	m.mapper.NewEntity(&Position{X: x, Y: y}, &Series{ID: id})
	return id
}

// at finds the probe entity on a cell, if any.
func (m *Manager) at(x, y int) (ecs.Entity, bool) {
	query := m.filter.Query()
	found := false
	var entity ecs.Entity
	for query.Next() {
		pos, _ := query.Get()
		if !found && pos.X == x && pos.Y == y {
			entity = query.Entity()
			found = true
		}
	}
	return entity, found
}

// Count returns the number of active probes.
func (m *Manager) Count() int {
	count := 0
	query := m.filter.Query()
	for query.Next() {
		count++
	}
	return count
}

// Sample reads the committed state under every probe. Call once per frame
// after the engine commit.
func (m *Manager) Sample(e *sim.Engine) {
	query := m.filter.Query()
	for query.Next() {
		pos, series := query.Get()
		cell := e.Cell(pos.X, pos.Y)
		series.Charge = cell.Charge
		series.Valid = cell.Valid
		series.Dist = cell.Dist
		series.Push(cell.Charge)
	}
}

// Snapshots returns the current probe readings, for HUD display.
func (m *Manager) Snapshots() []Snapshot {
	var out []Snapshot
	query := m.filter.Query()
	for query.Next() {
		pos, series := query.Get()
		out = append(out, Snapshot{
			ID:     series.ID,
			X:      pos.X,
			Y:      pos.Y,
			Charge: series.Charge,
			Valid:  series.Valid,
			Dist:   series.Dist,
		})
	}
	return out
}

// Rows converts the current readings to telemetry CSV rows.
func (m *Manager) Rows(frame int64) []telemetry.ProbeRow {
	var rows []telemetry.ProbeRow
	query := m.filter.Query()
	for query.Next() {
		pos, series := query.Get()
		dist := float64(series.Dist)
		if !series.Valid {
			dist = -1
		}
		rows = append(rows, telemetry.ProbeRow{
			Frame:  frame,
			Probe:  series.ID,
			X:      pos.X,
			Y:      pos.Y,
			Charge: series.Charge,
			Valid:  series.Valid,
			Dist:   dist,
		})
	}
	return rows
}
