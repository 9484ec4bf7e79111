package sim

import "fmt"

// CostModel selects how edge costs are computed during propagation.
type CostModel uint8

const (
	// CostUniform charges 1 per step regardless of terrain.
	CostUniform CostModel = iota
	// CostWeighted charges the destination cell's terrain weight per step.
	CostWeighted
)

// ParseCostModel maps a config string to a CostModel.
func ParseCostModel(s string) (CostModel, error) {
	switch s {
	case "", "uniform":
		return CostUniform, nil
	case "weighted":
		return CostWeighted, nil
	}
	return CostUniform, fmt.Errorf("unknown cost model %q", s)
}

func (m CostModel) String() string {
	if m == CostWeighted {
		return "weighted"
	}
	return "uniform"
}

// CommitPolicy selects how transient staged-charge overshoot is resolved
// when the staging buffer is committed. Several cells may push into the same
// destination in one frame, each having passed the capacity check against the
// destination's pre-frame charge, so a staged value can briefly exceed the
// configured maximum.
type CommitPolicy uint8

const (
	// CommitClamp clamps committed charge to the configured maximum.
	// This is the canonical policy.
	CommitClamp CommitPolicy = iota
	// CommitOvershoot lets committed charge exceed the maximum by up to the
	// worst-case same-frame in-degree of a transporting cell (3: four
	// neighbors minus the forward edge). The excess drains through normal
	// transport on later frames.
	CommitOvershoot
)

// maxInDegree is the largest number of simultaneous same-frame transfers a
// non-ground cell can receive: its four neighbors minus its own forward edge.
const maxInDegree = 3

// ParseCommitPolicy maps a config string to a CommitPolicy.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch s {
	case "", "clamp":
		return CommitClamp, nil
	case "overshoot":
		return CommitOvershoot, nil
	}
	return CommitClamp, fmt.Errorf("unknown commit policy %q", s)
}

func (p CommitPolicy) String() string {
	if p == CommitOvershoot {
		return "overshoot"
	}
	return "clamp"
}

// AbsorbPolicy selects how ground cells consume the charge that reaches them.
type AbsorbPolicy uint8

const (
	// AbsorbDecay removes a fixed number of units per frame (absorb_rate).
	// This is the canonical policy and matches one unit per frame by default.
	AbsorbDecay AbsorbPolicy = iota
	// AbsorbInstant removes the cell's entire pre-frame charge each frame.
	AbsorbInstant
)

// ParseAbsorbPolicy maps a config string to an AbsorbPolicy.
func ParseAbsorbPolicy(s string) (AbsorbPolicy, error) {
	switch s {
	case "", "decay":
		return AbsorbDecay, nil
	case "instant":
		return AbsorbInstant, nil
	}
	return AbsorbDecay, fmt.Errorf("unknown absorb policy %q", s)
}

func (p AbsorbPolicy) String() string {
	if p == AbsorbInstant {
		return "instant"
	}
	return "decay"
}
