package sim

import (
	"testing"

	"github.com/pthm-cable/groundflow/config"
)

func TestGenerateCostsInRange(t *testing.T) {
	grid := Grid{W: 32, H: 32}
	dst := make([]float32, grid.Cells())
	tc := config.TerrainConfig{Seed: 7, Scale: 8, MinCost: 1, MaxCost: 4}

	GenerateCosts(dst, grid, tc)
	for i, c := range dst {
		if c < 1 || c > 4 {
			x, y := grid.Coords(i)
			t.Fatalf("cost at (%d,%d) = %g outside [1,4]", x, y, c)
		}
	}
}

func TestGenerateCostsDeterministic(t *testing.T) {
	grid := Grid{W: 16, H: 16}
	a := make([]float32, grid.Cells())
	b := make([]float32, grid.Cells())
	tc := config.TerrainConfig{Seed: 42, Scale: 12, MinCost: 1, MaxCost: 3}

	GenerateCosts(a, grid, tc)
	GenerateCosts(b, grid, tc)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed must produce identical terrain")
		}
	}

	tc.Seed = 43
	GenerateCosts(b, grid, tc)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different terrain")
	}
}
