package sim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/groundflow/config"
)

// GenerateCosts fills dst with terrain cost weights for the weighted cost
// model. Normalized opensimplex noise in [0, 1] is mapped into the
// configured [min_cost, max_cost] range, so smooth regions of cheap and
// expensive terrain emerge at the configured feature scale.
func GenerateCosts(dst []float32, grid Grid, tc config.TerrainConfig) {
	noise := opensimplex.NewNormalized(tc.Seed)

	scale := tc.Scale
	if scale <= 0 {
		scale = 1
	}
	span := tc.MaxCost - tc.MinCost

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			n := noise.Eval2(float64(x)/scale, float64(y)/scale)
			dst[grid.Index(x, y)] = float32(tc.MinCost + span*n)
		}
	}
}
