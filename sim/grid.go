// Package sim implements the grid core: per-frame nearest-ground relaxation
// and capacity-bounded charge transport along the resulting forwarding
// pointers.
package sim

// Grid is a fixed W×H bounded coordinate space with row-major flat indexing.
// There is no wraparound; out-of-bounds neighbors are skipped by the passes.
type Grid struct {
	W, H int
}

// Cells returns the total cell count.
func (g Grid) Cells() int { return g.W * g.H }

// Index returns the flat slice index for (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// Coords returns the (x, y) coordinates for a flat index.
func (g Grid) Coords(i int) (int, int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Neighbors appends the in-bounds 4-connected neighbors of cell i to dst,
// always in north, south, east, west order. The order is the deterministic
// tie-break for the propagation pass: an earlier neighbor wins ties.
func (g Grid) Neighbors(dst []int32, i int) []int32 {
	x, y := i%g.W, i/g.W
	if y > 0 {
		dst = append(dst, int32(i-g.W)) // north
	}
	if y < g.H-1 {
		dst = append(dst, int32(i+g.W)) // south
	}
	if x < g.W-1 {
		dst = append(dst, int32(i+1)) // east
	}
	if x > 0 {
		dst = append(dst, int32(i-1)) // west
	}
	return dst
}
