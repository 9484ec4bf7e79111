package sim

// propagate runs one relaxation sweep. Every cell recomputes its distance
// label and forwarding pointer from the previous frame's buffers only, so
// the sweep parallelizes with no shared writes: each chunk touches only its
// own cells in the destination buffers.
//
// One sweep per frame means the valid region grows one step outward from
// ground per frame: a wavefront, not a solved field.
func (e *Engine) propagate() {
	src := e.cur
	dst := 1 - e.cur
	e.pool.sweep(func(start, end int) {
		e.propagateChunk(src, dst, start, end)
	})
	e.cur = dst
}

func (e *Engine) propagateChunk(src, dst, start, end int) {
	pv, pd, pf := e.valid[src], e.dist[src], e.forward[src]
	nv, nd, nf := e.valid[dst], e.dist[dst], e.forward[dst]

	var nbuf [4]int32
	for i := start; i < end; i++ {
		if e.ground[i] {
			nv[i] = true
			nd[i] = 0
			nf[i] = int32(i)
			continue
		}

		// Stability preference: the previous label is only replaced by a
		// strictly smaller candidate, so equal-cost alternatives cannot
		// make the forwarding pointer oscillate between frames.
		best := Unreachable
		fwd := int32(i)
		if pv[i] {
			best = pd[i]
			fwd = pf[i]
		}

		step := float32(1)
		if e.costModel == CostWeighted {
			step = e.cost[i]
		}

		// Earlier neighbors win ties through the strict comparison.
		for _, n := range e.grid.Neighbors(nbuf[:0], i) {
			if !pv[n] {
				continue
			}
			if cand := pd[n] + step; cand < best {
				best = cand
				fwd = n
			}
		}

		if best == Unreachable {
			nv[i] = false
			nd[i] = Unreachable
			nf[i] = int32(i)
			continue
		}
		nv[i] = true
		nd[i] = best
		nf[i] = fwd
	}
}
