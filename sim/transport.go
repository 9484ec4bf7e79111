package sim

import "sync/atomic"

// transport moves at most one unit of charge per charged cell toward its
// forwarding pointer, writing into the staging buffer. Capacity checks read
// the destination's pre-frame charge, so several cells can push into the
// same destination in one frame and stage a value above MaxCharge; the
// commit policy resolves that, never an individual transfer.
func (e *Engine) transport() {
	copy(e.staged, e.charge)

	v := e.valid[e.cur]
	f := e.forward[e.cur]

	var moved, blocked, absorbed int64
	e.pool.sweep(func(start, end int) {
		var m, b, a int64
		for i := start; i < end; i++ {
			c := e.charge[i]
			if c == 0 || !v[i] {
				continue
			}

			if e.ground[i] {
				drain := e.absorbRate
				if e.absorbPolicy == AbsorbInstant || drain > c {
					drain = c
				}
				atomic.AddInt32(&e.staged[i], -drain)
				a += int64(drain)
				continue
			}

			d := f[i]
			if d == int32(i) {
				// Unresolved pointer; nothing to forward into.
				continue
			}
			if e.charge[d] >= e.maxCharge {
				b++
				continue
			}
			atomic.AddInt32(&e.staged[d], 1)
			atomic.AddInt32(&e.staged[i], -1)
			m++
		}
		atomic.AddInt64(&moved, m)
		atomic.AddInt64(&blocked, b)
		atomic.AddInt64(&absorbed, a)
	})

	e.stats.Moved = moved
	e.stats.Blocked = blocked
	e.stats.Absorbed = absorbed
}

// commit replaces the authoritative charge field with the staged buffer,
// applying the configured overshoot policy. It runs only after every cell's
// transport decision is in, so the next frame observes a settled state.
func (e *Engine) commit() {
	limit := e.maxCharge
	if e.commitPolicy == CommitOvershoot {
		limit = e.maxCharge + maxInDegree
	}

	e.pool.sweep(func(start, end int) {
		for i := start; i < end; i++ {
			c := e.staged[i]
			if c < 0 {
				c = 0
			}
			if c > limit {
				c = limit
			}
			e.charge[i] = c
		}
	})
}
