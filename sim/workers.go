package sim

import (
	"runtime"
	"sync"
)

// sweepParallelThreshold is the minimum cell count to use parallel sweeps.
// Below this, single-threaded is faster due to goroutine overhead.
const sweepParallelThreshold = 4096

// sweepChunk represents a range of cells for a worker to process.
type sweepChunk struct {
	start, end int
}

// sweepPool runs full-grid sweeps on persistent workers with a join barrier
// per sweep. All three passes (propagation, transport, commit) dispatch
// through it; no worker of one pass ever overlaps a sibling pass.
type sweepPool struct {
	numWorkers int
	cells      int
	fn         func(start, end int) // current sweep body; set before dispatch

	workChan chan sweepChunk // sends work to workers
	doneChan chan struct{}   // workers signal completion
	stopChan chan struct{}   // signals workers to exit
	wg       sync.WaitGroup  // tracks active workers
	running  bool            // true if workers are running
}

func newSweepPool(cells, workers int) *sweepPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &sweepPool{
		numWorkers: workers,
		cells:      cells,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *sweepPool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan sweepChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *sweepPool) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *sweepPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// sweep applies fn to every cell range and returns once all chunks are done.
// The channel handoff orders the write to p.fn before any worker reads it,
// and the completion counts form the barrier between passes.
func (p *sweepPool) sweep(fn func(start, end int)) {
	if p.numWorkers == 1 || p.cells < sweepParallelThreshold {
		fn(0, p.cells)
		return
	}

	if !p.running {
		p.startWorkers()
	}

	p.fn = fn
	chunkSize := (p.cells + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > p.cells {
			end = p.cells
		}
		if start >= end {
			continue
		}

		p.workChan <- sweepChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}
