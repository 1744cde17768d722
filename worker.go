package waverb

import "sync"

// workerPool runs one goroutine per worker over fixed, contiguous spans of
// grid rows (x-slices). Each dispatch is a full barrier: run returns only
// after every worker has finished its span, so a phase never observes another
// phase's partial writes. Workers are persistent; a step counter plus
// condition variable replaces per-phase goroutine churn.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	spans   []rowSpan
	step    int
	pending int
	task    func(x0, x1 int)
	closed  bool
}

// rowSpan is a half-open range of grid rows assigned to one worker.
type rowSpan struct {
	x0 int
	x1 int
}

// newWorkerPool partitions rows into contiguous spans across count workers
// and starts their goroutines.
func newWorkerPool(count, rows int) *workerPool {
	if count < 1 {
		count = 1
	}
	if count > rows {
		count = rows
	}
	p := &workerPool{}
	p.cond = sync.NewCond(&p.mu)
	per := rows / count
	extra := rows % count
	x := 0
	for i := 0; i < count; i++ {
		n := per
		if i < extra {
			n++
		}
		p.spans = append(p.spans, rowSpan{x0: x, x1: x + n})
		x += n
	}
	for i := range p.spans {
		go p.workerLoop(i)
	}
	return p
}

// run executes task over every row span and blocks until all workers finish.
func (p *workerPool) run(task func(x0, x1 int)) {
	p.mu.Lock()
	p.task = task
	p.pending = len(p.spans)
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.task = nil
	p.mu.Unlock()
}

// workerLoop waits for dispatches and processes the worker's row span.
func (p *workerPool) workerLoop(index int) {
	span := p.spans[index]
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		task := p.task
		p.mu.Unlock()

		task(span.x0, span.x1)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// close wakes all workers and lets them exit.
func (p *workerPool) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
