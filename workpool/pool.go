// Package workpool provides a fixed pool of worker goroutines with a
// submit / complete-barrier contract: tasks accumulate until a goroutine calls
// Complete, which participates in draining the queue and returns once every
// submitted task has finished.
package workpool

import "sync"

// Task is a unit of work. The worker index identifies the executor running the
// task: worker goroutines hold stable indices starting at 1, while the
// goroutine blocked in Complete participates as index 0. Callers can use the
// index to address per-executor scratch state without locking.
type Task func(workerIndex int)

// Pool fans submitted tasks out to its workers. A nil or zero-worker pool is
// valid: Complete then runs every queued task inline on the calling goroutine.
type Pool struct {
	workers int

	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []Task
	pending int
	closed  bool
}

// New starts a pool with the given number of worker goroutines.
func New(workers int) *Pool {
	if workers < 0 {
		workers = 0
	}

	p := &Pool{workers: workers}
	p.cond = sync.NewCond(&p.mu)

	for i := 1; i <= workers; i++ {
		go p.work(i)
	}
	return p
}

// Workers returns the number of worker goroutines. It is safe on a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workers
}

// Submit queues a task for execution. The task does not start before a worker
// picks it up or Complete drains it; once submitted it always runs to
// completion, there is no cancellation.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	p.tasks = append(p.tasks, task)
	p.pending++
	p.mu.Unlock()

	p.cond.Broadcast()
}

// Complete blocks until every submitted task has finished. The calling
// goroutine joins the pool as executor index 0 while waiting.
func (p *Pool) Complete() {
	if p == nil {
		return
	}

	p.mu.Lock()
	for {
		if len(p.tasks) > 0 {
			task := p.tasks[0]
			p.tasks = p.tasks[1:]
			p.mu.Unlock()

			task(0)

			p.mu.Lock()
			p.pending--
			if p.pending == 0 {
				p.cond.Broadcast()
			}
			continue
		}

		if p.pending == 0 {
			p.mu.Unlock()
			return
		}
		p.cond.Wait()
	}
}

// Close stops the workers once the queue drains. Submitting after Close is not
// supported.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
}

func (p *Pool) work(index int) {
	p.mu.Lock()
	for {
		for len(p.tasks) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.tasks) == 0 && p.closed {
			p.mu.Unlock()
			return
		}

		task := p.tasks[0]
		p.tasks = p.tasks[1:]
		p.mu.Unlock()

		task(index)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}
