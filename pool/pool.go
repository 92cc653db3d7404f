// Package pool implements a fixed-size worker pool over a single shared job
// queue. Workers are long-lived: they're spawned once at construction and
// live until shutdown.
package pool

import (
	"errors"
	"sync"
)

// Job is an opaque unit of work. Ownership transfers to whichever worker
// dequeues it, so a job must carry everything it needs by itself.
type Job func()

var (
	ErrNoWorkers = errors.New("pool: the number of workers must be positive")
	ErrClosed    = errors.New("pool: submitted after shutdown")
)

// Pool distributes submitted jobs across a fixed number of workers. The queue
// is unbounded and strictly ordered: submission never blocks, and jobs are
// dequeued in submission order by whichever worker gets free first. No
// ordering is guaranteed between completions of jobs run by different workers.
//
// The queue's receiving end is the only spot shared by all the workers, and
// it's exclusively guarded by the pool's lock. A dequeued job is owned by
// exactly one worker.
type Pool struct {
	mu     sync.Mutex
	queue  []Job
	wake   *sync.Cond
	wg     sync.WaitGroup
	closed bool
}

// New creates a pool of n workers, started immediately. Zero or negative n is
// a programming error and is rejected instead of being silently coerced.
func New(n int) (*Pool, error) {
	if n <= 0 {
		return nil, ErrNoWorkers
	}

	p := new(Pool)
	p.wake = sync.NewCond(&p.mu)
	p.wg.Add(n)

	for i := 0; i < n; i++ {
		go p.worker()
	}

	return p, nil
}

// Submit enqueues the job. It never blocks waiting for a free worker: the job
// queues up instead. Every submitted job is executed exactly once, eventually,
// unless the pool is shut down first.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.queue = append(p.queue, job)
	p.wake.Signal()

	return nil
}

// Shutdown closes the submission side and joins every worker. Jobs already
// queued are still executed; Submit past this point fails with ErrClosed.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}

	p.closed = true
	p.wake.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.wake.Wait()
		}

		if len(p.queue) == 0 {
			// closed and drained: the disconnect signal ends the loop
			p.mu.Unlock()
			return
		}

		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		// the job runs outside the lock, so a slow one never stalls dequeuing
		job()
	}
}
