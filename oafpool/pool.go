// Package oafpool implements the preemptive worker thread pool, future
// handoff, and latch-driven parallel primitives from spec.md §4.9/§4.10,
// grounded on the original worker_loop/submit/wait_idle contract (see
// DESIGN.md). Unlike oafsched's cooperative scheduler, everything here is
// safe for concurrent use across goroutines.
package oafpool

import (
	"sync"

	"github.com/joeycumines/go-catrate"
)

// Stats mirrors spec.md §4.9's pool counters.
type Stats struct {
	Submitted int
	Completed int
	Rejected  int
	Active    int
}

// Task is a unit of work dispatched to a worker.
type Task func()

// Pool is a bounded-queue worker pool. Workers are goroutines started by
// New; there is no worker affinity, matching spec.md §5.
type Pool struct {
	mu           sync.Mutex
	queue        []Task
	capacity     int
	workerCount  int
	shuttingDown bool
	stats        Stats

	hasWork  *sync.Cond
	hasSpace *sync.Cond
	idle     *sync.Cond

	wg sync.WaitGroup

	rateLimiter *catrate.Limiter
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithRateLimiter attaches a catrate.Limiter that additively records
// "completed" and "rejected" events per task. It never gates scheduling
// decisions — a limit being exceeded has no effect on the pool's
// behavior, it is observation-only (see DESIGN.md).
func WithRateLimiter(limiter *catrate.Limiter) Option {
	return func(p *Pool) { p.rateLimiter = limiter }
}

// New starts a Pool with workerCount goroutines serving a bounded queue
// of the given capacity (both clamped to at least 1).
func New(workerCount, capacity int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool{capacity: capacity, workerCount: workerCount}
	p.hasWork = sync.NewCond(&p.mu)
	p.hasSpace = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.workerLoop()
	}
	return p
}

func (p *Pool) recordCompleted() {
	if p.rateLimiter != nil {
		p.rateLimiter.Allow("completed")
	}
}

func (p *Pool) recordRejected() {
	if p.rateLimiter != nil {
		p.rateLimiter.Allow("rejected")
	}
}

// WorkerCount returns the number of worker goroutines backing the pool.
func (p *Pool) WorkerCount() int { return p.workerCount }

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Pool) workerLoop() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.shuttingDown {
			p.hasWork.Wait()
		}
		if len(p.queue) == 0 && p.shuttingDown {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.stats.Active++
		p.hasSpace.Signal()
		p.mu.Unlock()

		task()

		p.mu.Lock()
		p.stats.Active--
		p.stats.Completed++
		p.recordCompleted()
		if len(p.queue) == 0 && p.stats.Active == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

// Submit blocks until there is queue space or the pool is shutting down.
// Returns false (and increments Rejected) if the pool is already
// shutting down.
func (p *Pool) Submit(t Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.shuttingDown && len(p.queue) >= p.capacity {
		p.hasSpace.Wait()
	}
	if p.shuttingDown {
		p.stats.Rejected++
		p.recordRejected()
		return false
	}
	p.queue = append(p.queue, t)
	p.stats.Submitted++
	p.hasWork.Signal()
	return true
}

// TrySubmit is the non-blocking counterpart to Submit: it fails
// immediately (incrementing Rejected) if the queue is full or the pool
// is shutting down.
func (p *Pool) TrySubmit(t Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shuttingDown || len(p.queue) >= p.capacity {
		p.stats.Rejected++
		p.recordRejected()
		return false
	}
	p.queue = append(p.queue, t)
	p.stats.Submitted++
	p.hasWork.Signal()
	return true
}

// WaitIdle blocks until the queue is empty and no worker is active.
func (p *Pool) WaitIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) > 0 || p.stats.Active > 0 {
		p.idle.Wait()
	}
}

// Shutdown marks the pool as shutting down, wakes every waiter, and
// blocks until every worker goroutine has exited. Already-queued tasks
// still run to completion; Submit/TrySubmit reject after this returns
// (and start rejecting immediately once shutdown begins).
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.shuttingDown = true
	p.hasWork.Broadcast()
	p.hasSpace.Broadcast()
	p.idle.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}
