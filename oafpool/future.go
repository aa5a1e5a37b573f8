package oafpool

import "sync"

// Future is a single-shot result handoff between a producer goroutine and
// one or more consumers, per spec.md §4.9.
type Future[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ready   bool
	failed  bool
	result  T
}

// NewFuture returns an unfulfilled Future.
func NewFuture[T any]() *Future[T] {
	f := &Future[T]{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Finish delivers the result exactly once, waking every waiter. Calling
// Finish more than once is a no-op after the first call.
func (f *Future[T]) Finish(result T, failed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ready {
		return
	}
	f.result = result
	f.failed = failed
	f.ready = true
	f.cond.Broadcast()
}

// TryGet is non-blocking. The first bool reports whether the future is
// ready yet; the second reports success. A caller cannot distinguish
// "not ready" from "ready but failed" from the first bool alone — check
// ready before trusting success, matching spec.md §4.9's asymmetry with
// Await.
func (f *Future[T]) TryGet() (result T, ready bool, success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.ready {
		return result, false, false
	}
	return f.result, true, !f.failed
}

// Await blocks until the future is finished, then returns the result and
// whether it succeeded. Unlike TryGet, Await always populates result,
// even on failure, since it never races "not ready" against "failed".
func (f *Future[T]) Await() (result T, success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for !f.ready {
		f.cond.Wait()
	}
	return f.result, !f.failed
}

// AsyncSubmit submits proc to pool as a trampoline that invokes proc and
// finishes future with its result. Returns false if the pool rejected
// the submission (in which case future is left unfulfilled).
func AsyncSubmit[T any](pool *Pool, future *Future[T], proc func() (T, bool)) bool {
	return pool.Submit(func() {
		result, ok := proc()
		future.Finish(result, !ok)
	})
}
