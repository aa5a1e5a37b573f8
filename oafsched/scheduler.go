package oafsched

// MaxWorkers bounds the number of worker deques, per spec.md §3's default
// of up to 8.
const MaxWorkers = 8

// MaxThreads bounds the number of lightweight thread slots, per spec.md
// §3's default of up to 512. Spawning past this limit fails
// (FailedSpawns++) rather than growing the pool.
const MaxThreads = 512

// QueueCapacity bounds each worker's deque, per
// original_source/src/Runtime/concurrency/include/scheduler.h.
const QueueCapacity = 256

// deque is a fixed-capacity ring buffer: the owner dequeues at the head
// (FIFO); thieves dequeue at the tail (LIFO, victim-end), per spec.md
// §3/§4.7.
type deque struct {
	entries [QueueCapacity]*LightweightThread
	head    int
	tail    int
	count   int
}

func (q *deque) pushBack(th *LightweightThread) bool {
	if q.count >= QueueCapacity {
		return false
	}
	q.entries[q.tail] = th
	q.tail = (q.tail + 1) % QueueCapacity
	q.count++
	return true
}

// popFront is the owner-side FIFO dequeue.
func (q *deque) popFront() *LightweightThread {
	if q.count == 0 {
		return nil
	}
	th := q.entries[q.head]
	q.entries[q.head] = nil
	q.head = (q.head + 1) % QueueCapacity
	q.count--
	return th
}

// popBack is the thief-side LIFO dequeue from the victim's tail.
func (q *deque) popBack() *LightweightThread {
	if q.count == 0 {
		return nil
	}
	q.tail = (q.tail - 1 + QueueCapacity) % QueueCapacity
	th := q.entries[q.tail]
	q.entries[q.tail] = nil
	q.count--
	return th
}

// Stats mirrors spec.md §3's scheduler stats counters.
type Stats struct {
	Enqueued     int
	Executed     int
	Stolen       int
	FailedSpawns int
}

// Scheduler is the fixed-pool cooperative work-stealing scheduler from
// spec.md §4.7. It is explicitly single-threaded and unsynchronized; see
// the package doc comment.
type Scheduler struct {
	workerCount int
	queues      [MaxWorkers]deque

	threads     [MaxThreads]*LightweightThread
	threadCount int

	rrWorker    int
	nextThreadID uint64

	stats Stats
}

// New returns a Scheduler with workerCount deques, clamped to
// [1, MaxWorkers].
func New(workerCount int) *Scheduler {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > MaxWorkers {
		workerCount = MaxWorkers
	}
	return &Scheduler{workerCount: workerCount, nextThreadID: 1}
}

// WorkerCount returns the configured number of worker deques.
func (s *Scheduler) WorkerCount() int { return s.workerCount }

// Stats returns a snapshot of the scheduler's counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// ThreadCount returns the number of thread slots consumed so far. Per
// spec.md §9's open question, this never shrinks even after a thread
// fails — preserved intentionally for id monotonicity (see DESIGN.md).
func (s *Scheduler) ThreadCount() int { return s.threadCount }

// Spawn reserves a thread slot for proc/args, places it into worker deque
// rrWorker%workerCount (round robin, then bumps rrWorker), and returns
// the new thread. Returns nil and increments FailedSpawns if the thread
// table is full or the target worker's deque is full (in the latter
// case the thread transitions to Failed but its slot is NOT released).
func (s *Scheduler) Spawn(proc Proc, args any) *LightweightThread {
	if proc == nil || s.threadCount >= MaxThreads {
		s.stats.FailedSpawns++
		return nil
	}
	id := s.nextThreadID
	th := newLightweightThread(id, proc, args)
	s.threads[s.threadCount] = th
	s.threadCount++
	s.nextThreadID++

	target := s.rrWorker % s.workerCount
	s.rrWorker++

	if !s.queues[target].pushBack(th) {
		s.stats.FailedSpawns++
		th.State = ThreadFailed
		return nil
	}
	s.stats.Enqueued++
	return th
}

// Steal scans victims at offsets 1..workerCount-1 from thiefWorker
// (forward-rotating, not randomised, per spec.md §4.7) and pops from the
// tail of the first non-empty victim found. Returns nil if every other
// worker's deque is empty.
func (s *Scheduler) Steal(thiefWorker int) *LightweightThread {
	for offset := 1; offset < s.workerCount; offset++ {
		victim := (thiefWorker + offset) % s.workerCount
		if s.queues[victim].count == 0 {
			continue
		}
		th := s.queues[victim].popBack()
		if th != nil {
			s.stats.Stolen++
			return th
		}
	}
	return nil
}

// RunNext dequeues from the head of worker's own deque; if empty, steals
// from another worker's tail. Runs whatever it finds. Returns false if
// there was nothing to run, or if the thread's proc failed.
func (s *Scheduler) RunNext(worker int) bool {
	th := s.queues[worker].popFront()
	if th == nil {
		th = s.Steal(worker)
	}
	if th == nil {
		return false
	}
	if !th.Run() {
		return false
	}
	s.stats.Executed++
	return true
}

// PendingCount sums the counts of every worker deque.
func (s *Scheduler) PendingCount() int {
	total := 0
	for i := 0; i < s.workerCount; i++ {
		total += s.queues[i].count
	}
	return total
}

// RunAll cooperatively drains the scheduler: while pending work exists
// and progress is being made, every worker attempts one RunNext per
// round. A guard of 2*MaxThreads caps the outer loop to prevent
// pathological liveness loss (spec.md §4.7). Returns the total number of
// threads successfully executed.
func (s *Scheduler) RunAll() int {
	guard := MaxThreads * 2
	total := 0
	for s.PendingCount() > 0 && guard > 0 {
		executedThisRound := 0
		for worker := 0; worker < s.workerCount; worker++ {
			if s.RunNext(worker) {
				executedThisRound++
				total++
			}
		}
		if executedThisRound == 0 {
			break
		}
		guard--
	}
	return total
}
