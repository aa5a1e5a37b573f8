// Package oafsched implements the cooperative, work-stealing lightweight
// thread scheduler from spec.md §3/§4.7. It is deliberately
// single-threaded and unsynchronized: the whole point of "cooperative"
// is that it must be driven from exactly one OS thread (goroutine), per
// spec.md §5 and §9's "Cooperative scheduler is single-threaded by
// design" note. Running a Scheduler concurrently from multiple
// goroutines is undefined, same as the original.
package oafsched

// ThreadState is one of the six lifecycle states of a LightweightThread,
// per spec.md §3.
type ThreadState int

const (
	ThreadNew ThreadState = iota
	ThreadReady
	ThreadRunning
	ThreadCompleted
	ThreadFailed
	ThreadCancelled
)

func (s ThreadState) String() string {
	switch s {
	case ThreadNew:
		return "New"
	case ThreadReady:
		return "Ready"
	case ThreadRunning:
		return "Running"
	case ThreadCompleted:
		return "Completed"
	case ThreadFailed:
		return "Failed"
	case ThreadCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Proc is a lightweight thread's body. It returns its result and whether
// it ran to completion successfully; a false return transitions the
// thread to Failed rather than Completed.
type Proc func(args any) (result any, ok bool)

// LightweightThread is a single-shot cooperative task, per spec.md §3.
type LightweightThread struct {
	ID     uint64
	State  ThreadState
	proc   Proc
	args   any
	Result any
}

func newLightweightThread(id uint64, proc Proc, args any) *LightweightThread {
	return &LightweightThread{ID: id, State: ThreadReady, proc: proc, args: args}
}

// Run executes the thread's proc exactly once, transitioning
// Ready->Running->Completed (or ->Failed on an unsuccessful or already-run
// thread). Returns false if the thread was not in the Ready state or its
// proc returned !ok.
func (th *LightweightThread) Run() bool {
	if th.proc == nil || th.State != ThreadReady {
		return false
	}
	th.State = ThreadRunning
	result, ok := th.proc(th.args)
	th.Result = result
	if !ok {
		th.State = ThreadFailed
		return false
	}
	th.State = ThreadCompleted
	return true
}

// IsDone reports whether the thread has reached a terminal state
// (Completed, Failed, or Cancelled).
func (th *LightweightThread) IsDone() bool {
	switch th.State {
	case ThreadCompleted, ThreadFailed, ThreadCancelled:
		return true
	default:
		return false
	}
}
