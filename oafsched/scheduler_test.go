package oafsched

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScheduler_WorkStealingCorrectness implements spec.md §8 scenario 1.
func TestScheduler_WorkStealingCorrectness(t *testing.T) {
	s := New(3)
	var sum atomic.Int64

	var threads []*LightweightThread
	for _, v := range []int64{1, 2, 3, 4, 5, 6} {
		v := v
		th := s.Spawn(func(any) (any, bool) {
			sum.Add(v)
			return nil, true
		}, nil)
		require.NotNil(t, th)
		threads = append(threads, th)
	}

	for s.RunNext(0) {
	}
	// drain whatever landed on other workers' queues by re-running RunAll,
	// since worker 0 alone may not exhaust victims that still have items
	// after its own queue and every reachable steal target go empty in a
	// single pass.
	s.RunAll()

	assert.Equal(t, int64(21), sum.Load())
	for _, th := range threads {
		assert.Equal(t, ThreadCompleted, th.State)
	}
	assert.GreaterOrEqual(t, s.Stats().Stolen, 1)
}

func TestScheduler_RunAllDrainsEverything(t *testing.T) {
	s := New(4)
	var count atomic.Int64
	for i := 0; i < 50; i++ {
		s.Spawn(func(any) (any, bool) {
			count.Add(1)
			return nil, true
		}, nil)
	}
	executed := s.RunAll()
	assert.Equal(t, 50, executed)
	assert.Equal(t, int64(50), count.Load())
	assert.Equal(t, 0, s.PendingCount())
}

func TestScheduler_SpawnRoundRobinPlacement(t *testing.T) {
	s := New(2)
	s.Spawn(func(any) (any, bool) { return nil, true }, nil)
	s.Spawn(func(any) (any, bool) { return nil, true }, nil)
	assert.Equal(t, 1, s.queues[0].count)
	assert.Equal(t, 1, s.queues[1].count)
}

func TestScheduler_FailedProcDoesNotRetryOrShrinkThreadCount(t *testing.T) {
	s := New(1)
	th := s.Spawn(func(any) (any, bool) { return nil, false }, nil)
	require.NotNil(t, th)

	assert.False(t, s.RunNext(0))
	assert.Equal(t, ThreadFailed, th.State)
	assert.Equal(t, 1, s.ThreadCount())
	// the slot is never reclaimed: thread count is monotonic.
	s.Spawn(func(any) (any, bool) { return nil, true }, nil)
	assert.Equal(t, 2, s.ThreadCount())
}

func TestScheduler_StealForwardRotatingVictimOrder(t *testing.T) {
	s := New(3)
	// worker 0's queue is empty; worker 1 and 2 each get one task.
	th1 := s.Spawn(func(any) (any, bool) { return nil, true }, nil) // worker 0 (rr=0)
	th2 := s.Spawn(func(any) (any, bool) { return nil, true }, nil) // worker 1 (rr=1)
	_ = th1
	_ = th2
	stolen := s.Steal(0)
	require.NotNil(t, stolen)
	assert.Equal(t, th2.ID, stolen.ID, "steal scans offset 1 first: worker (0+1)%3==1")
}

func TestScheduler_SpawnExhaustion(t *testing.T) {
	s := New(1)
	for i := 0; i < MaxThreads; i++ {
		require.NotNil(t, s.Spawn(func(any) (any, bool) { return nil, true }, nil))
	}
	assert.Nil(t, s.Spawn(func(any) (any, bool) { return nil, true }, nil))
	assert.Equal(t, 1, s.Stats().FailedSpawns)
}
