package oafpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelFor_VisitsEveryIndex(t *testing.T) {
	p := New(4, 64)
	defer p.Shutdown()

	var seen [100]atomic.Bool
	ok := ParallelFor(p, 100, 0, func(i int64) bool {
		seen[i].Store(true)
		return true
	})
	assert.True(t, ok)
	for i, v := range seen {
		assert.True(t, v.Load(), "index %d not visited", i)
	}
}

func TestParallelFor_FailurePropagates(t *testing.T) {
	p := New(2, 64)
	defer p.Shutdown()

	ok := ParallelFor(p, 50, 5, func(i int64) bool {
		return i != 33
	})
	assert.False(t, ok)
}

func TestParallelMap_CollectsResultsInOrder(t *testing.T) {
	p := New(4, 64)
	defer p.Shutdown()

	out, ok := ParallelMap(p, 20, 3, func(i int64) int64 { return i * 2 })
	assert.True(t, ok)
	for i, v := range out {
		assert.Equal(t, int64(i*2), v)
	}
}

func TestParallelReduceI64_SumsAcrossTiles(t *testing.T) {
	p := New(4, 64)
	defer p.Shutdown()

	total, ok := ParallelReduceI64(p, 100, 7, func(i int64) int64 { return i + 1 })
	assert.True(t, ok)
	assert.Equal(t, int64(5050), total) // sum 1..100
}

func TestParallelReduceI64_EmptyRangeReturnsZero(t *testing.T) {
	p := New(2, 8)
	defer p.Shutdown()

	total, ok := ParallelReduceI64(p, 0, 0, func(i int64) int64 { return i })
	assert.True(t, ok)
	assert.Equal(t, int64(0), total)
}

func TestResolveChunkSize_DefaultsToCeilCountOverFourWorkers(t *testing.T) {
	assert.Equal(t, int64(25), resolveChunkSize(100, 0, 1))
	assert.Equal(t, int64(7), resolveChunkSize(100, 0, 4)) // ceil(100/16)=7
	assert.Equal(t, int64(9), resolveChunkSize(9, 9, 1))
}
