package oafsync

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMutex_UninitializedReturnsFalse(t *testing.T) {
	var m Mutex
	assert.False(t, m.Lock())
	assert.False(t, m.Unlock())
}

func TestMutex_LockUnlock(t *testing.T) {
	m := NewMutex()
	assert.True(t, m.Lock())
	assert.True(t, m.Unlock())
}

func TestCondVar_UninitializedReturnsFalse(t *testing.T) {
	var c CondVar
	assert.False(t, c.Signal())
	assert.False(t, c.Broadcast())
	assert.False(t, c.Wait())
}

func TestCondVar_WaitWakesOnSignal(t *testing.T) {
	m := NewMutex()
	c := NewCondVar(m)
	ready := false
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		m.Lock()
		for !ready {
			c.Wait()
		}
		m.Unlock()
	}()

	time.Sleep(10 * time.Millisecond)
	m.Lock()
	ready = true
	c.Signal()
	m.Unlock()

	wg.Wait() // no timeout: test hangs (and fails via go test's own timeout) if Signal is broken
}

func TestCondVar_BroadcastWakesAllWaiters(t *testing.T) {
	m := NewMutex()
	c := NewCondVar(m)
	ready := false
	var wg sync.WaitGroup
	const waiters = 5
	wg.Add(waiters)

	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			m.Lock()
			for !ready {
				c.Wait()
			}
			m.Unlock()
		}()
	}

	time.Sleep(10 * time.Millisecond)
	m.Lock()
	ready = true
	c.Broadcast()
	m.Unlock()

	wg.Wait()
}

func TestAtomicInt64_AddAndCompareAndSwap(t *testing.T) {
	a := NewAtomicInt64(10)
	assert.Equal(t, int64(15), a.Add(5))
	assert.True(t, a.CompareAndSwap(15, 100))
	assert.False(t, a.CompareAndSwap(15, 200))
	assert.Equal(t, int64(100), a.Load())
}

func TestAtomicInt64_ConcurrentAdd(t *testing.T) {
	a := NewAtomicInt64(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), a.Load())
}
