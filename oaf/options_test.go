package oaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptions_DefaultsApplyWhenZero(t *testing.T) {
	o, err := resolveOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, uintptr(defaultTempAllocatorCapacity), o.tempAllocatorCapacity)
	assert.Equal(t, defaultSchedulerWorkerCount, o.schedulerWorkerCount)
	assert.False(t, o.gcEnabled)
}

func TestResolveOptions_ZeroValuesFallBackToDefaults(t *testing.T) {
	o, err := resolveOptions([]RuntimeOption{
		WithTempAllocatorCapacity(0),
		WithSchedulerWorkerCount(0),
		WithPoolCapacity(0),
	})
	require.NoError(t, err)
	assert.Equal(t, uintptr(defaultTempAllocatorCapacity), o.tempAllocatorCapacity)
	assert.Equal(t, defaultSchedulerWorkerCount, o.schedulerWorkerCount)
	assert.Equal(t, defaultPoolCapacity, o.poolCapacity)
}

func TestResolveOptions_NilOptionSkipped(t *testing.T) {
	o, err := resolveOptions([]RuntimeOption{nil, WithGCEnabled(true)})
	require.NoError(t, err)
	assert.True(t, o.gcEnabled)
}
