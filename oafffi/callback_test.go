package oafffi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackRegistry_RegisterInvokeUnregister(t *testing.T) {
	r := NewCallbackRegistry()
	id := r.Register(func(args []int64, userData any) (int64, bool) {
		return args[0] + userData.(int64), true
	}, int64(10))
	require.Greater(t, id, 0)

	result, ok := r.InvokeI64(id, []int64{5})
	assert.True(t, ok)
	assert.Equal(t, int64(15), result)

	assert.True(t, r.Unregister(id))
	_, ok = r.InvokeI64(id, []int64{5})
	assert.False(t, ok)
}

func TestCallbackRegistry_ExhaustionReturnsZero(t *testing.T) {
	r := NewCallbackRegistry()
	for i := 0; i < MaxCallbacks; i++ {
		require.Greater(t, r.Register(func([]int64, any) (int64, bool) { return 0, true }, nil), 0)
	}
	assert.Equal(t, 0, r.Register(func([]int64, any) (int64, bool) { return 0, true }, nil))
}

func TestCallbackRegistry_InvokeUnknownIDFails(t *testing.T) {
	r := NewCallbackRegistry()
	_, ok := r.InvokeI64(999, nil)
	assert.False(t, ok)
}

func TestTrampoline_AcquireDispatchRelease(t *testing.T) {
	r := NewCallbackRegistry()
	id := r.Register(func(args []int64, userData any) (int64, bool) {
		return args[0] * 2, true
	}, nil)
	require.Greater(t, id, 0)

	fn, ok := AcquireTrampoline(r, id)
	require.True(t, ok)
	require.NotNil(t, fn)

	var slotIndex = -1
	for i, s := range trampolineFuncs {
		if s == fn {
			slotIndex = i
		}
	}
	require.GreaterOrEqual(t, slotIndex, 0)
	assert.Equal(t, int64(42), dispatchTrampoline(slotIndex, 21))

	assert.True(t, ReleaseTrampoline(fn))
	assert.Equal(t, int64(0), dispatchTrampoline(slotIndex, 21), "released slot no longer dispatches")
}

func TestTrampoline_ReacquireForSameIDBindsNewSlot(t *testing.T) {
	r := NewCallbackRegistry()
	id := r.Register(func([]int64, any) (int64, bool) { return 1, true }, nil)
	require.Greater(t, id, 0)

	fn1, ok1 := AcquireTrampoline(r, id)
	require.True(t, ok1)
	fn2, ok2 := AcquireTrampoline(r, id)
	require.True(t, ok2)

	assert.NotEqual(t, fn1, fn2, "re-acquiring for the same callback id always binds a new slot")

	ReleaseTrampoline(fn1)
	ReleaseTrampoline(fn2)
}

func TestTrampoline_ExhaustionReturnsFalse(t *testing.T) {
	r := NewCallbackRegistry()
	id := r.Register(func([]int64, any) (int64, bool) { return 1, true }, nil)
	require.Greater(t, id, 0)

	var fns []unsafe.Pointer
	for i := 0; i < MaxTrampolines; i++ {
		fn, ok := AcquireTrampoline(r, id)
		require.True(t, ok, "slot %d", i)
		fns = append(fns, fn)
	}
	_, ok := AcquireTrampoline(r, id)
	assert.False(t, ok, "ninth acquire must fail: only 8 static slots")

	for _, f := range fns {
		ReleaseTrampoline(f)
	}
}
