package oaf

import (
	"strconv"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// Stats is a snapshot of the runtime's component counters, per spec.md
// §3's scheduler/pool stats fields.
type Stats struct {
	ActiveAllocations int
	TotalAllocated    uint64
	GCObjects         int
	GCManagedBytes    uint64
	SchedulerEnqueued int
	SchedulerExecuted int
	SchedulerStolen   int
	PoolSubmitted     int
	PoolCompleted     int
	PoolRejected      int
}

// Stats collects a point-in-time snapshot of every owned component's
// counters. Returns the zero Stats if the runtime is not initialized.
func (rt *Runtime) Stats() Stats {
	if !rt.initialized {
		return Stats{}
	}
	schedStats := rt.scheduler.Stats()
	poolStats := rt.pool.Stats()
	return Stats{
		ActiveAllocations: rt.allocator.ActiveAllocations(),
		TotalAllocated:    rt.allocator.TotalAllocatedBytes(),
		GCObjects:         rt.gc.ObjectCount(),
		GCManagedBytes:    rt.gc.ManagedBytes(),
		SchedulerEnqueued: schedStats.Enqueued,
		SchedulerExecuted: schedStats.Executed,
		SchedulerStolen:   schedStats.Stolen,
		PoolSubmitted:     poolStats.Submitted,
		PoolCompleted:     poolStats.Completed,
		PoolRejected:      poolStats.Rejected,
	}
}

// StatsJSON renders Stats as a compact JSON object, using jsonenc's
// number formatting (the teacher corpus's own JSON-number encoder,
// rather than encoding/json, to match its byte-for-byte float/number
// formatting conventions elsewhere in the stack).
func (rt *Runtime) StatsJSON() string {
	s := rt.Stats()
	buf := make([]byte, 0, 256)
	buf = append(buf, '{')
	buf = appendIntField(buf, "active_allocations", int64(s.ActiveAllocations), true)
	buf = appendIntField(buf, "total_allocated_bytes", int64(s.TotalAllocated), false)
	buf = appendIntField(buf, "gc_objects", int64(s.GCObjects), false)
	buf = appendIntField(buf, "gc_managed_bytes", int64(s.GCManagedBytes), false)
	buf = appendIntField(buf, "scheduler_enqueued", int64(s.SchedulerEnqueued), false)
	buf = appendIntField(buf, "scheduler_executed", int64(s.SchedulerExecuted), false)
	buf = appendIntField(buf, "scheduler_stolen", int64(s.SchedulerStolen), false)
	buf = appendIntField(buf, "pool_submitted", int64(s.PoolSubmitted), false)
	buf = appendIntField(buf, "pool_completed", int64(s.PoolCompleted), false)
	buf = appendIntField(buf, "pool_rejected", int64(s.PoolRejected), false)
	buf = append(buf, '}')
	return string(buf)
}

func appendIntField(dst []byte, key string, val int64, first bool) []byte {
	if !first {
		dst = append(dst, ',')
	}
	dst = jsonenc.AppendString(dst, key)
	dst = append(dst, ':')
	dst = strconv.AppendInt(dst, val, 10)
	return dst
}
