// Package oaf ties the allocator, ownership, GC, scheduler, channel,
// pool, and FFI layers together into a bootable Runtime, per spec.md
// §4.12. It is the root package: cmd/oafconsole and any embedding host
// program depend on it, not the other way around.
package oaf

import (
	"errors"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/joeycumines/oaf-runtime/oafalloc"
	"github.com/joeycumines/oaf-runtime/oaferr"
	"github.com/joeycumines/oaf-runtime/oafgc"
	"github.com/joeycumines/oaf-runtime/oafpool"
	"github.com/joeycumines/oaf-runtime/oafsched"
)

// Status is the result of Init.
type Status int

const (
	OK Status = iota
	AlreadyInitialized
	InvalidArgument
	InitFailed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case AlreadyInitialized:
		return "AlreadyInitialized"
	case InvalidArgument:
		return "InvalidArgument"
	case InitFailed:
		return "InitFailed"
	default:
		return "Unknown"
	}
}

// Runtime owns the allocator, context, GC, scheduler, temp allocator, and
// worker pool, per spec.md §5's resource-ownership model.
type Runtime struct {
	initialized bool

	allocator *oafalloc.DefaultAllocator
	leak      *oafalloc.LeakDetector
	temp      *oafalloc.TempAllocator
	scheduler *oafsched.Scheduler
	gc        *oafgc.GC
	pool      *oafpool.Pool
	context   *Context

	log *logiface.Logger[*izerolog.Event]

	startupError *oaferr.RuntimeError
}

// New constructs an uninitialized Runtime. Call Init to bring it up.
func New() *Runtime { return &Runtime{} }

// Init brings the runtime up in the ordered sequence from spec.md §4.12:
// default allocator -> context -> stack trace -> scheduler -> GC -> temp
// allocator -> worker pool. Each stage's failure rolls back every prior
// stage before returning InitFailed.
func (rt *Runtime) Init(opts ...RuntimeOption) Status {
	if rt.initialized {
		return AlreadyInitialized
	}
	o, err := resolveOptions(opts)
	if err != nil {
		return InvalidArgument
	}

	rt.log = newLogger(o.logger)
	rt.log.Info().Log("runtime init starting")

	rt.leak = oafalloc.NewLeakDetector()
	rt.allocator = oafalloc.NewDefaultAllocator(rt.leak)

	rt.context = &Context{Allocator: rt.allocator, GCEnabled: o.gcEnabled}
	rt.context.StackTrace = oaferr.NewStackTrace()

	rt.scheduler = oafsched.New(o.schedulerWorkerCount)
	if rt.scheduler == nil {
		rt.startupError = oaferr.New("RuntimeInitializationError", "Failed to initialize thread scheduler.", oaferr.Location{}, nil)
		rt.log.Err(errors.New(rt.startupError.Message)).Log("runtime init failed: scheduler")
		rt.teardownAllocator()
		return InitFailed
	}
	rt.context.Scheduler = rt.scheduler

	rt.gc = oafgc.New(rt.allocator, o.gcEnabled)
	if rt.gc == nil {
		rt.startupError = oaferr.New("RuntimeInitializationError", "Failed to initialize garbage collector.", oaferr.Location{}, nil)
		rt.log.Err(errors.New(rt.startupError.Message)).Log("runtime init failed: gc")
		rt.scheduler = nil
		rt.teardownAllocator()
		return InitFailed
	}

	rt.temp = oafalloc.NewTempAllocator(o.tempAllocatorCapacity)
	if rt.temp == nil {
		rt.startupError = oaferr.New("RuntimeInitializationError", "Failed to initialize temp allocator.", oaferr.Location{}, nil)
		rt.log.Err(errors.New(rt.startupError.Message)).Log("runtime init failed: temp allocator")
		rt.gc = nil
		rt.scheduler = nil
		rt.teardownAllocator()
		return InitFailed
	}
	rt.context.Temp = rt.temp

	poolOpts := []oafpool.Option{}
	if o.rateLimiter != nil {
		poolOpts = append(poolOpts, *o.rateLimiter)
	}
	rt.pool = oafpool.New(o.poolWorkerCount, o.poolCapacity, poolOpts...)

	rt.initialized = true
	rt.log.Info().Int("scheduler_workers", o.schedulerWorkerCount).Int("pool_workers", o.poolWorkerCount).Log("runtime init complete")
	return OK
}

func (rt *Runtime) teardownAllocator() {
	rt.context = nil
	rt.allocator = nil
	rt.leak = nil
}

// Shutdown tears the runtime down in reverse order, resetting the
// context, stack trace, and stored startup error, per spec.md §4.12.
func (rt *Runtime) Shutdown() {
	if !rt.initialized {
		return
	}
	if rt.log != nil {
		rt.log.Info().Log("runtime shutdown starting")
	}
	if rt.pool != nil {
		rt.pool.Shutdown()
	}
	rt.temp = nil
	rt.gc = nil
	rt.scheduler = nil
	rt.context = nil
	rt.startupError = nil
	rt.initialized = false
	if rt.log != nil {
		rt.log.Info().Log("runtime shutdown complete")
	}
}

// Initialized reports whether Init has completed successfully and
// Shutdown has not since been called.
func (rt *Runtime) Initialized() bool { return rt.initialized }

// Context returns the runtime's ambient context, or nil if not
// initialized.
func (rt *Runtime) Context() *Context { return rt.context }

// Scheduler returns the cooperative scheduler, or nil if not
// initialized.
func (rt *Runtime) Scheduler() *oafsched.Scheduler { return rt.scheduler }

// GC returns the garbage collector, or nil if not initialized.
func (rt *Runtime) GC() *oafgc.GC { return rt.gc }

// Pool returns the preemptive worker pool, or nil if not initialized.
func (rt *Runtime) Pool() *oafpool.Pool { return rt.pool }

// LastError returns the most recently reported startup error, if Init
// returned InitFailed.
func (rt *Runtime) LastError() *oaferr.RuntimeError { return rt.startupError }

// Logger returns the runtime's structured logger.
func (rt *Runtime) Logger() *logiface.Logger[*izerolog.Event] { return rt.log }
