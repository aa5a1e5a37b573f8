package oaf

import (
	"github.com/rs/zerolog"

	"github.com/joeycumines/oaf-runtime/oafpool"
)

// options holds resolved runtime configuration, per spec.md §4.12/§6.
// Recognized settings default to the listed values when zero.
type options struct {
	tempAllocatorCapacity uintptr
	schedulerWorkerCount  int
	gcEnabled             bool

	poolWorkerCount int
	poolCapacity    int

	logger      *zerolog.Logger
	rateLimiter *oafpool.Option
}

const (
	defaultTempAllocatorCapacity = 64 * 1024
	defaultSchedulerWorkerCount  = 4
	defaultPoolWorkerCount       = 4
	defaultPoolCapacity          = 256
)

func defaultOptions() *options {
	return &options{
		tempAllocatorCapacity: defaultTempAllocatorCapacity,
		schedulerWorkerCount:  defaultSchedulerWorkerCount,
		poolWorkerCount:       defaultPoolWorkerCount,
		poolCapacity:          defaultPoolCapacity,
	}
}

// RuntimeOption configures a Runtime at construction time, following the
// teacher's own functional-options idiom (eventloop's LoopOption /
// resolveLoopOptions), adapted to the settings spec.md §6 recognizes.
type RuntimeOption interface {
	applyRuntime(*options) error
}

type runtimeOptionImpl struct {
	apply func(*options) error
}

func (r *runtimeOptionImpl) applyRuntime(o *options) error { return r.apply(o) }

// WithTempAllocatorCapacity sets the temp allocator's arena capacity in
// bytes. Zero falls back to the default (64 KiB).
func WithTempAllocatorCapacity(bytes uintptr) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		if bytes > 0 {
			o.tempAllocatorCapacity = bytes
		}
		return nil
	}}
}

// WithSchedulerWorkerCount sets the cooperative scheduler's worker deque
// count. Zero falls back to the default (4).
func WithSchedulerWorkerCount(workers int) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		if workers > 0 {
			o.schedulerWorkerCount = workers
		}
		return nil
	}}
}

// WithGCEnabled toggles whether the garbage collector starts enabled.
func WithGCEnabled(enabled bool) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		o.gcEnabled = enabled
		return nil
	}}
}

// WithPoolWorkerCount sets the preemptive worker pool's goroutine count.
func WithPoolWorkerCount(workers int) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		if workers > 0 {
			o.poolWorkerCount = workers
		}
		return nil
	}}
}

// WithPoolCapacity sets the preemptive worker pool's bounded queue
// capacity.
func WithPoolCapacity(capacity int) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		if capacity > 0 {
			o.poolCapacity = capacity
		}
		return nil
	}}
}

// WithLogger attaches a zerolog.Logger for bootstrap/shutdown/lifecycle
// logging via logiface, per DESIGN.md's ambient-logging stack.
func WithLogger(logger zerolog.Logger) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		o.logger = &logger
		return nil
	}}
}

// WithRateLimiter attaches a catrate.Limiter to the worker pool for
// additive completed/rejected instrumentation (see oafpool.WithRateLimiter).
func WithRateLimiter(opt oafpool.Option) RuntimeOption {
	return &runtimeOptionImpl{func(o *options) error {
		o.rateLimiter = &opt
		return nil
	}}
}

// resolveOptions applies opts over the defaults, skipping nils, matching
// eventloop.resolveLoopOptions.
func resolveOptions(opts []RuntimeOption) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
