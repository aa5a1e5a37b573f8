package oafffi

import (
	"context"
	"time"

	"github.com/joeycumines/go-microbatch"
)

// invocation is a single queued callback invocation, coalesced with
// others by the underlying microbatch.Batcher.
type invocation struct {
	registry *CallbackRegistry
	id       int
	args     []int64
	result   int64
	ok       bool
}

// BatchInvoker coalesces bursts of callback trampoline invocations into
// batches, reducing registry-lock contention when many native callers
// fire callbacks in quick succession. It is additive: callers that want
// immediate, unbatched dispatch should just call
// CallbackRegistry.InvokeI64 directly.
type BatchInvoker struct {
	batcher *microbatch.Batcher[*invocation]
}

// NewBatchInvoker starts a BatchInvoker with the given batch size and
// flush interval (zero values fall back to microbatch's own defaults).
func NewBatchInvoker(maxSize int, flushInterval time.Duration) *BatchInvoker {
	b := &BatchInvoker{}
	b.batcher = microbatch.NewBatcher(&microbatch.BatcherConfig{
		MaxSize:       maxSize,
		FlushInterval: flushInterval,
	}, func(ctx context.Context, jobs []*invocation) error {
		for _, job := range jobs {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			job.result, job.ok = job.registry.InvokeI64(job.id, job.args)
		}
		return nil
	})
	return b
}

// Invoke schedules id's invocation on registry with args and blocks until
// the batch it lands in has been processed.
func (b *BatchInvoker) Invoke(ctx context.Context, registry *CallbackRegistry, id int, args []int64) (int64, bool, error) {
	job := &invocation{registry: registry, id: id, args: args}
	res, err := b.batcher.Submit(ctx, job)
	if err != nil {
		return 0, false, err
	}
	if err := res.Wait(ctx); err != nil {
		return 0, false, err
	}
	return job.result, job.ok, nil
}

// Close stops accepting new invocations and releases the underlying
// batcher's resources.
func (b *BatchInvoker) Close() error {
	return b.batcher.Close()
}
