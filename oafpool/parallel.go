package oafpool

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// errTileRejected is returned internally when a tile's task could not be
// submitted to the pool (queue full, or pool shutting down).
var errTileRejected = errors.New("oafpool: tile submission rejected")

// errTileFailed is returned internally when a tile's inner work reported
// failure.
var errTileFailed = errors.New("oafpool: tile failed")

// resolveChunkSize implements spec.md §4.10's default chunking rule:
// chunkSize, if given; else ceil(count / (4*workers)), floored at 1.
func resolveChunkSize(count, chunkSize, workers int64) int64 {
	if chunkSize > 0 {
		return chunkSize
	}
	denom := 4 * workers
	if denom < 1 {
		denom = 1
	}
	cs := (count + denom - 1) / denom
	if cs < 1 {
		cs = 1
	}
	return cs
}

func tileBounds(count, chunkSize int64) [][2]int64 {
	var tiles [][2]int64
	for start := int64(0); start < count; start += chunkSize {
		end := start + chunkSize
		if end > count {
			end = count
		}
		tiles = append(tiles, [2]int64{start, end})
	}
	return tiles
}

// dispatchTiles fans tiles out across the pool, bounding in-flight tile
// goroutines to the pool's worker count via a semaphore, and waits for
// all of them via an errgroup — the Go-native analogue of spec.md
// §4.10's hand-rolled latch: any one tile's failure (rejection or
// reported failure) fails the whole group, matching "await returns false
// if any task failed".
func dispatchTiles(pool *Pool, tiles [][2]int64, run func(start, end int64) bool) error {
	sem := semaphore.NewWeighted(int64(pool.WorkerCount()))
	eg, ctx := errgroup.WithContext(context.Background())

	for _, tile := range tiles {
		tile := tile
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		eg.Go(func() error {
			defer sem.Release(1)
			fut := NewFuture[bool]()
			if !pool.TrySubmit(func() {
				fut.Finish(run(tile[0], tile[1]), false)
			}) {
				return errTileRejected
			}
			ok, _ := fut.Await()
			if !ok {
				return errTileFailed
			}
			return nil
		})
	}
	return eg.Wait()
}

// ParallelFor applies fn to every index in [0,count), partitioned into
// tiles of chunkSize (or the default, if chunkSize<=0), dispatched across
// pool. Returns false if any tile's fn call returned false or any tile
// could not be submitted.
func ParallelFor(pool *Pool, count, chunkSize int64, fn func(i int64) bool) bool {
	if count <= 0 {
		return true
	}
	chunkSize = resolveChunkSize(count, chunkSize, int64(pool.WorkerCount()))
	tiles := tileBounds(count, chunkSize)
	err := dispatchTiles(pool, tiles, func(start, end int64) bool {
		for i := start; i < end; i++ {
			if !fn(i) {
				return false
			}
		}
		return true
	})
	return err == nil
}

// ParallelMap applies fn to every index in [0,count) and collects the
// results into a slice indexed the same way. Returns (nil, false) if any
// tile failed or could not be submitted.
func ParallelMap[T any](pool *Pool, count, chunkSize int64, fn func(i int64) T) ([]T, bool) {
	if count <= 0 {
		return nil, true
	}
	out := make([]T, count)
	ok := ParallelFor(pool, count, chunkSize, func(i int64) bool {
		out[i] = fn(i)
		return true
	})
	if !ok {
		return nil, false
	}
	return out, true
}

// ParallelReduceI64 partitions [0,count) into tiles, sums fn(i) within
// each tile on the worker that ran it, then sums the per-tile partials on
// the caller after every tile completes, per spec.md §4.10. Returns
// (0, false) if any tile failed or could not be submitted.
func ParallelReduceI64(pool *Pool, count, chunkSize int64, fn func(i int64) int64) (int64, bool) {
	if count <= 0 {
		return 0, true
	}
	chunkSize = resolveChunkSize(count, chunkSize, int64(pool.WorkerCount()))
	tiles := tileBounds(count, chunkSize)
	partials := make([]int64, len(tiles))

	sem := semaphore.NewWeighted(int64(pool.WorkerCount()))
	eg, ctx := errgroup.WithContext(context.Background())

	for idx, tile := range tiles {
		idx, tile := idx, tile
		if err := sem.Acquire(ctx, 1); err != nil {
			return 0, false
		}
		eg.Go(func() error {
			defer sem.Release(1)
			fut := NewFuture[int64]()
			if !pool.TrySubmit(func() {
				var sum int64
				for i := tile[0]; i < tile[1]; i++ {
					sum += fn(i)
				}
				fut.Finish(sum, false)
			}) {
				return errTileRejected
			}
			partial, ok := fut.Await()
			if !ok {
				return errTileFailed
			}
			partials[idx] = partial
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, false
	}

	var total int64
	for _, p := range partials {
		total += p
	}
	return total, true
}
