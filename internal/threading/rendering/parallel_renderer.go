package rendering

import (
	"gridcaster/internal/mathutil"
	"gridcaster/internal/threading/core"
)

const (
	inlineColumnLimit = 8
	minBatchSize      = 4
	maxBatchSize      = 32
)

// ParallelRenderer spreads per-column work over a persistent worker pool.
// Each column callback must only touch its own pixels.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
	batches    *core.SafeCounter
}

// NewParallelRenderer creates a renderer backed by one worker per CPU.
func NewParallelRenderer() *ParallelRenderer {
	return NewParallelRendererWithWorkers(0)
}

// NewParallelRendererWithWorkers creates a renderer with a fixed worker count.
// A non-positive count uses one worker per CPU.
func NewParallelRendererWithWorkers(workers int) *ParallelRenderer {
	var pool *core.WorkerPool
	if workers <= 0 {
		pool = core.CreateDefaultWorkerPool()
	} else {
		pool = core.NewWorkerPool(workers)
		pool.Start()
	}
	return &ParallelRenderer{
		workerPool: pool,
		batches:    core.NewSafeCounter(),
	}
}

// RenderColumns calls columnFunc once for every index in [0, numColumns) and
// returns when all calls have finished. Small workloads run inline.
func (pr *ParallelRenderer) RenderColumns(numColumns int, columnFunc func(int)) {
	if numColumns <= 0 {
		return
	}
	if numColumns <= inlineColumnLimit {
		for i := 0; i < numColumns; i++ {
			columnFunc(i)
		}
		return
	}

	batchSize := mathutil.ClampInt(numColumns/pr.workerPool.GetNumWorkers(), minBatchSize, maxBatchSize)
	batches := pr.workerPool.ParallelFor(0, numColumns, batchSize, func(lo, hi int) {
		for col := lo; col < hi; col++ {
			columnFunc(col)
		}
	})
	pr.batches.Add(int64(batches))
}

// Workers returns the size of the underlying pool.
func (pr *ParallelRenderer) Workers() int {
	return pr.workerPool.GetNumWorkers()
}

// BatchesDispatched reports how many batches have been handed to the pool.
func (pr *ParallelRenderer) BatchesDispatched() int64 {
	return pr.batches.Get()
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
