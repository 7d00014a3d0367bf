package bgtask

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type task = func() error

// WorkerPool fans tasks out over a bounded errgroup. The first task error
// cancels Ctx, which pending tasks should honor.
type WorkerPool struct {
	Ctx      context.Context
	errGroup *errgroup.Group
}

// NewWorkerPool derives a pool from ctx. limit <= 0 picks a CPU-scaled default.
func NewWorkerPool(ctx context.Context, limit int) *WorkerPool {
	g, ctx := errgroup.WithContext(ctx)
	if limit <= 0 {
		limit = 4 * runtime.NumCPU()
	}
	g.SetLimit(limit)
	return &WorkerPool{
		Ctx:      ctx,
		errGroup: g,
	}
}

func (wp *WorkerPool) Spawn(t task) {
	wp.errGroup.Go(t)
}

func (wp *WorkerPool) Wait() error {
	return wp.errGroup.Wait()
}
