package brawlstars

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxInFlight bounds concurrent requests of an AsyncClient.
const DefaultMaxInFlight = 8

// executor decides where a request task runs. The request pipeline itself is
// the same for every executor. When the task cannot be started, abort is
// called with the reason instead.
type executor interface {
	spawn(ctx context.Context, task func(context.Context), abort func(error))
}

// inlineExecutor runs tasks on the calling goroutine.
type inlineExecutor struct{}

func (inlineExecutor) spawn(ctx context.Context, task func(context.Context), _ func(error)) {
	task(ctx)
}

// goroutineExecutor runs each task on its own goroutine, at most limit at a
// time. spawn never blocks the caller.
type goroutineExecutor struct {
	sem *semaphore.Weighted
}

func newGoroutineExecutor(limit int) *goroutineExecutor {
	if limit <= 0 {
		limit = DefaultMaxInFlight
	}
	return &goroutineExecutor{sem: semaphore.NewWeighted(int64(limit))}
}

func (e *goroutineExecutor) spawn(ctx context.Context, task func(context.Context), abort func(error)) {
	// A cancelled caller never takes a slot.
	if err := ctx.Err(); err != nil {
		abort(err)
		return
	}

	go func() {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			abort(err)
			return
		}
		defer e.sem.Release(1)
		task(ctx)
	}()
}

// Future is the pending result of an AsyncClient call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	// A finished result wins over a cancelled context.
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// submit runs fn through ex and returns its future.
func submit[T any](ctx context.Context, ex executor, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	ex.spawn(ctx,
		func(ctx context.Context) {
			defer close(f.done)
			f.value, f.err = fn(ctx)
		},
		func(err error) {
			f.err = err
			close(f.done)
		})
	return f
}

// await runs fn through ex and waits for it.
func await[T any](ctx context.Context, ex executor, fn func(context.Context) (T, error)) (T, error) {
	return submit(ctx, ex, fn).Wait(ctx)
}
