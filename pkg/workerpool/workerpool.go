// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

type outcome[R any] struct {
	result R
	err    error
}

type job[T, R any] struct {
	item T
	out  chan outcome[R]
}

// Ordered runs process over items with workerCount goroutines and hands every result to
// consume on the calling goroutine, strictly in input order. At most workerCount results
// wait for consume; producers block beyond that.
//
// The first error, whether yielded by items, returned by process or by consume, is
// returned once every earlier item has been consumed. When ctx is canceled Ordered returns
// ctx.Err() after the consume call in progress completes.
func Ordered[T, R any](
	ctx context.Context,
	workerCount int,
	items iter.Seq2[T, error],
	process func(context.Context, T) (R, error),
	consume func(R) error,
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(workCtx)

	tasks := make(chan job[T, R])
	order := make(chan chan outcome[R], workerCount)
	exhausted := false

	g.Go(func() error {
		defer close(tasks)
		defer close(order)
		for item, err := range items {
			out := make(chan outcome[R], 1)
			select {
			case order <- out:
			case <-gctx.Done():
				return nil
			}
			if err != nil {
				out <- outcome[R]{err: err}
				return nil
			}
			select {
			case tasks <- job[T, R]{item: item, out: out}:
			case <-gctx.Done():
				out <- outcome[R]{err: gctx.Err()}
				return nil
			}
		}
		exhausted = true
		return nil
	})

	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			for j := range tasks {
				r, err := process(gctx, j.item)
				j.out <- outcome[R]{result: r, err: err}
			}
			return nil
		})
	}

	err := consumeInOrder(ctx, order, consume)
	cancel()
	_ = g.Wait()
	if err == nil && !exhausted {
		err = ctx.Err()
	}
	return err
}

func consumeInOrder[R any](ctx context.Context, order <-chan chan outcome[R], consume func(R) error) error {
	for out := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		var o outcome[R]
		select {
		case o = <-out:
		case <-ctx.Done():
			return ctx.Err()
		}
		if o.err != nil {
			return o.err
		}
		if err := consume(o.result); err != nil {
			return err
		}
	}
	return nil
}
