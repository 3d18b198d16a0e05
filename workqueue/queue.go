// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workqueue provides a debounced queue that coalesces work items into
// batches and processes the batches one at a time.
//
// This is intended for editor integrations, where many small edits arrive in
// quick succession and each would otherwise trigger a full re-analysis.
package workqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// ErrCanceled is the cause of a batch context canceled by
// [Queue.CancelExisting].
var ErrCanceled = errors.New("workqueue: batch canceled")

// ProcessFunc processes one batch of items.
//
// ctx is canceled if the queue is shut down or [Queue.CancelExisting] is
// called while the batch is running. Processing is cooperative: the function
// should return promptly once ctx is done.
type ProcessFunc[T any] func(ctx context.Context, items []T) error

// Queue collects items and hands them to a [ProcessFunc] in batches.
//
// Items added within delay of each other are processed together. Batches are
// strictly serialized: a batch starts only after the previous batch's
// ProcessFunc has returned, so items are processed in the order they were
// added.
//
// All methods are safe to call concurrently.
type Queue[T any] struct {
	ctx     context.Context //nolint:containedctx // The queue's lifetime.
	delay   time.Duration
	process ProcessFunc[T]
	key     func(T) any
	log     *slog.Logger

	mu      sync.Mutex
	pending []T
	seen    map[any]struct{}
	// Whether a batch that has not yet taken its items is scheduled.
	scheduled bool
	// Closed once the most recently scheduled batch has finished.
	last chan struct{}

	// The context handed to batches. Replaced on every CancelExisting.
	batchCtx    context.Context //nolint:containedctx
	cancelBatch context.CancelCauseFunc
}

// Option configures a [Queue].
type Option[T any] func(*Queue[T])

// WithKey deduplicates items within a batch: of all items with the same key,
// only the first one added is kept.
func WithKey[T any, K comparable](key func(T) K) Option[T] {
	return func(q *Queue[T]) {
		q.key = func(v T) any { return key(v) }
	}
}

// WithLogger sets the logger used to report failed batches.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(q *Queue[T]) {
		if log != nil {
			q.log = log
		}
	}
}

// New returns a new queue.
//
// Once ctx is done, the queue shuts down: running batches see their context
// canceled, and no further batches are started.
func New[T any](ctx context.Context, delay time.Duration, process ProcessFunc[T], opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{
		ctx:     ctx,
		delay:   delay,
		process: process,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.batchCtx, q.cancelBatch = context.WithCancelCause(ctx)
	return q
}

// Add adds items to the next batch, scheduling it if necessary.
//
// Items added after the queue has shut down are dropped.
func (q *Queue[T]) Add(items ...T) {
	if len(items) == 0 || q.ctx.Err() != nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, item := range items {
		if q.key != nil {
			k := q.key(item)
			if _, ok := q.seen[k]; ok {
				continue
			}
			if q.seen == nil {
				q.seen = make(map[any]struct{})
			}
			q.seen[k] = struct{}{}
		}
		q.pending = append(q.pending, item)
	}

	if q.scheduled {
		return
	}
	q.scheduled = true
	prev, done := q.last, make(chan struct{})
	q.last = done
	go q.run(prev, done)
}

// CancelExisting discards every item that has not yet been handed to a batch
// and cancels the context of the batch that is currently running, if any.
//
// It does not wait for the running batch to return. Items added afterwards
// are processed normally.
func (q *Queue[T]) CancelExisting() {
	q.mu.Lock()
	defer q.mu.Unlock()

	clear(q.pending)
	q.pending = q.pending[:0]
	clear(q.seen)

	q.cancelBatch(ErrCanceled)
	q.batchCtx, q.cancelBatch = context.WithCancelCause(q.ctx)
}

// Wait blocks until the most recently scheduled batch has finished, or until
// ctx is done.
func (q *Queue[T]) Wait(ctx context.Context) error {
	q.mu.Lock()
	last := q.last
	q.mu.Unlock()

	if last == nil {
		return nil
	}
	select {
	case <-last:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

// run waits out the delay and the previous batch, and then processes whatever
// items have accumulated.
func (q *Queue[T]) run(prev, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(q.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-q.ctx.Done():
		return
	}

	if prev != nil {
		select {
		case <-prev:
		case <-q.ctx.Done():
			return
		}
	}

	q.mu.Lock()
	items := q.pending
	q.pending = nil
	clear(q.seen)
	q.scheduled = false
	ctx := q.batchCtx
	q.mu.Unlock()

	if len(items) == 0 || q.ctx.Err() != nil {
		return
	}

	if err := q.call(ctx, items); err != nil {
		level := slog.LevelError
		if errors.Is(err, context.Canceled) || errors.Is(err, ErrCanceled) {
			level = slog.LevelDebug
		}
		q.log.Log(ctx, level, "workqueue: batch failed", "items", len(items), "error", err)
	}
}

func (q *Queue[T]) call(ctx context.Context, items []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workqueue: panic in batch: %v\n%s", r, debug.Stack())
		}
	}()
	return q.process(ctx, items)
}
