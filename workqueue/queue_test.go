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

package workqueue_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/razorcompile/workqueue"
)

const delay = 5 * time.Millisecond

// recorder collects the batches a queue processes.
type recorder struct {
	mu      sync.Mutex
	batches [][]int
}

func (r *recorder) process(_ context.Context, items []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, slices.Clone(items))
	return nil
}

func (r *recorder) get() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.batches)
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	r := new(recorder)
	q := workqueue.New(t.Context(), 50*time.Millisecond, r.process)
	q.Add(1, 2)
	q.Add(3)
	require.NoError(t, q.Wait(t.Context()))
	assert.Equal(t, [][]int{{1, 2, 3}}, r.get())

	// Work added after a batch completes starts a new batch.
	q.Add(4)
	require.NoError(t, q.Wait(t.Context()))
	assert.Equal(t, [][]int{{1, 2, 3}, {4}}, r.get())
}

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	r := new(recorder)
	q := workqueue.New(t.Context(), 50*time.Millisecond, r.process,
		workqueue.WithKey(func(i int) int { return i % 10 }))
	q.Add(1, 11, 2)
	q.Add(21, 12, 3)
	require.NoError(t, q.Wait(t.Context()))

	assert.Equal(t, [][]int{{1, 2, 3}}, r.get())
}

func TestSerialized(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var running, overlap atomic.Int32
	var mu sync.Mutex
	var seen []int
	q := workqueue.New(t.Context(), delay, func(_ context.Context, items []int) error {
		if running.Add(1) > 1 {
			overlap.Add(1)
		}
		defer running.Add(-1)

		time.Sleep(2 * delay)
		mu.Lock()
		seen = append(seen, items...)
		mu.Unlock()
		return nil
	})

	for i := range 20 {
		q.Add(i)
		time.Sleep(delay / 2)
	}
	require.NoError(t, q.Wait(t.Context()))

	assert.Zero(overlap.Load())
	mu.Lock()
	defer mu.Unlock()
	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(want, seen)
}

func TestCancelExisting(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	started := make(chan struct{})
	var causes []error
	r := new(recorder)
	q := workqueue.New(t.Context(), delay, func(ctx context.Context, items []int) error {
		if items[0] == 1 {
			close(started)
			<-ctx.Done()
			causes = append(causes, context.Cause(ctx))
			return ctx.Err()
		}
		return r.process(ctx, items)
	})

	q.Add(1)
	<-started
	q.Add(2)
	q.CancelExisting()
	q.Add(3)
	require.NoError(t, q.Wait(t.Context()))

	// The in-flight batch observed the cancellation, the pending item was
	// dropped, and the queue kept working.
	assert.Equal([]error{workqueue.ErrCanceled}, causes)
	assert.Equal([][]int{{3}}, r.get())
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	r := new(recorder)
	q := workqueue.New(ctx, time.Hour, r.process)
	q.Add(1)
	cancel()
	require.NoError(t, q.Wait(t.Context()))

	q.Add(2)
	require.NoError(t, q.Wait(t.Context()))
	assert.Empty(t, r.get())
}

func TestFailuresDoNotStopQueue(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var buf bytes.Buffer
	var mu sync.Mutex
	log := slog.New(slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil))

	r := new(recorder)
	q := workqueue.New(t.Context(), delay, func(ctx context.Context, items []int) error {
		switch items[0] {
		case 1:
			panic("boom")
		case 2:
			return errors.New("bad batch")
		}
		return r.process(ctx, items)
	}, workqueue.WithLogger[int](log))

	for i := 1; i <= 3; i++ {
		q.Add(i)
		require.NoError(t, q.Wait(t.Context()))
	}
	assert.Equal([][]int{{3}}, r.get())

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(buf.String(), "panic in batch: boom")
	assert.Contains(buf.String(), "bad batch")
}

func TestWaitContext(t *testing.T) {
	t.Parallel()

	q := workqueue.New(t.Context(), time.Hour, new(recorder).process)
	require.NoError(t, q.Wait(t.Context()))

	q.Add(1)
	ctx, cancel := context.WithTimeout(t.Context(), delay)
	defer cancel()
	assert.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
