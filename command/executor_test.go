package command

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_Exclusive(t *testing.T) {
	worker := NewWorker(0)
	defer worker.Close()

	var active, maxActive atomic.Int32
	task := func(ctx context.Context) (any, error) {
		current := active.Add(1)
		for {
			seen := maxActive.Load()
			if current <= seen || maxActive.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
		return current, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := worker.Execute(context.Background(), task)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, maxActive.Load())
}

func TestWorker_CancelledWait(t *testing.T) {
	worker := NewWorker(0)
	defer worker.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		_, _ = worker.Execute(context.Background(), func(ctx context.Context) (any, error) {
			close(started)
			<-release
			close(finished)
			return nil, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := worker.Execute(ctx, func(ctx context.Context) (any, error) { return 1, nil })
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("running task was not completed")
	}
}

func TestWorker_Closed(t *testing.T) {
	worker := NewWorker(1)
	require.NoError(t, worker.Close())
	_, err := worker.Execute(context.Background(), func(ctx context.Context) (any, error) { return nil, nil })
	assert.Equal(t, ErrExecutorClosed, err)
}

func TestPoller_Poll(t *testing.T) {
	poller := NewPoller(0)
	defer poller.Close()

	assert.Equal(t, 0, poller.Poll(0))

	results := make(chan any, 3)
	for i := 0; i < 3; i++ {
		value := i
		go func() {
			result, err := poller.Execute(context.Background(), func(ctx context.Context) (any, error) { return value, nil })
			assert.NoError(t, err)
			results <- result
		}()
	}
	assert.Eventually(t, func() bool { return len(poller.jobs) == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, poller.Poll(1))
	assert.Equal(t, 2, poller.Poll(0))

	var collected []int
	for i := 0; i < 3; i++ {
		collected = append(collected, (<-results).(int))
	}
	assert.ElementsMatch(t, []int{0, 1, 2}, collected)
}

func TestPoller_Run(t *testing.T) {
	poller := NewPoller(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx, time.Millisecond)
		close(done)
	}()

	result, err := poller.Execute(context.Background(), func(ctx context.Context) (any, error) { return "polled", nil })
	require.NoError(t, err)
	assert.Equal(t, "polled", result)

	cancel()
	<-done
	require.NoError(t, poller.Close())
	_, err = poller.Execute(context.Background(), func(ctx context.Context) (any, error) { return nil, nil })
	assert.Equal(t, ErrExecutorClosed, err)
}

func TestWorker_AbandonedTaskNeverRuns(t *testing.T) {
	worker := NewWorker(0)
	defer worker.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = worker.Execute(context.Background(), func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	var abandonedRuns atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := worker.Execute(ctx, func(ctx context.Context) (any, error) {
		abandonedRuns.Add(1)
		return nil, nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	result, err := worker.Execute(context.Background(), func(ctx context.Context) (any, error) { return "next", nil })
	require.NoError(t, err)
	assert.Equal(t, "next", result)
	assert.EqualValues(t, 0, abandonedRuns.Load())
}

func TestWorker_CloseSkipsQueued(t *testing.T) {
	worker := NewWorker(0)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = worker.Execute(context.Background(), func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	var queuedRuns atomic.Int32
	queued := make(chan error, 1)
	go func() {
		_, err := worker.Execute(context.Background(), func(ctx context.Context) (any, error) {
			queuedRuns.Add(1)
			return nil, nil
		})
		queued <- err
	}()
	assert.Eventually(t, func() bool { return len(worker.jobs) == 1 }, time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		_ = worker.Close()
		close(closed)
	}()
	assert.Eventually(t, worker.isClosed, time.Second, time.Millisecond)
	close(release)

	select {
	case err := <-queued:
		assert.Equal(t, ErrExecutorClosed, err)
	case <-time.After(time.Second):
		t.Fatal("queued task was not released")
	}
	<-closed
	assert.EqualValues(t, 0, queuedRuns.Load())
}

func TestPoller_AbandonedTaskNeverRuns(t *testing.T) {
	poller := NewPoller(0)
	defer poller.Close()

	var runs atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := poller.Execute(ctx, func(ctx context.Context) (any, error) {
		runs.Add(1)
		return nil, nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, poller.Poll(0))
	assert.Len(t, poller.jobs, 0)
	assert.EqualValues(t, 0, runs.Load())
}
