package command

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task represents a unit of work that touches host state
type Task func(ctx context.Context) (any, error)

// Executor serializes tasks behind a single exclusive access point
type Executor interface {
	Execute(ctx context.Context, task Task) (any, error)
}

type outcome struct {
	value any
	err   error
}

const (
	jobPending int32 = iota
	jobStarted
	jobAbandoned
)

type job struct {
	ctx    context.Context
	task   Task
	result chan outcome
	state  atomic.Int32
}

// run executes the task unless the submitter abandoned it first
func (j *job) run() bool {
	if !j.state.CompareAndSwap(jobPending, jobStarted) {
		return false
	}
	value, err := j.task(j.ctx)
	j.result <- outcome{value: value, err: err}
	return true
}

// abandon marks a job that has not started, it reports false once the task runs
func (j *job) abandon() bool {
	return j.state.CompareAndSwap(jobPending, jobAbandoned)
}

// queue is shared by Worker and Poller; the difference is who drains it
type queue struct {
	jobs      chan *job
	closed    chan struct{}
	closeOnce sync.Once
}

func newQueue(size int) *queue {
	if size <= 0 {
		size = 64
	}
	return &queue{jobs: make(chan *job, size), closed: make(chan struct{})}
}

// submit enqueues a task and waits for its outcome. A task abandoned by a
// cancelled ctx or a closed queue before it started never runs; a task that
// already started runs to completion.
func (q *queue) submit(ctx context.Context, task Task) (any, error) {
	j := &job{ctx: context.WithoutCancel(ctx), task: task, result: make(chan outcome, 1)}
	select {
	case <-q.closed:
		return nil, ErrExecutorClosed
	default:
	}
	select {
	case q.jobs <- j:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.closed:
		return nil, ErrExecutorClosed
	}
	select {
	case o := <-j.result:
		return o.value, o.err
	case <-ctx.Done():
		j.abandon()
		return nil, ctx.Err()
	case <-q.closed:
		if j.abandon() {
			return nil, ErrExecutorClosed
		}
		select {
		case o := <-j.result:
			return o.value, o.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (q *queue) isClosed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}

func (q *queue) close() {
	q.closeOnce.Do(func() { close(q.closed) })
}

// Worker drains tasks on a dedicated goroutine pinned to one OS thread
type Worker struct {
	*queue
	done chan struct{}
}

// Execute runs task on the worker goroutine
func (w *Worker) Execute(ctx context.Context, task Task) (any, error) {
	return w.submit(ctx, task)
}

// Close stops the worker once the task in progress (if any) completes, queued tasks never run
func (w *Worker) Close() error {
	w.close()
	<-w.done
	return nil
}

func (w *Worker) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)
	for {
		select {
		case <-w.closed:
			return
		case j := <-w.jobs:
			if w.isClosed() {
				return
			}
			j.run()
		}
	}
}

// NewWorker starts a worker with the given queue size
func NewWorker(size int) *Worker {
	ret := &Worker{queue: newQueue(size), done: make(chan struct{})}
	go ret.loop()
	return ret
}

// Poller queues tasks until the host drains them from its own loop via Poll
type Poller struct {
	*queue
}

// Execute queues task and waits until a Poll call runs it
func (p *Poller) Execute(ctx context.Context, task Task) (any, error) {
	return p.submit(ctx, task)
}

// Poll runs up to max queued tasks on the calling goroutine without blocking, max <= 0 drains the queue.
// Abandoned tasks are dropped and not counted.
func (p *Poller) Poll(max int) int {
	count := 0
	for (max <= 0 || count < max) && !p.isClosed() {
		select {
		case j := <-p.jobs:
			if j.run() {
				count++
			}
		default:
			return count
		}
	}
	return count
}

// Run polls every interval until ctx is done
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closed:
			return
		case <-ticker.C:
			p.Poll(0)
		}
	}
}

// Close stops accepting tasks, queued but not started tasks are abandoned
func (p *Poller) Close() error {
	p.close()
	return nil
}

// NewPoller creates a cooperative executor
func NewPoller(size int) *Poller {
	return &Poller{queue: newQueue(size)}
}
