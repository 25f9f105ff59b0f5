package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pet-sitter.com/pet-sitter/internal/queue"
)

const (
	completionJobTimeout = 30 * time.Second
	jobQueueTimeout      = 5 * time.Second
)

type orderCompleter interface {
	CompleteScheduled(ctx context.Context, job queue.CompletionJob) error
}

// CompletionPool runs due completion jobs on a fixed set of workers. Jobs
// are claimed from the job queue only when a worker slot is free for them,
// and are removed from it only once they completed. A job that is still
// buffered when the process stops is redelivered after its lease.
type CompletionPool struct {
	queue    chan queue.CompletionJob
	wg       sync.WaitGroup
	enqueued sync.Map
	jobs     queue.JobQueue
	orders   orderCompleter
	closed   chan struct{}
	once     sync.Once

	jobTimeout time.Duration
}

func NewCompletionPool(jobs queue.JobQueue, orders orderCompleter, workers, queueSize int) *CompletionPool {
	p := &CompletionPool{
		queue:  make(chan queue.CompletionJob, queueSize),
		jobs:   jobs,
		orders: orders,
		closed: make(chan struct{}),

		jobTimeout: completionJobTimeout,
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// PollOnce claims due jobs up to the free queue capacity and hands them to
// the workers. It returns how many were enqueued.
func (p *CompletionPool) PollOnce(ctx context.Context) int {
	select {
	case <-p.closed:
		return 0
	default:
	}

	free := cap(p.queue) - len(p.queue)
	if free <= 0 {
		return 0
	}

	jobs, err := p.jobs.ClaimDue(ctx, time.Now(), free)
	if err != nil {
		slog.ErrorContext(ctx, "completion poll: failed to claim jobs", "error", err)
	}

	enqueued := 0
	for _, job := range jobs {
		if p.enqueue(job) {
			enqueued++
			continue
		}
		p.requeue(ctx, job)
	}

	return enqueued
}

func (p *CompletionPool) enqueue(job queue.CompletionJob) bool {
	if _, loaded := p.enqueued.LoadOrStore(job.OrderID, struct{}{}); loaded {
		return true
	}

	select {
	case p.queue <- job:
		return true
	default:
		p.enqueued.Delete(job.OrderID)
		return false
	}
}

func (p *CompletionPool) worker(workerID int) {
	defer p.wg.Done()

	slog.Debug("completion worker started", "worker", workerID)

	for job := range p.queue {
		p.handle(workerID, job)
	}

	slog.Debug("completion worker stopped", "worker", workerID)
}

func (p *CompletionPool) handle(workerID int, job queue.CompletionJob) {
	defer p.enqueued.Delete(job.OrderID)

	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()

	if err := p.orders.CompleteScheduled(ctx, job); err != nil {
		slog.Error("completion job failed",
			"worker", workerID, "order_id", job.OrderID, "task_id", job.TaskID, "error", err)
		p.requeue(context.Background(), job)
		return
	}

	// The order is settled; a failed ack only means a redelivery that
	// CompleteScheduled drops.
	ackCtx, ackCancel := context.WithTimeout(context.Background(), jobQueueTimeout)
	defer ackCancel()
	if err := p.jobs.Cancel(ackCtx, job.OrderID); err != nil {
		slog.Warn("failed to ack completion job", "order_id", job.OrderID, "error", err)
	}

	slog.Info("completion job done", "worker", workerID, "order_id", job.OrderID)
}

// requeue makes the job due again for the next poll; there is no retry within
// a run. It gets its own deadline since the caller's may already be spent.
func (p *CompletionPool) requeue(parent context.Context, job queue.CompletionJob) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), jobQueueTimeout)
	defer cancel()

	if err := p.jobs.Schedule(ctx, job, time.Now()); err != nil {
		slog.ErrorContext(ctx, "failed to requeue completion job", "order_id", job.OrderID, "error", err)
	}
}

func (p *CompletionPool) Shutdown(ctx context.Context) {
	p.once.Do(func() {
		close(p.closed)
		close(p.queue)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("completion pool shut down cleanly")
	case <-ctx.Done():
		slog.Warn("completion pool shutdown timed out")
	}
}
