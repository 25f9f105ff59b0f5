package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
	"pet-sitter.com/pet-sitter/internal/queue"
)

// mockCompleter records completions and can fail on demand
type mockCompleter struct {
	mu   sync.Mutex
	done []string
	fail error
}

func (m *mockCompleter) CompleteScheduled(ctx context.Context, job queue.CompletionJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}
	m.done = append(m.done, job.OrderID)
	return nil
}

func (m *mockCompleter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.done)
}

// blockingCompleter holds every job until release is closed or the job's
// context ends, whichever comes first.
type blockingCompleter struct {
	release chan struct{}
	started chan string
}

func newBlockingCompleter() *blockingCompleter {
	return &blockingCompleter{release: make(chan struct{}), started: make(chan string, 10)}
}

func (b *blockingCompleter) CompleteScheduled(ctx context.Context, job queue.CompletionJob) error {
	b.started <- job.OrderID

	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isDue(jobs *mockJobQueue, orderID string) bool {
	s, ok := jobs.get(orderID)
	return ok && !s.runAt.After(time.Now())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCompletionPool_RunsDueJobsOnly(t *testing.T) {
	jobs := newMockJobQueue()
	completer := &mockCompleter{}
	pool := NewCompletionPool(jobs, completer, 2, 10)
	defer pool.Shutdown(context.Background())

	ctx := context.Background()
	now := time.Now()
	_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: "due-1"}, now.Add(-time.Minute))
	_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: "due-2"}, now.Add(-time.Second))
	_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: "later"}, now.Add(time.Hour))

	if n := pool.PollOnce(ctx); n != 2 {
		t.Errorf("expected 2 jobs dispatched, got %d", n)
	}

	waitFor(t, func() bool { return completer.count() == 2 })

	// Completed jobs are acknowledged and leave the queue.
	waitFor(t, func() bool { return jobs.size() == 1 })
	if _, ok := jobs.get("later"); !ok {
		t.Error("a job that is not due must stay queued")
	}
}

func TestCompletionPool_FailedJobIsRescheduled(t *testing.T) {
	jobs := newMockJobQueue()
	completer := &mockCompleter{fail: errors.New("database is locked")}
	pool := NewCompletionPool(jobs, completer, 1, 10)
	defer pool.Shutdown(context.Background())

	ctx := context.Background()
	_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: "flaky"}, time.Now().Add(-time.Minute))

	if n := pool.PollOnce(ctx); n != 1 {
		t.Fatalf("expected 1 job dispatched, got %d", n)
	}

	waitFor(t, func() bool { return isDue(jobs, "flaky") })
	if completer.count() != 0 {
		t.Error("failed job must not count as done")
	}
}

func TestCompletionPool_TimedOutJobIsRescheduled(t *testing.T) {
	jobs := newMockJobQueue()
	completer := newBlockingCompleter()
	defer close(completer.release)

	pool := NewCompletionPool(jobs, completer, 1, 10)
	pool.jobTimeout = 50 * time.Millisecond
	defer pool.Shutdown(context.Background())

	ctx := context.Background()
	_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: "slow"}, time.Now().Add(-time.Minute))

	if n := pool.PollOnce(ctx); n != 1 {
		t.Fatalf("expected 1 job dispatched, got %d", n)
	}
	<-completer.started

	// The job's own deadline is spent by now; it must still go back as due.
	waitFor(t, func() bool { return isDue(jobs, "slow") })
}

func TestCompletionPool_BufferedJobsSurviveShutdownTimeout(t *testing.T) {
	jobs := newMockJobQueue()
	completer := newBlockingCompleter()
	defer close(completer.release)

	pool := NewCompletionPool(jobs, completer, 1, 5)

	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{"o1", "o2", "o3"} {
		_ = jobs.Schedule(ctx, queue.CompletionJob{OrderID: id}, now.Add(-time.Minute))
	}

	if n := pool.PollOnce(ctx); n != 3 {
		t.Fatalf("expected 3 jobs dispatched, got %d", n)
	}
	<-completer.started

	shutdownCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	pool.Shutdown(shutdownCtx)

	if jobs.size() != 3 {
		t.Fatalf("expected every unfinished job to stay queued, %d left", jobs.size())
	}

	// Once the lease runs out they are handed out again.
	again, err := jobs.ClaimDue(ctx, time.Now().Add(mockLease+time.Second), 10)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if len(again) != 3 {
		t.Errorf("expected 3 jobs redelivered after the lease, got %d", len(again))
	}
}

func TestCompletionPool_ShutdownStopsPolling(t *testing.T) {
	jobs := newMockJobQueue()
	pool := NewCompletionPool(jobs, &mockCompleter{}, 1, 10)
	pool.Shutdown(context.Background())

	_ = jobs.Schedule(context.Background(), queue.CompletionJob{OrderID: "x"}, time.Now().Add(-time.Minute))
	if n := pool.PollOnce(context.Background()); n != 0 {
		t.Errorf("expected no dispatch after shutdown, got %d", n)
	}
	if jobs.size() != 1 {
		t.Error("job must stay queued after shutdown")
	}
}

func TestCompletionPool_CompletesThroughOrderService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "Owner")
	sitter := f.user(t, "Sitter")
	task := f.task(t, owner.ID)
	order := f.apply(t, sitter.ID, task.ID)

	if _, err := f.orders.AcceptSitter(ctx, owner.ID, order.ID, task.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// Due immediately.
	f.orders.completionDelay = -time.Hour
	f.orders.now = time.Now
	if _, err := f.orders.MarkPaid(ctx, owner.ID, order.ID, task.ID); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	pool := NewCompletionPool(f.jobs, f.orders, 1, 5)
	defer pool.Shutdown(ctx)

	if n := pool.PollOnce(ctx); n != 1 {
		t.Fatalf("expected 1 job dispatched, got %d", n)
	}

	waitFor(t, func() bool {
		got, err := f.store.Orders.FindByID(ctx, order.ID)
		return err == nil && got.Status == constants.OrderStatusCompleted
	})

	if got := f.reloadTask(t, task.ID); got.Public != constants.TaskPublicCompleted {
		t.Errorf("expected task public %s, got %s", constants.TaskPublicCompleted, got.Public)
	}
}
