package queue

import (
	"context"
	"time"
)

// CompletionJob completes a tracked order on behalf of its pet owner once
// the grace period after payment has elapsed.
type CompletionJob struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	TaskID  string `json:"task_id"`
}

type JobQueue interface {
	// Schedule stores the job to run at runAt, replacing any job for the same order.
	Schedule(ctx context.Context, job CompletionJob, runAt time.Time) error

	// Cancel drops the job for orderID if one is pending or leased. Workers
	// call it once a claimed job is done.
	Cancel(ctx context.Context, orderID string) error

	// ClaimDue leases up to limit jobs due at or before now and returns them.
	// A leased job stays stored and becomes due again when the lease runs
	// out, so it is redelivered unless it is canceled first. While the lease
	// holds, a job is returned to exactly one caller.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]CompletionJob, error)
}
