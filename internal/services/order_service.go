package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	"pet-sitter.com/pet-sitter/internal/events"
	model "pet-sitter.com/pet-sitter/internal/models"
	"pet-sitter.com/pet-sitter/internal/queue"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

// OrderService coordinates the Task and Order state machines. Every action
// reads and writes both rows inside one transaction.
type OrderService struct {
	store           *repository.Store
	jobs            queue.JobQueue
	publisher       events.Publisher
	completionDelay time.Duration
	now             func() time.Time
}

func NewOrderService(
	store *repository.Store,
	jobs queue.JobQueue,
	publisher events.Publisher,
	completionDelay time.Duration,
) *OrderService {
	return &OrderService{
		store:           store,
		jobs:            jobs,
		publisher:       publisher,
		completionDelay: completionDelay,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder records a sitter's application to a task.
func (s *OrderService) CreateOrder(ctx context.Context, sitterID, taskID, note string) (*model.Order, error) {
	if sitterID == "" {
		return nil, apperrors.ErrForbidden
	}

	var order *model.Order
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByIDForUpdate(ctx, taskID)
		if err != nil {
			return err
		}

		if task.OwnerUserID == sitterID {
			return apperrors.ErrOwnTask
		}
		if task.Public != constants.TaskPublicOpen ||
			(task.Status != constants.TaskStatusNone && task.Status != constants.TaskStatusPending) {
			return apperrors.ErrTaskClosed
		}

		exists, err := tx.Orders.HasLiveOrder(ctx, task.ID, sitterID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrOrderExists
		}

		order = &model.Order{
			ID:             model.NewID(),
			TaskID:         task.ID,
			PetOwnerUserID: task.OwnerUserID,
			SitterUserID:   sitterID,
			Status:         constants.OrderStatusPending,
			Note:           note,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		// Updating the task even when it is already PENDING bumps its version,
		// so concurrent applications serialise on it.
		task.Status = constants.TaskStatusPending
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order, sitterID)
	return order, nil
}

// RefuseSitter invalidates one application. The task falls back to NULL only
// when no other application is still pending.
func (s *OrderService) RefuseSitter(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error) {
	return s.transition(ctx, ownerID, orderID, taskID, func(tx *repository.Store, task *model.Task, order *model.Order) error {
		if order.Status != constants.OrderStatusPending {
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Orders.Transition(ctx, order.ID, order.Status, constants.OrderStatusInvalid, nil); err != nil {
			return err
		}
		order.Status = constants.OrderStatusInvalid

		remaining, err := tx.Orders.CountByStatus(ctx, task.ID, constants.OrderStatusPending)
		if err != nil {
			return err
		}
		if remaining > 0 || task.Status != constants.TaskStatusPending {
			return nil
		}

		task.Status = constants.TaskStatusNone
		return tx.Tasks.Update(ctx, task)
	})
}

// AcceptSitter engages one applicant and invalidates every other pending
// application on the task.
func (s *OrderService) AcceptSitter(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error) {
	return s.transition(ctx, ownerID, orderID, taskID, func(tx *repository.Store, task *model.Task, order *model.Order) error {
		if order.Status != constants.OrderStatusPending || task.OrderID != nil {
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Orders.Transition(ctx, order.ID, order.Status, constants.OrderStatusValid, nil); err != nil {
			return err
		}
		order.Status = constants.OrderStatusValid

		if _, err := tx.Orders.InvalidatePending(ctx, task.ID, order.ID); err != nil {
			return err
		}

		task.Status = constants.TaskStatusUnPaid
		task.OrderID = &order.ID
		return tx.Tasks.Update(ctx, task)
	})
}

// MarkPaid starts tracking a paid order and schedules its automatic
// completion.
func (s *OrderService) MarkPaid(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error) {
	return s.transition(ctx, ownerID, orderID, taskID, func(tx *repository.Store, task *model.Task, order *model.Order) error {
		if order.Status != constants.OrderStatusValid || !linked(task, order) {
			return apperrors.ErrInvalidTransition
		}

		paidAt := s.now()
		if err := tx.Orders.Transition(ctx, order.ID, order.Status, constants.OrderStatusTracking, map[string]interface{}{
			"paid_at": paidAt,
		}); err != nil {
			return err
		}
		order.Status = constants.OrderStatusTracking
		order.PaidAt = &paidAt

		task.Status = constants.TaskStatusTracking
		task.Public = constants.TaskPublicInTransaction
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		// Scheduled last so a failure still rolls the transition back. A job
		// that outlives a failed commit finds the order not TRACKING and is dropped.
		return s.jobs.Schedule(ctx, queue.CompletionJob{
			OrderID: order.ID,
			UserID:  order.PetOwnerUserID,
			TaskID:  task.ID,
		}, paidAt.Add(s.completionDelay))
	})
}

// CompleteOrder finishes a tracked order at the owner's request.
func (s *OrderService) CompleteOrder(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error) {
	order, err := s.transition(ctx, ownerID, orderID, taskID, s.complete(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Cancel(ctx, order.ID); err != nil {
		slog.WarnContext(ctx, "failed to cancel completion job", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// CompleteScheduled runs a deferred completion job through the same path as
// CompleteOrder. Jobs whose order already left TRACKING are dropped.
func (s *OrderService) CompleteScheduled(ctx context.Context, job queue.CompletionJob) error {
	_, err := s.transition(ctx, job.UserID, job.OrderID, job.TaskID, s.complete(ctx))
	if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrOrderNotFound) {
		slog.InfoContext(ctx, "completion job dropped", "order_id", job.OrderID, "reason", err.Error())
		return nil
	}
	return err
}

func (s *OrderService) complete(ctx context.Context) transitionFunc {
	return func(tx *repository.Store, task *model.Task, order *model.Order) error {
		if order.Status != constants.OrderStatusTracking || !linked(task, order) {
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Orders.Transition(ctx, order.ID, order.Status, constants.OrderStatusCompleted, nil); err != nil {
			return err
		}
		order.Status = constants.OrderStatusCompleted

		task.Status = constants.TaskStatusCompleted
		task.Public = constants.TaskPublicCompleted
		return tx.Tasks.Update(ctx, task)
	}
}

// CancelOrder cancels an application or an engagement and reopens the task.
// Canceling a pending application leaves the task PENDING while other
// applications are still waiting.
func (s *OrderService) CancelOrder(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error) {
	order, err := s.transition(ctx, ownerID, orderID, taskID, func(tx *repository.Store, task *model.Task, order *model.Order) error {
		switch order.Status {
		case constants.OrderStatusPending, constants.OrderStatusValid, constants.OrderStatusTracking:
		default:
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Orders.Transition(ctx, order.ID, order.Status, constants.OrderStatusCanceled, nil); err != nil {
			return err
		}
		order.Status = constants.OrderStatusCanceled

		remaining, err := tx.Orders.CountByStatus(ctx, task.ID, constants.OrderStatusPending)
		if err != nil {
			return err
		}

		task.Status = constants.TaskStatusNone
		if remaining > 0 && task.OrderID == nil {
			task.Status = constants.TaskStatusPending
		}
		task.Public = constants.TaskPublicOpen
		task.OrderID = nil
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Cancel(ctx, order.ID); err != nil {
		slog.WarnContext(ctx, "failed to cancel completion job", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// SubmitReport lets the engaged sitter describe the visit while the order is
// being tracked.
func (s *OrderService) SubmitReport(ctx context.Context, sitterID, orderID, content string, images []string) (*model.Order, error) {
	if sitterID == "" {
		return nil, apperrors.ErrForbidden
	}

	var order *model.Order
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		order, err = tx.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.SitterUserID != sitterID {
			return apperrors.ErrForbidden
		}
		if order.Status != constants.OrderStatusTracking {
			return apperrors.ErrInvalidTransition
		}

		now := s.now()
		if order.ReportCreatedAt == nil {
			order.ReportCreatedAt = &now
		}
		order.ReportUpdatedAt = &now
		order.ReportContent = content
		order.ReportImages = images

		return tx.Orders.UpdateFields(ctx, order.ID, map[string]interface{}{
			"report_content":    order.ReportContent,
			"report_images":     order.ReportImages,
			"report_created_at": order.ReportCreatedAt,
			"report_updated_at": order.ReportUpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns an order visible to either party.
func (s *OrderService) GetOrder(ctx context.Context, actorID, orderID string) (*model.Order, error) {
	order, err := s.store.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actorID == "" || (order.PetOwnerUserID != actorID && order.SitterUserID != actorID) {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListForPetOwner(ctx context.Context, ownerID string, status constants.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.store.Orders.List(ctx, repository.OrderFilter{PetOwnerUserID: ownerID, Status: status}, page)
}

func (s *OrderService) ListForSitter(ctx context.Context, sitterID string, status constants.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	if sitterID == "" {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.store.Orders.List(ctx, repository.OrderFilter{SitterUserID: sitterID, Status: status}, page)
}

// ListForTask shows a task's applications to its owner.
func (s *OrderService) ListForTask(ctx context.Context, ownerID, taskID string, status constants.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, 0, err
	}
	if ownerID == "" || task.OwnerUserID != ownerID {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.store.Orders.List(ctx, repository.OrderFilter{TaskID: taskID, Status: status}, page)
}

type transitionFunc func(tx *repository.Store, task *model.Task, order *model.Order) error

// transition loads and locks the order and its task, checks that ownerID owns
// them, then applies fn in the same transaction.
func (s *OrderService) transition(ctx context.Context, ownerID, orderID, taskID string, fn transitionFunc) (*model.Order, error) {
	if ownerID == "" {
		return nil, apperrors.ErrForbidden
	}

	var order *model.Order
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		order, err = tx.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if taskID != "" && order.TaskID != taskID {
			return apperrors.ErrOrderNotFound
		}

		task, err := tx.Tasks.FindByIDForUpdate(ctx, order.TaskID)
		if err != nil {
			return err
		}
		if task.OwnerUserID != ownerID || order.PetOwnerUserID != ownerID {
			return apperrors.ErrForbidden
		}

		return fn(tx, task, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order, ownerID)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, order *model.Order, actorID string) {
	s.publisher.OrderStatusChanged(ctx, events.OrderStatusChanged{
		OrderID:        order.ID,
		TaskID:         order.TaskID,
		PetOwnerUserID: order.PetOwnerUserID,
		SitterUserID:   order.SitterUserID,
		Status:         order.Status,
		ActorUserID:    actorID,
		OccurredAt:     s.now(),
	})
}

func linked(task *model.Task, order *model.Order) bool {
	return task.OrderID != nil && *task.OrderID == order.ID
}
