package services

import (
	"context"
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type TaskInput struct {
	PetID       *string
	Title       string
	Description string
	ServiceType constants.ServiceType
	Price       int64
	StartAt     time.Time
	EndAt       time.Time
}

type TaskService struct {
	store *repository.Store
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, in TaskInput) (*model.Task, error) {
	if ownerID == "" {
		return nil, apperrors.ErrForbidden
	}
	if err := s.checkPet(ctx, ownerID, in.PetID); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          model.NewID(),
		OwnerUserID: ownerID,
		Status:      constants.TaskStatusNone,
		Public:      constants.TaskPublicOpen,
	}
	applyTask(task, in)

	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Public == constants.TaskPublicDeleted {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

// ListOpenTasks lists what sitters can still apply to.
func (s *TaskService) ListOpenTasks(ctx context.Context, serviceType constants.ServiceType, page repository.Page) ([]model.Task, int64, error) {
	return s.store.Tasks.List(ctx, repository.TaskFilter{
		ServiceType: serviceType,
		Public:      constants.TaskPublicOpen,
	}, page)
}

func (s *TaskService) ListOwnTasks(ctx context.Context, ownerID string, page repository.Page) ([]model.Task, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.store.Tasks.List(ctx, repository.TaskFilter{OwnerUserID: ownerID}, page)
}

// UpdateTask edits a task that nobody has applied to yet.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, in TaskInput) (*model.Task, error) {
	if err := s.checkPet(ctx, ownerID, in.PetID); err != nil {
		return nil, err
	}

	var task *model.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		task, err = s.ownedForUpdate(ctx, tx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.Status != constants.TaskStatusNone || task.Public != constants.TaskPublicOpen {
			return apperrors.ErrTaskNotEditable
		}

		applyTask(task, in)
		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask hides the task. It is refused once a sitter has been accepted.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := s.ownedForUpdate(ctx, tx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.OrderID != nil || task.Public == constants.TaskPublicInTransaction {
			return apperrors.ErrTaskNotEditable
		}

		if _, err := tx.Orders.InvalidatePending(ctx, task.ID, ""); err != nil {
			return err
		}

		task.Status = constants.TaskStatusNone
		task.Public = constants.TaskPublicDeleted
		return tx.Tasks.Update(ctx, task)
	})
}

func (s *TaskService) ownedForUpdate(ctx context.Context, tx *repository.Store, ownerID, taskID string) (*model.Task, error) {
	task, err := tx.Tasks.FindByIDForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Public == constants.TaskPublicDeleted {
		return nil, apperrors.ErrTaskNotFound
	}
	if ownerID == "" || task.OwnerUserID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}

func (s *TaskService) checkPet(ctx context.Context, ownerID string, petID *string) error {
	if petID == nil {
		return nil
	}
	pet, err := s.store.Pets.FindByID(ctx, *petID)
	if err != nil {
		return err
	}
	if pet.OwnerUserID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}

func applyTask(task *model.Task, in TaskInput) {
	task.PetID = in.PetID
	task.Title = in.Title
	task.Description = in.Description
	task.ServiceType = in.ServiceType
	task.Price = in.Price
	task.StartAt = in.StartAt
	task.EndAt = in.EndAt
}
