package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskFilter struct {
	ServiceType constants.ServiceType
	OwnerUserID string
	Public      constants.TaskPublic
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.Version = 1
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the row for the rest of the enclosing transaction.
func (r *TaskRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Task, error) {
	return r.find(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *TaskRepository) find(db *gorm.DB, id string) (*model.Task, error) {
	var task model.Task
	err := db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter, page Page) ([]model.Task, int64, error) {
	if page.Limit <= 0 {
		return nil, 0, apperrors.ErrInvalidLimit
	}

	query := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.ServiceType != "" {
		query = query.Where("service_type = ?", filter.ServiceType)
	}
	if filter.OwnerUserID != "" {
		query = query.Where("owner_user_id = ?", filter.OwnerUserID)
	} else {
		query = query.Where("public <> ?", constants.TaskPublicDeleted)
	}
	if filter.Public != "" {
		query = query.Where("public = ?", filter.Public)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := query.Order("created_at desc").
		Offset(page.offset()).Limit(page.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update writes every mutable column guarded by the version the caller read.
// A concurrent writer that got there first makes this fail with
// ErrOptimisticLock instead of being silently overwritten.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"pet_id":       task.PetID,
			"title":        task.Title,
			"description":  task.Description,
			"service_type": task.ServiceType,
			"price":        task.Price,
			"status":       task.Status,
			"public":       task.Public,
			"order_id":     task.OrderID,
			"review_id":    task.ReviewID,
			"start_at":     task.StartAt,
			"end_at":       task.EndAt,
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}
