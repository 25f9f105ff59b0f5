package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type OrderRepository struct {
	db *gorm.DB
}

type OrderFilter struct {
	PetOwnerUserID string
	SitterUserID   string
	TaskID         string
	Status         constants.OrderStatus
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("Task").Create(order).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Order, error) {
	return r.find(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *OrderRepository) find(db *gorm.DB, id string) (*model.Order, error) {
	var order model.Order
	err := db.First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// HasLiveOrder reports whether sitterID already holds a live order on taskID.
func (r *OrderRepository) HasLiveOrder(ctx context.Context, taskID, sitterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("task_id = ? AND sitter_user_id = ? AND status NOT IN ?", taskID, sitterID, constants.DeadOrderStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepository) CountByStatus(ctx context.Context, taskID string, status constants.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("task_id = ? AND status = ?", taskID, status).
		Count(&count).Error
	return count, err
}

// Transition moves an order from one status to another. It fails with
// ErrOptimisticLock when the stored status is no longer from.
func (r *OrderRepository) Transition(ctx context.Context, id string, from, to constants.OrderStatus, extra map[string]interface{}) error {
	fields := map[string]interface{}{"status": to, "updated_at": time.Now().UTC()}
	for k, v := range extra {
		fields[k] = v
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// InvalidatePending marks every other pending order on the task INVALID and
// returns how many were touched.
func (r *OrderRepository) InvalidatePending(ctx context.Context, taskID, exceptID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, exceptID, constants.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     constants.OrderStatusInvalid,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *OrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, "payment_session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter OrderFilter, page Page) ([]model.Order, int64, error) {
	if page.Limit <= 0 {
		return nil, 0, apperrors.ErrInvalidLimit
	}

	query := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.PetOwnerUserID != "" {
		query = query.Where("pet_owner_user_id = ?", filter.PetOwnerUserID)
	}
	if filter.SitterUserID != "" {
		query = query.Where("sitter_user_id = ?", filter.SitterUserID)
	}
	if filter.TaskID != "" {
		query = query.Where("task_id = ?", filter.TaskID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.Preload("Task").
		Order("created_at desc").
		Offset(page.offset()).Limit(page.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
