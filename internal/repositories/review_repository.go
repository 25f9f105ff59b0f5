package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

// RatingAggregate is the mean and count of one rating column.
type RatingAggregate struct {
	Average float64
	Total   int
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return apperrors.ErrReviewExists
	}
	return err
}

func (r *ReviewRepository) FindByTaskID(ctx context.Context, taskID string) (*model.Review, error) {
	return r.findByTask(r.db.WithContext(ctx), taskID)
}

func (r *ReviewRepository) FindByTaskIDForUpdate(ctx context.Context, taskID string) (*model.Review, error) {
	return r.findByTask(forUpdate(r.db.WithContext(ctx)), taskID)
}

func (r *ReviewRepository) findByTask(db *gorm.DB, taskID string) (*model.Review, error) {
	var review model.Review
	err := db.First(&review, "task_id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForTask(ctx context.Context, taskID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// SitterAggregate averages the owner-authored ratings about a sitter.
func (r *ReviewRepository) SitterAggregate(ctx context.Context, sitterUserID string) (RatingAggregate, error) {
	return r.aggregate(ctx, "pet_owner_rating", "sitter_user_id", sitterUserID)
}

// OwnerAggregate averages the sitter-authored ratings about a pet owner.
func (r *ReviewRepository) OwnerAggregate(ctx context.Context, ownerUserID string) (RatingAggregate, error) {
	return r.aggregate(ctx, "sitter_rating", "pet_owner_user_id", ownerUserID)
}

func (r *ReviewRepository) aggregate(ctx context.Context, ratingColumn, userColumn, userID string) (RatingAggregate, error) {
	var row struct {
		Average sql.NullFloat64
		Total   int64
	}

	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("AVG("+ratingColumn+") AS average, COUNT("+ratingColumn+") AS total").
		Where(userColumn+" = ? AND "+ratingColumn+" IS NOT NULL", userID).
		Scan(&row).Error
	if err != nil {
		return RatingAggregate{}, err
	}

	return RatingAggregate{Average: row.Average.Float64, Total: int(row.Total)}, nil
}
