package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type SitterRepository struct {
	db *gorm.DB
}

func NewSitterRepository(db *gorm.DB) *SitterRepository {
	return &SitterRepository{db: db}
}

func (r *SitterRepository) Create(ctx context.Context, sitter *model.Sitter) error {
	err := r.db.WithContext(ctx).Create(sitter).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return apperrors.ErrSitterExists
	}
	return err
}

func (r *SitterRepository) FindByUserID(ctx context.Context, userID string) (*model.Sitter, error) {
	var sitter model.Sitter
	err := r.db.WithContext(ctx).First(&sitter, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSitterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sitter, nil
}

func (r *SitterRepository) Update(ctx context.Context, sitter *model.Sitter) error {
	return r.db.WithContext(ctx).Model(&model.Sitter{}).
		Where("id = ?", sitter.ID).
		Updates(map[string]interface{}{
			"bio":           sitter.Bio,
			"service_types": sitter.ServiceTypes,
			"hourly_rate":   sitter.HourlyRate,
		}).Error
}

// UpdateRating writes the aggregate. A user without a sitter profile has
// nowhere to store it, which is not an error.
func (r *SitterRepository) UpdateRating(ctx context.Context, userID string, average float64, total int) error {
	return r.db.WithContext(ctx).Model(&model.Sitter{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  total,
		}).Error
}
