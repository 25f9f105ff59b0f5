package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *PetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrPetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at asc").
		Find(&pets).Error
	return pets, err
}

func (r *PetRepository) Update(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Model(&model.Pet{}).
		Where("id = ?", pet.ID).
		Updates(map[string]interface{}{
			"name":      pet.Name,
			"species":   pet.Species,
			"breed":     pet.Breed,
			"age":       pet.Age,
			"notes":     pet.Notes,
			"image_url": pet.ImageURL,
		}).Error
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Pet{}, "id = ?", id).Error
}
