package services

import (
	"context"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type PetInput struct {
	Name     string
	Species  string
	Breed    string
	Age      int
	Notes    string
	ImageURL string
}

type PetService struct {
	store *repository.Store
}

func NewPetService(store *repository.Store) *PetService {
	return &PetService{store: store}
}

func (s *PetService) Create(ctx context.Context, ownerID string, in PetInput) (*model.Pet, error) {
	if ownerID == "" {
		return nil, apperrors.ErrForbidden
	}

	pet := &model.Pet{
		ID:          model.NewID(),
		OwnerUserID: ownerID,
	}
	apply(pet, in)

	if err := s.store.Pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) List(ctx context.Context, ownerID string) ([]model.Pet, error) {
	return s.store.Pets.ListByOwner(ctx, ownerID)
}

func (s *PetService) Get(ctx context.Context, ownerID, petID string) (*model.Pet, error) {
	return s.owned(ctx, ownerID, petID)
}

func (s *PetService) Update(ctx context.Context, ownerID, petID string, in PetInput) (*model.Pet, error) {
	pet, err := s.owned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	apply(pet, in)
	if err := s.store.Pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) Delete(ctx context.Context, ownerID, petID string) error {
	if _, err := s.owned(ctx, ownerID, petID); err != nil {
		return err
	}
	return s.store.Pets.Delete(ctx, petID)
}

func (s *PetService) owned(ctx context.Context, ownerID, petID string) (*model.Pet, error) {
	pet, err := s.store.Pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if ownerID == "" || pet.OwnerUserID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return pet, nil
}

func apply(pet *model.Pet, in PetInput) {
	pet.Name = in.Name
	pet.Species = in.Species
	pet.Breed = in.Breed
	pet.Age = in.Age
	pet.Notes = in.Notes
	pet.ImageURL = in.ImageURL
}
