package services

import (
	"context"
	"strings"

	"pet-sitter.com/pet-sitter/internal/cache"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type UserService struct {
	store *repository.Store
	cache cache.Cache
}

func NewUserService(store *repository.Store, c cache.Cache) *UserService {
	return &UserService{store: store, cache: c}
}

func (s *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return cachedJSON(ctx, s.cache, userProfileKeyP+userID, func() (*model.User, error) {
		return s.store.Users.FindByID(ctx, userID)
	})
}

func (s *UserService) Rename(ctx context.Context, userID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	if err := s.store.Users.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	evict(ctx, s.cache, userProfileKeyP+userID)
	return s.store.Users.FindByID(ctx, userID)
}
