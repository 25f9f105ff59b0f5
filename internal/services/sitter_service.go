package services

import (
	"context"

	"pet-sitter.com/pet-sitter/internal/cache"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type SitterProfile struct {
	Bio          string
	ServiceTypes string
	HourlyRate   int64
}

type SitterService struct {
	store *repository.Store
	cache cache.Cache
}

func NewSitterService(store *repository.Store, c cache.Cache) *SitterService {
	return &SitterService{store: store, cache: c}
}

func (s *SitterService) CreateProfile(ctx context.Context, userID string, in SitterProfile) (*model.Sitter, error) {
	if userID == "" {
		return nil, apperrors.ErrForbidden
	}

	var sitter *model.Sitter
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByID(ctx, userID); err != nil {
			return err
		}

		sitter = &model.Sitter{
			ID:           model.NewID(),
			UserID:       userID,
			Bio:          in.Bio,
			ServiceTypes: in.ServiceTypes,
			HourlyRate:   in.HourlyRate,
		}
		if err := tx.Sitters.Create(ctx, sitter); err != nil {
			return err
		}

		// Reviews can predate the profile; pick up anything already written.
		agg, err := tx.Reviews.SitterAggregate(ctx, userID)
		if err != nil {
			return err
		}
		sitter.AverageRating, sitter.TotalReviews = agg.Average, agg.Total
		return tx.Sitters.UpdateRating(ctx, userID, agg.Average, agg.Total)
	})
	if err != nil {
		return nil, err
	}
	evict(ctx, s.cache, sitterProfileKeyP+userID)
	return sitter, nil
}

// GetProfile serves the public profile, including its rating, from the L1
// cache when possible. Review writes evict the entry.
func (s *SitterService) GetProfile(ctx context.Context, userID string) (*model.Sitter, error) {
	return cachedJSON(ctx, s.cache, sitterProfileKeyP+userID, func() (*model.Sitter, error) {
		return s.store.Sitters.FindByUserID(ctx, userID)
	})
}

func (s *SitterService) UpdateProfile(ctx context.Context, userID string, in SitterProfile) (*model.Sitter, error) {
	sitter, err := s.store.Sitters.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sitter.Bio = in.Bio
	sitter.ServiceTypes = in.ServiceTypes
	sitter.HourlyRate = in.HourlyRate
	if err := s.store.Sitters.Update(ctx, sitter); err != nil {
		return nil, err
	}
	evict(ctx, s.cache, sitterProfileKeyP+userID)
	return sitter, nil
}
