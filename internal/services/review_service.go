package services

import (
	"context"
	"time"

	"pet-sitter.com/pet-sitter/internal/cache"
	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type ReviewInput struct {
	Rating  float64
	Content string
}

// ReviewService writes review halves and keeps the rated party's average in
// step within the same transaction.
type ReviewService struct {
	store *repository.Store
	cache cache.Cache
	now   func() time.Time
}

func NewReviewService(store *repository.Store, c cache.Cache) *ReviewService {
	return &ReviewService{
		store: store,
		cache: c,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateReview opens the task's review with the actor's half. A task has at
// most one review; the other party fills in their half with UpdateReview.
func (s *ReviewService) CreateReview(ctx context.Context, actorID, taskID string, in ReviewInput) (*model.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	var review *model.Review
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, order, err := s.reviewable(ctx, tx, actorID, taskID)
		if err != nil {
			return err
		}

		exists, err := tx.Reviews.ExistsForTask(ctx, task.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrReviewExists
		}

		review = &model.Review{
			ID:             model.NewID(),
			TaskID:         task.ID,
			OrderID:        order.ID,
			PetOwnerUserID: order.PetOwnerUserID,
			SitterUserID:   order.SitterUserID,
		}
		s.applyHalf(review, actorID, in)

		if err := tx.Reviews.Create(ctx, review); err != nil {
			return err
		}

		task.ReviewID = &review.ID
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		return s.recompute(ctx, tx, review, actorID)
	})
	if err != nil {
		return nil, err
	}
	s.evictRatings(ctx, review)
	return review, nil
}

// UpdateReview writes the actor's half of an existing review, creating that
// half if the actor has not reviewed yet.
func (s *ReviewService) UpdateReview(ctx context.Context, actorID, taskID string, in ReviewInput) (*model.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	var review *model.Review
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, _, err := s.reviewable(ctx, tx, actorID, taskID)
		if err != nil {
			return err
		}

		review, err = tx.Reviews.FindByTaskIDForUpdate(ctx, task.ID)
		if err != nil {
			return err
		}

		s.applyHalf(review, actorID, in)
		if err := tx.Reviews.Save(ctx, review); err != nil {
			return err
		}

		return s.recompute(ctx, tx, review, actorID)
	})
	if err != nil {
		return nil, err
	}
	s.evictRatings(ctx, review)
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, taskID string) (*model.Review, error) {
	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.store.Reviews.FindByTaskID(ctx, taskID)
}

// reviewable checks the task is finished and the actor is one of its two
// parties.
func (s *ReviewService) reviewable(ctx context.Context, tx *repository.Store, actorID, taskID string) (*model.Task, *model.Order, error) {
	if actorID == "" {
		return nil, nil, apperrors.ErrForbidden
	}

	task, err := tx.Tasks.FindByIDForUpdate(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if task.Status != constants.TaskStatusCompleted || task.OrderID == nil {
		return nil, nil, apperrors.ErrReviewNotAllowed
	}

	order, err := tx.Orders.FindByID(ctx, *task.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if actorID != order.PetOwnerUserID && actorID != order.SitterUserID {
		return nil, nil, apperrors.ErrForbidden
	}

	return task, order, nil
}

func (s *ReviewService) applyHalf(review *model.Review, actorID string, in ReviewInput) {
	now := s.now()
	rating := in.Rating

	if actorID == review.PetOwnerUserID {
		if review.PetOwnerCreatedAt == nil {
			review.PetOwnerCreatedAt = &now
		}
		review.PetOwnerUpdatedAt = &now
		review.PetOwnerRating = &rating
		review.PetOwnerContent = in.Content
		return
	}

	if review.SitterCreatedAt == nil {
		review.SitterCreatedAt = &now
	}
	review.SitterUpdatedAt = &now
	review.SitterRating = &rating
	review.SitterContent = in.Content
}

// recompute refreshes the aggregate of whoever the actor just rated.
func (s *ReviewService) recompute(ctx context.Context, tx *repository.Store, review *model.Review, actorID string) error {
	if actorID == review.PetOwnerUserID {
		return recomputeSitterRating(ctx, tx, review.SitterUserID)
	}
	return recomputeOwnerRating(ctx, tx, review.PetOwnerUserID)
}

func recomputeSitterRating(ctx context.Context, tx *repository.Store, sitterUserID string) error {
	agg, err := tx.Reviews.SitterAggregate(ctx, sitterUserID)
	if err != nil {
		return err
	}
	return tx.Sitters.UpdateRating(ctx, sitterUserID, agg.Average, agg.Total)
}

func recomputeOwnerRating(ctx context.Context, tx *repository.Store, ownerUserID string) error {
	agg, err := tx.Reviews.OwnerAggregate(ctx, ownerUserID)
	if err != nil {
		return err
	}
	return tx.Users.UpdateRating(ctx, ownerUserID, agg.Average, agg.Total)
}

func (s *ReviewService) evictRatings(ctx context.Context, review *model.Review) {
	evict(ctx, s.cache,
		sitterProfileKeyP+review.SitterUserID,
		userProfileKeyP+review.PetOwnerUserID,
	)
}

func validateRating(r float64) error {
	if r < 1 || r > 5 {
		return apperrors.ErrInvalidRating
	}
	return nil
}
