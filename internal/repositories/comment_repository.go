package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel returns up to limit top-level comments of a task whose id sorts
// after afterID.
func (r *CommentRepository) ListTopLevel(ctx context.Context, taskID, afterID string, limit int) ([]model.Comment, error) {
	query := r.db.WithContext(ctx).Where("task_id = ? AND parent_id IS NULL", taskID)
	return r.seek(query, afterID, limit)
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID, afterID string, limit int) ([]model.Comment, error) {
	query := r.db.WithContext(ctx).Where("parent_id = ?", parentID)
	return r.seek(query, afterID, limit)
}

func (r *CommentRepository) seek(query *gorm.DB, afterID string, limit int) ([]model.Comment, error) {
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}

	var comments []model.Comment
	err := query.Order("id asc").Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) UpdateContent(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content).Error
}

// DeleteWithReplies removes the comment and its direct replies, returning the
// number of rows deleted.
func (r *CommentRepository) DeleteWithReplies(ctx context.Context, id string) (int64, error) {
	replies := r.db.WithContext(ctx).Where("parent_id = ?", id).Delete(&model.Comment{})
	if replies.Error != nil {
		return 0, replies.Error
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, apperrors.ErrCommentNotFound
	}

	return replies.RowsAffected + res.RowsAffected, nil
}

func (r *CommentRepository) CountAll(ctx context.Context, taskID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}
