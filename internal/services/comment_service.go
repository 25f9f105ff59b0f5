package services

import (
	"context"
	"strings"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

const (
	DefaultCommentPageSize = 10
	MaxCommentPageSize     = 100
)

// CommentPage is one page of a keyset listing. ContinueAfterID is the cursor
// for the next page.
type CommentPage struct {
	Comments               []model.Comment `json:"comments"`
	EndOfPaginationReached bool            `json:"endOfPaginationReached"`
	ContinueAfterID        string          `json:"continueAfterId,omitempty"`
}

type CommentService struct {
	store *repository.Store
}

func NewCommentService(store *repository.Store) *CommentService {
	return &CommentService{store: store}
}

// CreateComment posts on a task. With a parentID it is a reply; replies to
// replies are rejected so threads stay one level deep.
func (s *CommentService) CreateComment(ctx context.Context, actorID, taskID string, parentID *string, content string) (*model.Comment, error) {
	if actorID == "" {
		return nil, apperrors.ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrCommentContentRequired
	}

	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.store.Comments.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.TaskID != taskID {
			return nil, apperrors.ErrCommentNotFound
		}
		if parent.ParentID != nil {
			return nil, apperrors.ErrNestedReply
		}
	}

	comment := &model.Comment{
		ID:       model.NewID(),
		TaskID:   taskID,
		UserID:   actorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.store.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListTaskComments(ctx context.Context, taskID, afterID string, pageSize int) (*CommentPage, error) {
	if _, err := s.store.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.page(pageSize, func(limit int) ([]model.Comment, error) {
		return s.store.Comments.ListTopLevel(ctx, taskID, afterID, limit)
	})
}

func (s *CommentService) ListReplies(ctx context.Context, commentID, afterID string, pageSize int) (*CommentPage, error) {
	if _, err := s.store.Comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.page(pageSize, func(limit int) ([]model.Comment, error) {
		return s.store.Comments.ListReplies(ctx, commentID, afterID, limit)
	})
}

// page asks for one row more than the page holds; its presence is what
// tells us another page exists.
func (s *CommentService) page(pageSize int, fetch func(limit int) ([]model.Comment, error)) (*CommentPage, error) {
	if pageSize == 0 {
		pageSize = DefaultCommentPageSize
	}
	if pageSize < 1 || pageSize > MaxCommentPageSize {
		return nil, apperrors.ErrInvalidPageSize
	}

	comments, err := fetch(pageSize + 1)
	if err != nil {
		return nil, err
	}

	page := &CommentPage{EndOfPaginationReached: len(comments) <= pageSize}
	if !page.EndOfPaginationReached {
		comments = comments[:pageSize]
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	page.Comments = comments
	if len(comments) > 0 {
		page.ContinueAfterID = comments[len(comments)-1].ID
	}

	return page, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrCommentContentRequired
	}

	comment, err := s.owned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.store.Comments.UpdateContent(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment together with its replies and reports
// how many rows went.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) (int64, error) {
	var deleted int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		comment, err := tx.Comments.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if actorID == "" || comment.UserID != actorID {
			return apperrors.ErrForbidden
		}

		deleted, err = tx.Comments.DeleteWithReplies(ctx, comment.ID)
		return err
	})
	return deleted, err
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID string) (*model.Comment, error) {
	comment, err := s.store.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if actorID == "" || comment.UserID != actorID {
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}
