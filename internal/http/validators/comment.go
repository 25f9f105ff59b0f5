package validators

import (
	dto "pet-sitter.com/pet-sitter/internal/data_models"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

var Comment = []Stage[dto.CommentRequest]{
	Required("content", func(r *dto.CommentRequest) string { return r.Content }),
	MaxLength("content", 2000, func(r *dto.CommentRequest) string { return r.Content }),
}

var CommentList = []Stage[dto.CommentListQuery]{
	func(r *dto.CommentListQuery) error {
		if r.PageSize < 0 || r.PageSize > 100 {
			return apperrors.ErrInvalidPageSize
		}
		return nil
	},
}

var Review = []Stage[dto.ReviewRequest]{
	func(r *dto.ReviewRequest) error {
		if r.Rating < 1 || r.Rating > 5 {
			return apperrors.ErrInvalidRating
		}
		return nil
	},
	MaxLength("content", 2000, func(r *dto.ReviewRequest) string { return r.Content }),
}
