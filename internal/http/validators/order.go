package validators

import (
	dto "pet-sitter.com/pet-sitter/internal/data_models"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

var CreateOrder = []Stage[dto.CreateOrderRequest]{
	func(r *dto.CreateOrderRequest) error {
		if r.TaskID == "" {
			return apperrors.ErrTaskIDRequired
		}
		return nil
	},
	MaxLength("note", 1000, func(r *dto.CreateOrderRequest) string { return r.Note }),
}

var OrderAction = []Stage[dto.OrderActionRequest]{
	func(r *dto.OrderActionRequest) error {
		if r.TaskID == "" {
			return apperrors.ErrTaskIDRequired
		}
		return nil
	},
}

var Report = []Stage[dto.ReportRequest]{
	Required("content", func(r *dto.ReportRequest) string { return r.Content }),
	func(r *dto.ReportRequest) error {
		if len(r.Images) > 10 {
			return apperrors.BadRequest("at most 10 images per report")
		}
		return nil
	},
}

var OrderList = []Stage[dto.OrderListQuery]{
	func(r *dto.OrderListQuery) error {
		if r.Status != "" && !r.Status.Valid() {
			return apperrors.BadRequest("status is invalid")
		}
		return normalizePage(&r.Page, &r.Limit)
	},
}

var Checkout = []Stage[dto.CheckoutRequest]{
	Required("order_id", func(r *dto.CheckoutRequest) string { return r.OrderID }),
}

func normalizePage(page, limit *int) error {
	if *page == 0 {
		*page = 1
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *page < 0 {
		return apperrors.ErrInvalidPage
	}
	if *limit < 0 || *limit > maxLimit {
		return apperrors.ErrInvalidLimit
	}
	return nil
}
