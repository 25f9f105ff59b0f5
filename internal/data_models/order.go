package dto

import "pet-sitter.com/pet-sitter/internal/constants"

type CreateOrderRequest struct {
	TaskID string `json:"task_id"`
	Note   string `json:"note"`
}

// OrderActionRequest is the body of every owner-side transition.
type OrderActionRequest struct {
	OrderID string `param:"order_id"`
	TaskID  string `json:"task_id"`
}

type ReportRequest struct {
	OrderID string   `param:"order_id"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

type OrderListQuery struct {
	TaskID string                `param:"task_id"`
	Limit  int                   `query:"limit"`
	Page   int                   `query:"page"`
	Status constants.OrderStatus `query:"status"`
}

type CheckoutRequest struct {
	OrderID string `json:"order_id"`
}

// PageResponse wraps offset-paginated lists.
type PageResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
