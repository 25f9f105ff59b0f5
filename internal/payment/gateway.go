// Package payment talks to the card payment provider.
package payment

import "context"

type CheckoutRequest struct {
	OrderID        string
	TaskID         string
	PetOwnerUserID string
	Title          string
	Amount         int64
	Currency       string
	SuccessURL     string
	CancelURL      string
}

type Session struct {
	ID       string
	URL      string
	Paid     bool
	Metadata map[string]string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

const (
	MetadataOrderID = "order_id"
	MetadataTaskID  = "task_id"
	MetadataUserID  = "user_id"
)
