package services

import (
	"context"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	"pet-sitter.com/pet-sitter/internal/payment"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type PaymentSettings struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PaymentService bridges the checkout provider and the order state machine.
type PaymentService struct {
	store    *repository.Store
	gateway  payment.Gateway
	orders   *OrderService
	settings PaymentSettings
}

func NewPaymentService(store *repository.Store, gateway payment.Gateway, orders *OrderService, settings PaymentSettings) *PaymentService {
	return &PaymentService{
		store:    store,
		gateway:  gateway,
		orders:   orders,
		settings: settings,
	}
}

// Checkout opens a payment session for an accepted order.
func (s *PaymentService) Checkout(ctx context.Context, ownerID, orderID string) (*CheckoutResult, error) {
	order, task, err := s.payable(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:        order.ID,
		TaskID:         task.ID,
		PetOwnerUserID: order.PetOwnerUserID,
		Title:          task.Title,
		Amount:         task.Price,
		Currency:       s.settings.Currency,
		SuccessURL:     s.settings.SuccessURL,
		CancelURL:      s.settings.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Orders.UpdateFields(ctx, order.ID, map[string]interface{}{
		"payment_session_id": session.ID,
	}); err != nil {
		return nil, err
	}

	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// Complete confirms a paid session and moves its order to TRACKING.
func (s *PaymentService) Complete(ctx context.Context, sessionID string) (*model.Order, error) {
	if sessionID == "" {
		return nil, apperrors.ErrPaymentSessionRequired
	}

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid {
		return nil, apperrors.ErrPaymentIncomplete
	}

	order, err := s.store.Orders.FindBySessionID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if order.ID != session.Metadata[payment.MetadataOrderID] {
		return nil, apperrors.ErrOrderNotFound
	}

	// The provider may redirect more than once for the same session.
	if order.Status == constants.OrderStatusTracking || order.Status == constants.OrderStatusCompleted {
		return order, nil
	}

	return s.orders.MarkPaid(ctx, order.PetOwnerUserID, order.ID, order.TaskID)
}

func (s *PaymentService) payable(ctx context.Context, ownerID, orderID string) (*model.Order, *model.Task, error) {
	if ownerID == "" {
		return nil, nil, apperrors.ErrForbidden
	}

	order, err := s.store.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.PetOwnerUserID != ownerID {
		return nil, nil, apperrors.ErrForbidden
	}

	task, err := s.store.Tasks.FindByID(ctx, order.TaskID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != constants.OrderStatusValid || !linked(task, order) {
		return nil, nil, apperrors.ErrInvalidTransition
	}

	return order, task, nil
}
