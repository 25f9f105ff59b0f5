package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
)

func (h *Handler) Checkout(c echo.Context) error {
	req, err := validators.Bind(c, validators.Checkout...)
	if err != nil {
		return err
	}

	result, err := h.paymentService.Checkout(c.Request().Context(), middleware.ActorID(c), req.OrderID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, result)
}

// CompletePayment is the checkout success redirect target.
func (h *Handler) CompletePayment(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return apperrors.ErrPaymentSessionRequired
	}

	order, err := h.paymentService.Complete(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order)
}
