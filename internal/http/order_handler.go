package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

type orderAction func(ctx context.Context, ownerID, orderID, taskID string) (*model.Order, error)

func (h *Handler) CreateOrder(c echo.Context) error {
	req, err := validators.Bind(c, validators.CreateOrder...)
	if err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), middleware.ActorID(c), req.TaskID, req.Note)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, order)
}

func (h *Handler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), middleware.ActorID(c), c.Param("order_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order)
}

func (h *Handler) RefuseSitter(c echo.Context) error {
	return h.runOrderAction(c, h.orderService.RefuseSitter)
}

func (h *Handler) AcceptSitter(c echo.Context) error {
	return h.runOrderAction(c, h.orderService.AcceptSitter)
}

func (h *Handler) MarkPaid(c echo.Context) error {
	return h.runOrderAction(c, h.orderService.MarkPaid)
}

func (h *Handler) CompleteOrder(c echo.Context) error {
	return h.runOrderAction(c, h.orderService.CompleteOrder)
}

func (h *Handler) CancelOrder(c echo.Context) error {
	return h.runOrderAction(c, h.orderService.CancelOrder)
}

// runOrderAction binds {task_id} plus the :order_id param and applies one
// owner-side transition.
func (h *Handler) runOrderAction(c echo.Context, action orderAction) error {
	req, err := validators.Bind(c, validators.OrderAction...)
	if err != nil {
		return err
	}

	order, err := action(c.Request().Context(), middleware.ActorID(c), req.OrderID, req.TaskID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order)
}

func (h *Handler) SubmitReport(c echo.Context) error {
	req, err := validators.Bind(c, validators.Report...)
	if err != nil {
		return err
	}

	order, err := h.orderService.SubmitReport(c.Request().Context(), middleware.ActorID(c), req.OrderID, req.Content, req.Images)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order)
}

func (h *Handler) ListPetOwnerOrders(c echo.Context) error {
	req, err := validators.Bind(c, validators.OrderList...)
	if err != nil {
		return err
	}

	page := repository.Page{Page: req.Page, Limit: req.Limit}
	orders, total, err := h.orderService.ListForPetOwner(c.Request().Context(), middleware.ActorID(c), req.Status, page)
	if err != nil {
		return err
	}
	return respondPage(c, orders, total, req.Page, req.Limit)
}

func (h *Handler) ListSitterOrders(c echo.Context) error {
	req, err := validators.Bind(c, validators.OrderList...)
	if err != nil {
		return err
	}

	page := repository.Page{Page: req.Page, Limit: req.Limit}
	orders, total, err := h.orderService.ListForSitter(c.Request().Context(), middleware.ActorID(c), req.Status, page)
	if err != nil {
		return err
	}
	return respondPage(c, orders, total, req.Page, req.Limit)
}

func (h *Handler) ListTaskOrders(c echo.Context) error {
	req, err := validators.Bind(c, validators.OrderList...)
	if err != nil {
		return err
	}

	page := repository.Page{Page: req.Page, Limit: req.Limit}
	orders, total, err := h.orderService.ListForTask(c.Request().Context(), middleware.ActorID(c), req.TaskID, req.Status, page)
	if err != nil {
		return err
	}
	return respondPage(c, orders, total, req.Page, req.Limit)
}
