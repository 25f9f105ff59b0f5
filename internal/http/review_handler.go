package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
	"pet-sitter.com/pet-sitter/internal/services"
)

func (h *Handler) CreateReview(c echo.Context) error {
	req, err := validators.Bind(c, validators.Review...)
	if err != nil {
		return err
	}

	review, err := h.reviewService.CreateReview(c.Request().Context(), middleware.ActorID(c), req.TaskID, services.ReviewInput{
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, review)
}

func (h *Handler) UpdateReview(c echo.Context) error {
	req, err := validators.Bind(c, validators.Review...)
	if err != nil {
		return err
	}

	review, err := h.reviewService.UpdateReview(c.Request().Context(), middleware.ActorID(c), req.TaskID, services.ReviewInput{
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

func (h *Handler) GetReview(c echo.Context) error {
	review, err := h.reviewService.GetReview(c.Request().Context(), c.Param("task_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}
