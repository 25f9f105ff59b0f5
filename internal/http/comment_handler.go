package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
)

func (h *Handler) CreateComment(c echo.Context) error {
	req, err := validators.Bind(c, validators.Comment...)
	if err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), middleware.ActorID(c), req.TaskID, req.ParentID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	req, err := validators.Bind(c, validators.CommentList...)
	if err != nil {
		return err
	}

	page, err := h.commentService.ListTaskComments(c.Request().Context(), req.TaskID, req.ContinueAfterID, req.PageSize)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (h *Handler) ListReplies(c echo.Context) error {
	req, err := validators.Bind(c, validators.CommentList...)
	if err != nil {
		return err
	}

	page, err := h.commentService.ListReplies(c.Request().Context(), req.CommentID, req.ContinueAfterID, req.PageSize)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (h *Handler) UpdateComment(c echo.Context) error {
	req, err := validators.Bind(c, validators.Comment...)
	if err != nil {
		return err
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), middleware.ActorID(c), req.CommentID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	deleted, err := h.commentService.DeleteComment(c.Request().Context(), middleware.ActorID(c), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"deleted": deleted})
}
