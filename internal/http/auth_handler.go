package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "pet-sitter.com/pet-sitter/internal/data_models"
	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
)

func (h *Handler) Register(c echo.Context) error {
	req, err := validators.Bind(c, validators.Register...)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := h.authService.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}

	token, _, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, dto.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(c echo.Context) error {
	req, err := validators.Bind(c, validators.Login...)
	if err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.AuthResponse{Token: token, User: user})
}

func (h *Handler) ChangePassword(c echo.Context) error {
	req, err := validators.Bind(c, validators.ChangePassword...)
	if err != nil {
		return err
	}

	token, err := h.authService.ChangePassword(c.Request().Context(), middleware.ActorID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.AuthResponse{Token: token})
}

func (h *Handler) Me(c echo.Context) error {
	user, err := h.userService.Me(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	req, err := validators.Bind(c, validators.UpdateProfile...)
	if err != nil {
		return err
	}

	user, err := h.userService.Rename(c.Request().Context(), middleware.ActorID(c), req.Name)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}
