package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "pet-sitter.com/pet-sitter/internal/data_models"
	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
	"pet-sitter.com/pet-sitter/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	req, err := validators.Bind(c, validators.Task...)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.ActorID(c), taskInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("task_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	req, err := validators.Bind(c, validators.TaskList...)
	if err != nil {
		return err
	}

	page := repository.Page{Page: req.Page, Limit: req.Limit}
	tasks, total, err := h.taskService.ListOpenTasks(c.Request().Context(), req.ServiceType, page)
	if err != nil {
		return err
	}
	return respondPage(c, tasks, total, req.Page, req.Limit)
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	req, err := validators.Bind(c, validators.TaskList...)
	if err != nil {
		return err
	}

	page := repository.Page{Page: req.Page, Limit: req.Limit}
	tasks, total, err := h.taskService.ListOwnTasks(c.Request().Context(), middleware.ActorID(c), page)
	if err != nil {
		return err
	}
	return respondPage(c, tasks, total, req.Page, req.Limit)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	req, err := validators.Bind(c, validators.Task...)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), middleware.ActorID(c), req.TaskID, taskInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.ActorID(c), c.Param("task_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func taskInput(req *dto.TaskRequest) services.TaskInput {
	return services.TaskInput{
		PetID:       req.PetID,
		Title:       req.Title,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Price:       req.Price,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	}
}
