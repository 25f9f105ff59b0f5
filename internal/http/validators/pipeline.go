package validators

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

// Stage inspects or normalises a bound request. The first failing stage
// stops the pipeline.
type Stage[T any] func(*T) error

// Bind decodes the request into T and runs the stages in order.
func Bind[T any](c echo.Context, stages ...Stage[T]) (*T, error) {
	var req T
	if err := c.Bind(&req); err != nil {
		return nil, apperrors.ErrInvalidJSON
	}

	for _, stage := range stages {
		if err := stage(&req); err != nil {
			return nil, err
		}
	}

	return &req, nil
}

// Required fails when the field is blank.
func Required[T any](name string, field func(*T) string) Stage[T] {
	return func(r *T) error {
		if strings.TrimSpace(field(r)) == "" {
			return apperrors.BadRequest(name + " is required")
		}
		return nil
	}
}

func MaxLength[T any](name string, max int, field func(*T) string) Stage[T] {
	return func(r *T) error {
		if len(field(r)) > max {
			return apperrors.BadRequest(name + " is too long")
		}
		return nil
	}
}
