package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

const actorKey = "actor_id"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Auth requires a bearer token and stores the caller's user id on the
// context for handlers to read with ActorID.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperrors.ErrUnauthorized
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return apperrors.ErrInvalidToken
			}

			userID, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(actorKey, userID)
			return next(c)
		}
	}
}

// ActorID is the authenticated user id, or "" on public routes.
func ActorID(c echo.Context) string {
	id, _ := c.Get(actorKey).(string)
	return id
}
