package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

const panicStackKey = "panic_stack"

// ErrorHandler renders every error as {"status": false, "message": ...}.
// Outside production, server errors also carry their detail and any
// recovered panic stack.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := apperrors.StatusCode(err)
		message := apperrors.Message(err)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		body := echo.Map{
			"status":  false,
			"message": message,
		}

		if code >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "unhandled error",
				"method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
			if !production {
				body["detail"] = err.Error()
				if stack, ok := c.Get(panicStackKey).(string); ok {
					body["stack"] = stack
				}
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			slog.Error("failed to write error response", "error", writeErr)
		}
	}
}

// Recover turns panics into 500 responses, keeping the stack for the error
// handler.
func Recover() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			c.Set(panicStackKey, string(stack))
			return err
		},
	})
}
