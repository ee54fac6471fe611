package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"djstore/internal/api/services"
	"djstore/internal/store"
)

func ErrUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func ErrNotFound(c echo.Context, message string) error {
	if message == "" {
		message = "not found"
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func ErrBadRequest(c echo.Context, message string) error {
	if message == "" {
		message = "invalid request"
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func ErrConflict(c echo.Context, message string) error {
	if message == "" {
		message = "conflict"
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": message})
}

func ErrInternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// RespondError translates service and store failures into HTTP responses.
// Constraint violations stay a plain 500 unless a more specific mapping
// applied upstream; unbacked operations become 503.
func RespondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return ErrNotFound(c, "")
	case errors.Is(err, services.ErrAlreadyExists):
		return ErrConflict(c, "already exists")
	case errors.Is(err, services.ErrOutOfStock):
		return ErrConflict(c, "not enough stock")
	case errors.Is(err, services.ErrInvalidCredentials):
		return ErrUnauthorized(c)
	case errors.Is(err, store.ErrNotImplemented):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "not implemented"})
	default:
		return ErrInternalServerError(c)
	}
}

func SuccessResponse(c echo.Context, message string) error {
	if message == "" {
		message = "ok"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
