package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victor-devv/todo-list/internal/service"
)

// callerID reads the identity the auth middleware installed.
func callerID(c echo.Context) (uint, error) {
	v, ok := c.Get("user_id").(uint)
	if !ok || v == 0 {
		return 0, errors.New("unauthorized")
	}
	return v, nil
}

func callerEmail(c echo.Context) (string, error) {
	v, ok := c.Get("email").(string)
	if !ok || v == "" {
		return "", errors.New("unauthorized")
	}
	return v, nil
}

// mapError translates the service failure taxonomy to transport codes.
// Unknown errors become an opaque 500, lower-layer text never leaks out.
func mapError(l *slog.Logger, op string, err error) error {
	var status int
	var msg string

	switch {
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidPassword):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	default:
		status, msg = http.StatusInternalServerError, "internal server error"
	}

	if status >= 500 {
		l.Error(op, "status", status, "error", err)
	} else {
		l.Warn(op, "status", status, "error", err)
	}
	return echo.NewHTTPError(status, msg)
}
