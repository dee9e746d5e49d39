package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victor-devv/todo-list/internal/logging"
	"github.com/victor-devv/todo-list/internal/service"
	"github.com/victor-devv/todo-list/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		l.Warn("register_error", "status", 422)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": fieldErrs})
	}

	res, err := h.Svc.Register(ctx, &req)
	if err != nil {
		return mapError(l, "register_error", err)
	}

	l.Info("register_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, &req)
	if err != nil {
		return mapError(l, "login_error", err)
	}

	return c.JSON(http.StatusOK, res)
}
