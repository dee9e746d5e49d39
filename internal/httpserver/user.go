package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/victor-devv/todo-list/internal/logging"
	"github.com/victor-devv/todo-list/internal/service"
	"github.com/victor-devv/todo-list/internal/util"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.Svc.FindByID(ctx, uint(id))
	if err != nil {
		return mapError(l, "get_user_error", err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, users, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		return mapError(l, "list_users_error", err)
	}

	return c.JSON(http.StatusOK, pageEnvelope(users, page, limit, offset, total))
}

func pageEnvelope(data any, page, limit, offset int, total int64) echo.Map {
	return echo.Map{
		"data": data,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	}
}
