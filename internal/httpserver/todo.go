package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/victor-devv/todo-list/internal/logging"
	"github.com/victor-devv/todo-list/internal/service"
	"github.com/victor-devv/todo-list/internal/transport"
	"github.com/victor-devv/todo-list/internal/util"
)

type TodoHTTP struct {
	Svc *service.TodoService
}

func (h *TodoHTTP) todoID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}

func (h *TodoHTTP) ListTodos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.list")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	order := util.ParseSort(c.QueryParam("sort"), "id ASC")

	total, todos, err := h.Svc.List(ctx, userID, offset, limit, order)
	if err != nil {
		return mapError(l, "list_todos_error", err)
	}

	return c.JSON(http.StatusOK, pageEnvelope(todos, page, limit, offset, total))
}

func (h *TodoHTTP) SearchTodos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.search")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, todos, err := h.Svc.Search(ctx, userID, q, from, limit)
	if err != nil {
		return mapError(l, "search_todos_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "todos": todos})
}

func (h *TodoHTTP) CreateTodo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.create")

	email, err := callerEmail(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.TodoRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_todo_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fieldErrs := req.Validate(true); len(fieldErrs) > 0 {
		l.Warn("create_todo_error", "status", 422)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": fieldErrs})
	}

	todo, err := h.Svc.Create(ctx, email, &req)
	if err != nil {
		return mapError(l, "create_todo_error", err)
	}

	return c.JSON(http.StatusCreated, todo)
}

func (h *TodoHTTP) GetTodo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.get")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := h.todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.Svc.Get(ctx, id, userID)
	if err != nil {
		return mapError(l, "get_todo_error", err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHTTP) UpdateTodo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.update")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := h.todoID(c)
	if err != nil {
		return err
	}

	var req transport.TodoRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_todo_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fieldErrs := req.Validate(false); len(fieldErrs) > 0 {
		l.Warn("update_todo_error", "status", 422)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": fieldErrs})
	}

	todo, err := h.Svc.Update(ctx, id, userID, &req)
	if err != nil {
		return mapError(l, "update_todo_error", err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHTTP) CompleteTodo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.complete")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := h.todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.Svc.Complete(ctx, id, userID)
	if err != nil {
		return mapError(l, "complete_todo_error", err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHTTP) DeleteTodo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "todo.delete")

	userID, err := callerID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := h.todoID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id, userID); err != nil {
		return mapError(l, "delete_todo_error", err)
	}

	return c.NoContent(http.StatusNoContent)
}
