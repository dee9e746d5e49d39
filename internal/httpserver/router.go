package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/victor-devv/todo-list/internal/middleware/auth"
	"github.com/victor-devv/todo-list/internal/tokens"
)

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	TodoHandler *TodoHTTP
	Tokens      *tokens.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAuthMiddleware(d.Tokens)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	users := api.Group("/users")
	users.Use(authMW.RequireAuth)
	users.GET("", d.UserHandler.ListUsers)
	users.GET("/:id", d.UserHandler.GetUser)

	todos := api.Group("/todos")
	todos.Use(authMW.RequireAuth)
	todos.GET("", d.TodoHandler.ListTodos)
	todos.GET("/search", d.TodoHandler.SearchTodos)
	todos.POST("", d.TodoHandler.CreateTodo)
	todos.GET("/:id", d.TodoHandler.GetTodo)
	todos.PUT("/:id", d.TodoHandler.UpdateTodo)
	todos.PATCH("/:id/complete", d.TodoHandler.CompleteTodo)
	todos.DELETE("/:id", d.TodoHandler.DeleteTodo)
}
