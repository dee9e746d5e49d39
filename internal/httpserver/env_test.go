package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/repo"
	"github.com/victor-devv/todo-list/internal/service"
	"github.com/victor-devv/todo-list/internal/tokens"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *tokens.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	tk := tokens.NewService([]byte("test-jwt-secret"), 24*time.Hour)
	rp := &repo.GormRepo{DB: db}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{Repo: rp, Tokens: tk}},
		UserHandler: &UserHTTP{Svc: &service.UserService{Repo: rp}},
		TodoHandler: &TodoHTTP{Svc: &service.TodoService{Repo: rp}},
		Tokens:      tk,
	})

	return &testEnv{T: t, E: e, DB: db, Tokens: tk}
}

// doJSON drives the full router, middleware included.
func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// doWithAuthHeader sends a bodyless request with a raw Authorization header.
func (env *testEnv) doWithAuthHeader(method, path, header string) *httptest.ResponseRecorder {
	env.T.Helper()

	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func registerBody(username, email string) map[string]string {
	return map[string]string{
		"username":   username,
		"first_name": "John",
		"last_name":  "Doe",
		"email":      email,
		"password":   "longpass1",
	}
}

// register runs the registration endpoint and returns the new user id and
// bearer token.
func (env *testEnv) register(username, email string) (uint, string) {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", registerBody(username, email), "")
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.User.ID, resp.Token
}

func (env *testEnv) createTodo(token, title string) models.Todo {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/todos", map[string]string{"title": title}, token)
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var todo models.Todo
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &todo))
	return todo
}
