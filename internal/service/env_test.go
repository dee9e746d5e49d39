package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/repo"
	"github.com/victor-devv/todo-list/internal/tokens"
	"github.com/victor-devv/todo-list/internal/transport"
)

type testEnv struct {
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Tokens *tokens.Service
	Auth   *AuthService
	Users  *UserService
	Todos  *TodoService
}

// newTestEnv builds a fresh in-memory database per test. Kafka and
// Elasticsearch stay nil, both collaborators are optional.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	rp := &repo.GormRepo{DB: db}
	tk := tokens.NewService([]byte("test-jwt-secret"), 24*time.Hour)

	return &testEnv{
		DB:     db,
		Repo:   rp,
		Tokens: tk,
		Auth:   &AuthService{Repo: rp, Tokens: tk},
		Users:  &UserService{Repo: rp},
		Todos:  &TodoService{Repo: rp},
	}
}

func registerRequest(username, email string) *transport.RegisterRequest {
	return &transport.RegisterRequest{
		Username:  username,
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "longpass1",
	}
}

func mustRegister(t *testing.T, env *testEnv, username, email string) *transport.AuthResponse {
	t.Helper()

	res, err := env.Auth.Register(context.Background(), registerRequest(username, email))
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }
