package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/transport"
)

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.Auth.Register(ctx, registerRequest("jdoe", "j@x.com"))
	require.NoError(t, err)
	require.NotNil(t, res.User)
	require.NotEmpty(t, res.Token)

	assert.NotZero(t, res.User.ID)
	assert.Equal(t, "jdoe", res.User.Username)
	assert.Equal(t, models.RoleUser, res.User.Role)

	// The token decodes to the freshly created user's id.
	subject, err := env.Tokens.SubjectID(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, subject)

	// Plaintext never stored.
	var stored models.User
	require.NoError(t, env.DB.First(&stored, res.User.ID).Error)
	assert.NotEqual(t, "longpass1", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	mustRegister(t, env, "jdoe", "j@x.com")

	_, err := env.Auth.Register(ctx, registerRequest("jdoe", "other@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Register_DuplicateEmail_NoSecondRow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	mustRegister(t, env, "jdoe", "j@x.com")

	_, err := env.Auth.Register(ctx, registerRequest("other", "j@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_Register_PasswordRules(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{name: "empty", password: ""},
		{name: "blank", password: "        "},
		{name: "too short", password: "short1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest("jdoe", "j@x.com")
			req.Password = tt.password

			_, err := env.Auth.Register(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPassword)

			// Failure is side-effect free.
			var count int64
			require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	reg := mustRegister(t, env, "jdoe", "j@x.com")

	res, err := env.Auth.Login(ctx, &transport.LoginRequest{Email: "j@x.com", Password: "longpass1"})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	require.NotEmpty(t, res.Token)

	// Different token value, same subject.
	assert.NotEqual(t, reg.Token, res.Token)
	subject, err := env.Tokens.SubjectID(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, subject)
	assert.Equal(t, reg.User.ID, res.User.ID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	mustRegister(t, env, "jdoe", "j@x.com")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@x.com", password: "longpass1"},
		{name: "wrong password", email: "j@x.com", password: "wrongpass"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := env.Auth.Login(ctx, &transport.LoginRequest{Email: tt.email, Password: tt.password})
			require.Error(t, err)
			assert.Nil(t, res)
			// Same failure either way, no field leak.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestUserService_FindByID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	reg := mustRegister(t, env, "jdoe", "j@x.com")

	user, err := env.Users.FindByID(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)

	_, err = env.Users.FindByID(ctx, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_List(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	mustRegister(t, env, "alice", "a@x.com")
	mustRegister(t, env, "bob", "b@x.com")
	mustRegister(t, env, "carol", "c@x.com")

	total, users, err := env.Users.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	total, users, err = env.Users.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 1)
}
