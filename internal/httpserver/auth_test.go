package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-devv/todo-list/internal/models"
)

func TestRegister_CreatedWithToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	userID, token := env.register("jdoe", "j@x.com")

	subject, err := env.Tokens.SubjectID(token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestRegister_PasswordHashNeverSerialized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", registerBody("jdoe", "j@x.com"), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	user, ok := raw["user"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "password")
}

func TestRegister_DuplicateConflicts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register("jdoe", "j@x.com")

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", registerBody("jdoe", "other@x.com"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/auth/register", registerBody("other", "j@x.com"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{
			name:  "missing username",
			body:  map[string]string{"email": "j@x.com", "first_name": "J", "last_name": "D", "password": "longpass1"},
			field: "username",
		},
		{
			name:  "invalid email",
			body:  map[string]string{"username": "jdoe", "email": "not-an-email", "first_name": "J", "last_name": "D", "password": "longpass1"},
			field: "email",
		},
		{
			name:  "missing password",
			body:  map[string]string{"username": "jdoe", "email": "j@x.com", "first_name": "J", "last_name": "D"},
			field: "password",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", tt.body, "")
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp struct {
				Errors map[string]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Errors, tt.field)
		})
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := registerBody("jdoe", "j@x.com")
	body["password"] = "short1"
	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin_SuccessReturnsUserAndFreshToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID, regToken := env.register("jdoe", "j@x.com")

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "j@x.com",
		"password": "longpass1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.User.ID)
	assert.NotEqual(t, regToken, resp.Token)

	subject, err := env.Tokens.SubjectID(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestLogin_Unauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register("jdoe", "j@x.com")

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "unknown email", body: map[string]string{"email": "nobody@x.com", "password": "longpass1"}},
		{name: "wrong password", body: map[string]string{"email": "j@x.com", "password": "wrongpass"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Identical body either way.
			assert.Contains(t, rec.Body.String(), "invalid email or password")
		})
	}
}
