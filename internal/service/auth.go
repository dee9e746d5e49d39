package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/victor-devv/todo-list/internal/events"
	"github.com/victor-devv/todo-list/internal/hash"
	"github.com/victor-devv/todo-list/internal/logging"
	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/repo"
	"github.com/victor-devv/todo-list/internal/tokens"
	"github.com/victor-devv/todo-list/internal/transport"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *tokens.Service
	Producer *events.Producer
}

// Register creates a user and issues their first token. Uniqueness checks
// run before any write, so every failure path leaves the store untouched.
func (s *AuthService) Register(ctx context.Context, req *transport.RegisterRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, req.Username)
	}

	taken, err = s.Repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, req.Email)
	}

	if strings.TrimSpace(req.Password) == "" || len(req.Password) < 8 {
		return nil, ErrInvalidPassword
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	l.Info("user_created", "user_id", user.ID)

	token, err := s.Tokens.Issue(&user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.Producer.Publish(ctx, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"event":    "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicUserEvents, "error", err)
	}

	return &transport.AuthResponse{User: &user, Token: token}, nil
}

// Login verifies credentials and issues a fresh token. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the response
// never reveals which field was wrong.
func (s *AuthService) Login(ctx context.Context, req *transport.LoginRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &transport.AuthResponse{User: user, Token: token}, nil
}
