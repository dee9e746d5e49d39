package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}
