package repo

import (
	"context"

	"github.com/victor-devv/todo-list/internal/models"
)

func (r *GormRepo) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return r.DB.WithContext(ctx).Create(todo).Error
}

func (r *GormRepo) GetTodoByID(ctx context.Context, id uint) (*models.Todo, error) {
	var todo models.Todo
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *GormRepo) ListTodosByUser(ctx context.Context, userID uint, offset, limit int, order string) (int64, []models.Todo, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Todo{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var todos []models.Todo
	if err := r.DB.WithContext(ctx).
		Model(&models.Todo{}).
		Where("user_id = ?", userID).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&todos).Error; err != nil {
		return 0, nil, err
	}
	return total, todos, nil
}

// UpdateTodo writes the mutable fields guarded by the version the caller
// read. Zero rows affected means a concurrent writer bumped the version
// first and the write is rejected with ErrStaleVersion.
func (r *GormRepo) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Todo{}).
		Where("id = ? AND version = ?", todo.ID, todo.Version).
		Updates(map[string]any{
			"title":        todo.Title,
			"description":  todo.Description,
			"priority":     todo.Priority,
			"status":       todo.Status,
			"due_date":     todo.DueDate,
			"completed_at": todo.CompletedAt,
			"version":      todo.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}

	return r.DB.WithContext(ctx).First(todo, todo.ID).Error
}

func (r *GormRepo) DeleteTodo(ctx context.Context, todo *models.Todo) error {
	return r.DB.WithContext(ctx).Delete(todo).Error
}
