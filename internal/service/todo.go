package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/victor-devv/todo-list/internal/events"
	"github.com/victor-devv/todo-list/internal/logging"
	"github.com/victor-devv/todo-list/internal/models"
	"github.com/victor-devv/todo-list/internal/repo"
	"github.com/victor-devv/todo-list/internal/service/search"
	"github.com/victor-devv/todo-list/internal/transport"
)

type TodoService struct {
	Repo     *repo.GormRepo
	ES       *elasticsearch.Client
	Producer *events.Producer
}

// getOwned is the ownership guard shared by every per-resource operation.
// The todo is loaded before the owner comparison, so a caller probing a
// foreign id gets Forbidden while an absent id gets NotFound.
func (s *TodoService) getOwned(ctx context.Context, id, userID uint) (*models.Todo, error) {
	todo, err := s.Repo.GetTodoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if todo.UserID != userID {
		return nil, ErrForbidden
	}
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id, userID uint) (*models.Todo, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *TodoService) List(ctx context.Context, userID uint, offset, limit int, order string) (int64, []models.Todo, error) {
	return s.Repo.ListTodosByUser(ctx, userID, offset, limit, order)
}

// Create binds the new todo to the account behind the token's email claim,
// never to a client-supplied owner field.
func (s *TodoService) Create(ctx context.Context, email string, req *transport.TodoRequest) (*models.Todo, error) {
	l := logging.FromContext(ctx).With("svc", "todo.create")

	if req.Title == nil || *req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, err
	}

	todo := models.Todo{
		Title:    *req.Title,
		Priority: models.PriorityMedium,
		Status:   models.StatusPending,
		UserID:   user.ID,
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Priority != nil {
		todo.Priority = models.Priority(*req.Priority)
	}
	if req.Status != nil {
		todo.Status = models.Status(*req.Status)
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		todo.DueDate = &due
	}

	if err := s.Repo.CreateTodo(ctx, &todo); err != nil {
		return nil, err
	}
	l.Info("todo_created", "todo_id", todo.ID, "user_id", user.ID)

	s.afterWrite(ctx, "todo_created", &todo)
	return &todo, nil
}

// Update replaces each field present in the request and keeps the rest.
// The write is guarded by the version read here, a concurrent commit in
// between surfaces as ErrConflict.
func (s *TodoService) Update(ctx context.Context, id, userID uint, req *transport.TodoRequest) (*models.Todo, error) {
	l := logging.FromContext(ctx).With("svc", "todo.update")

	todo, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Priority != nil {
		todo.Priority = models.Priority(*req.Priority)
	}
	if req.Status != nil {
		todo.Status = models.Status(*req.Status)
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		todo.DueDate = &due
	}

	if err := s.Repo.UpdateTodo(ctx, todo); err != nil {
		if errors.Is(err, repo.ErrStaleVersion) {
			return nil, fmt.Errorf("todo with id %d: %w", id, ErrConflict)
		}
		return nil, err
	}
	l.Info("todo_updated", "todo_id", todo.ID)

	s.afterWrite(ctx, "todo_updated", todo)
	return todo, nil
}

// Complete marks the todo COMPLETED and stamps completed_at with the
// current time. Calling it again is idempotent on status, the timestamp
// reflects the latest call.
func (s *TodoService) Complete(ctx context.Context, id, userID uint) (*models.Todo, error) {
	l := logging.FromContext(ctx).With("svc", "todo.complete")

	todo, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todo.Status = models.StatusCompleted
	todo.CompletedAt = &now

	if err := s.Repo.UpdateTodo(ctx, todo); err != nil {
		if errors.Is(err, repo.ErrStaleVersion) {
			return nil, fmt.Errorf("todo with id %d: %w", id, ErrConflict)
		}
		return nil, err
	}
	l.Info("todo_completed", "todo_id", todo.ID)

	s.afterWrite(ctx, "todo_completed", todo)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "todo.delete")

	todo, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteTodo(ctx, todo); err != nil {
		return err
	}
	l.Info("todo_deleted", "todo_id", todo.ID)

	if err := search.DeleteTodo(ctx, s.ES, todo.ID); err != nil {
		l.Warn("es_delete_failed", "todo_id", todo.ID, "error", err)
	}
	s.publish(ctx, "todo_deleted", todo)
	return nil
}

func (s *TodoService) Search(ctx context.Context, userID uint, query string, from, size int) (int64, []models.Todo, error) {
	if s.ES == nil {
		return 0, nil, fmt.Errorf("search unavailable: %w", ErrValidation)
	}
	return search.Search(ctx, s.ES, userID, query, from, size)
}

// afterWrite handles the best-effort collaborators: the search index and
// the event stream. Neither failure fails the request.
func (s *TodoService) afterWrite(ctx context.Context, event string, todo *models.Todo) {
	l := logging.FromContext(ctx)
	if err := search.IndexTodo(ctx, s.ES, todo); err != nil {
		l.Warn("es_index_failed", "todo_id", todo.ID, "error", err)
	}
	s.publish(ctx, event, todo)
}

func (s *TodoService) publish(ctx context.Context, event string, todo *models.Todo) {
	l := logging.FromContext(ctx)
	err := s.Producer.Publish(ctx, events.TopicTodoEvents, strconv.FormatUint(uint64(todo.UserID), 10), map[string]any{
		"event":   event,
		"todo_id": todo.ID,
		"user_id": todo.UserID,
		"status":  todo.Status,
	})
	if err != nil {
		l.Warn("publish_failed", "topic", events.TopicTodoEvents, "error", err)
	}
}
