package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/victor-devv/todo-list/internal/models"
)

const Index = "todos"

// Search runs a fuzzy title/description match over the caller's own todos.
// The owner filter is applied server-side so one user can never match
// another user's documents.
func Search(ctx context.Context, es *elasticsearch.Client, userID uint, query string, from, size int) (int64, []models.Todo, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(Index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Todo `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	todos := make([]models.Todo, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		todos[i] = hit.Source
	}
	return r.Hits.Total.Value, todos, nil
}

// IndexTodo upserts a todo document. Best effort, callers log failures
// rather than failing the request.
func IndexTodo(ctx context.Context, es *elasticsearch.Client, todo *models.Todo) error {
	if es == nil {
		return nil
	}

	data, err := json.Marshal(todo)
	if err != nil {
		return fmt.Errorf("encode todo doc: %w", err)
	}

	res, err := es.Index(
		Index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(todo.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index todo: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index todo: %s", res.Status())
	}
	return nil
}

func DeleteTodo(ctx context.Context, es *elasticsearch.Client, id uint) error {
	if es == nil {
		return nil
	}

	res, err := es.Delete(
		Index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete todo doc: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete todo doc: %s", res.Status())
	}
	return nil
}
