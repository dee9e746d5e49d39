package util

import (
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	offset = (page - 1) * size
	return offset, size
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

var sortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"priority":   true,
	"status":     true,
	"due_date":   true,
	"created_at": true,
	"updated_at": true,
}

// ParseSort turns "field,dir" into an ORDER BY clause restricted to an
// allowlist of columns. Anything unrecognised falls back to def.
func ParseSort(s, def string) string {
	if s == "" {
		return def
	}
	parts := strings.SplitN(s, ",", 2)
	col := strings.TrimSpace(strings.ToLower(parts[0]))
	if !sortColumns[col] {
		return def
	}
	dir := "ASC"
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}
