package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStaleVersion is returned when a version-checked write matched no rows
// because another writer committed first.
var ErrStaleVersion = errors.New("stale version")

type GormRepo struct {
	DB *gorm.DB
}
