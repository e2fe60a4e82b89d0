package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"guidehub/internal/models"
)

// Failures the layers above branch on. Everything else is surfaced wrapped
// and treated as an infrastructure error.
var (
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("not found")
)

type Admins interface {
	Create(ctx context.Context, name, passwordHash string) (int, error)
	GetByName(ctx context.Context, name string) (*models.Admin, error)
}

// Guides stores guide documents. List leaves Sections unloaded; GetByName and
// GetByID return the full document with its category resolved.
type Guides interface {
	List(ctx context.Context, search, categoryID string) ([]models.Guide, error)
	GetByName(ctx context.Context, name string) (*models.Guide, error)
	GetByID(ctx context.Context, id string) (*models.Guide, error)
	Create(ctx context.Context, g models.Guide) (string, error)
	Update(ctx context.Context, g models.Guide) error
	Delete(ctx context.Context, id string) error
}

type Categories interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c models.Category) (string, error)
	Delete(ctx context.Context, id string) error
	GuideCount(ctx context.Context, id string) (int, error)
}

type Repository struct {
	Admins     Admins
	Guides     Guides
	Categories Categories
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Admins:     NewAdminSQLite(db),
		Guides:     NewGuideSQLite(db),
		Categories: NewCategorySQLite(db),
	}
}

// isUniqueErr reports whether err is a SQLite UNIQUE constraint violation on
// the given column ("table.column"). modernc.org/sqlite exposes no typed
// constraint error, so the message text is the contract.
func isUniqueErr(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
