package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guidehub/internal/models"
)

type AdminSQLite struct {
	db *sql.DB
}

func NewAdminSQLite(db *sql.DB) *AdminSQLite {
	return &AdminSQLite{db: db}
}

// Ensure implementation of Admins interface at compile time.
var _ Admins = (*AdminSQLite)(nil)

const (
	insertAdminSQL       = `INSERT INTO admins (name, password_hash) VALUES (?, ?)`
	selectAdminByNameSQL = `SELECT id, name, password_hash FROM admins WHERE name = ?`
)

// Create inserts a new admin and returns its ID. Returns ErrDuplicateName if
// the name is already taken.
func (r *AdminSQLite) Create(ctx context.Context, name, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertAdminSQL, name, passwordHash)
	if err != nil {
		if isUniqueErr(err, "admins.name") {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("insert admin %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for admin %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByName fetches an admin by name. Returns (nil, nil) if not found.
func (r *AdminSQLite) GetByName(ctx context.Context, name string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.QueryRowContext(ctx, selectAdminByNameSQL, name).Scan(&a.ID, &a.Name, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select admin %q: %w", name, err)
	}
	return &a, nil
}
