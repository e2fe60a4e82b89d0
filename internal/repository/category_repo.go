package repository

import (
	"context"
	"database/sql"
	"fmt"

	"guidehub/internal/models"

	"github.com/google/uuid"
)

type CategorySQLite struct {
	db *sql.DB
}

func NewCategorySQLite(db *sql.DB) *CategorySQLite { return &CategorySQLite{db: db} }

var _ Categories = (*CategorySQLite)(nil)

const (
	insertCategorySQL = `INSERT INTO categories (id, name, description) VALUES (?, ?, ?)`
	selectCategorySQL = `SELECT id, name, description FROM categories ORDER BY name ASC`
	deleteCategorySQL = `DELETE FROM categories WHERE id = ?`
	countGuidesRefSQL = `SELECT COUNT(1) FROM guides WHERE category_id = ?`
)

// List returns all categories ordered by name.
func (r *CategorySQLite) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectCategorySQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 8)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return out, nil
}

// Create inserts a category and returns its id.
func (r *CategorySQLite) Create(ctx context.Context, c models.Category) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx, insertCategorySQL, c.ID, c.Name, c.Description); err != nil {
		return "", fmt.Errorf("insert category %q: %w", c.Name, err)
	}
	return c.ID, nil
}

// Delete removes a category by id. Returns ErrNotFound if nothing was deleted.
func (r *CategorySQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCategorySQL, id)
	if err != nil {
		return fmt.Errorf("delete category %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for category %q: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GuideCount reports how many guides still reference the category.
func (r *CategorySQLite) GuideCount(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countGuidesRefSQL, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count guides for category %q: %w", id, err)
	}
	return n, nil
}
