package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"guidehub/internal/models"

	"github.com/google/uuid"
)

type GuideSQLite struct {
	db *sql.DB
}

func NewGuideSQLite(db *sql.DB) *GuideSQLite { return &GuideSQLite{db: db} }

var _ Guides = (*GuideSQLite)(nil)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
const sqliteTimeFormat = "2006-01-02 15:04:05"

const selectGuideBase = `SELECT g.id, g.name, g.title, g.author, g.category_id, g.date_created,
       c.name, c.description
FROM guides g
JOIN categories c ON c.id = g.category_id`

const (
	insertGuideSQL = `INSERT INTO guides (id, name, title, author, category_id, date_created)
VALUES (?, ?, ?, ?, ?, ?)`
	updateGuideSQL = `UPDATE guides SET name = ?, title = ?, category_id = ? WHERE id = ?`
	deleteGuideSQL = `DELETE FROM guides WHERE id = ?`

	insertSectionSQL      = `INSERT INTO guide_sections (guide_id, position, section_id, title, content) VALUES (?, ?, ?, ?, ?)`
	deleteSectionsSQL     = `DELETE FROM guide_sections WHERE guide_id = ?`
	selectSectionsSQL     = `SELECT section_id, title, content FROM guide_sections WHERE guide_id = ? ORDER BY position ASC`
	selectGuideByNameCond = ` WHERE g.name = ?`
	selectGuideByIDCond   = ` WHERE g.id = ?`
)

// List returns guides matching the optional filters, newest first, with their
// category resolved. Sections are not loaded. An empty search/categoryID
// imposes no filter.
func (r *GuideSQLite) List(ctx context.Context, search, categoryID string) ([]models.Guide, error) {
	var (
		conds []string
		args  []any
	)

	if search = strings.TrimSpace(search); search != "" {
		conds = append(conds, "LOWER(g.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	if categoryID != "" {
		conds = append(conds, "g.category_id = ?")
		args = append(args, categoryID)
	}

	q := selectGuideBase
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY g.date_created DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	out := make([]models.Guide, 0, 16)
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guide row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guide rows: %w", err)
	}
	return out, nil
}

// GetByName fetches one guide by its slug, with category and sections.
// Returns (nil, nil) if not found.
func (r *GuideSQLite) GetByName(ctx context.Context, name string) (*models.Guide, error) {
	return r.getOne(ctx, selectGuideBase+selectGuideByNameCond, name)
}

// GetByID fetches one guide by id, with category and sections.
// Returns (nil, nil) if not found.
func (r *GuideSQLite) GetByID(ctx context.Context, id string) (*models.Guide, error) {
	return r.getOne(ctx, selectGuideBase+selectGuideByIDCond, id)
}

func (r *GuideSQLite) getOne(ctx context.Context, query string, arg any) (*models.Guide, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	g, err := scanGuide(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select guide: %w", err)
	}

	sections, err := r.loadSections(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Sections = sections
	return &g, nil
}

// Create inserts a guide and its sections in one transaction. Returns
// ErrDuplicateName if the slug is taken. A zero DateCreated is set to now.
func (r *GuideSQLite) Create(ctx context.Context, g models.Guide) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.DateCreated.IsZero() {
		g.DateCreated = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin create guide: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, insertGuideSQL,
		g.ID, g.Name, g.Title, g.Author, g.CategoryID,
		g.DateCreated.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		if isUniqueErr(err, "guides.name") {
			return "", ErrDuplicateName
		}
		return "", fmt.Errorf("insert guide %q: %w", g.Name, err)
	}

	if err := insertSections(ctx, tx, g.ID, g.Sections); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create guide: %w", err)
	}
	return g.ID, nil
}

// Update replaces a guide's name, title, category and sections atomically.
// Returns ErrNotFound if no guide has the given id.
func (r *GuideSQLite) Update(ctx context.Context, g models.Guide) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update guide: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateGuideSQL, g.Name, g.Title, g.CategoryID, g.ID)
	if err != nil {
		if isUniqueErr(err, "guides.name") {
			return ErrDuplicateName
		}
		return fmt.Errorf("update guide %q: %w", g.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for guide %q: %w", g.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, deleteSectionsSQL, g.ID); err != nil {
		return fmt.Errorf("clear sections for guide %q: %w", g.ID, err)
	}
	if err := insertSections(ctx, tx, g.ID, g.Sections); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update guide: %w", err)
	}
	return nil
}

// Delete removes a guide by id. Returns ErrNotFound if nothing was deleted.
func (r *GuideSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteGuideSQL, id)
	if err != nil {
		return fmt.Errorf("delete guide %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for guide %q: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuideSQLite) loadSections(ctx context.Context, guideID string) ([]models.Section, error) {
	rows, err := r.db.QueryContext(ctx, selectSectionsSQL, guideID)
	if err != nil {
		return nil, fmt.Errorf("load sections for guide %q: %w", guideID, err)
	}
	defer rows.Close()

	var out []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.Content); err != nil {
			return nil, fmt.Errorf("scan section row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section rows: %w", err)
	}
	return out, nil
}

func insertSections(ctx context.Context, tx *sql.Tx, guideID string, sections []models.Section) error {
	for i, s := range sections {
		if _, err := tx.ExecContext(ctx, insertSectionSQL, guideID, i, s.ID, s.Title, s.Content); err != nil {
			return fmt.Errorf("insert section %d for guide %q: %w", i, guideID, err)
		}
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGuide(sc scanner) (models.Guide, error) {
	var (
		g   models.Guide
		cat models.Category
		ts  time.Time
	)
	err := sc.Scan(&g.ID, &g.Name, &g.Title, &g.Author, &g.CategoryID, &ts, &cat.Name, &cat.Description)
	if err != nil {
		return models.Guide{}, err
	}
	g.DateCreated = ts.UTC()
	cat.ID = g.CategoryID
	g.Category = &cat
	return g, nil
}
