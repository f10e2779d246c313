package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/mediacatalog/internal/domain"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create inserts a category. A slug that already exists yields
// domain.ErrConflict.
func (s *CategoryStore) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, slug) VALUES (?, ?)
	`, name, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category with slug %q already exists", domain.ErrConflict, slug)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	c := &domain.Category{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = ?
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return c, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	categories := []*domain.Category{}
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Delete removes a category and its images. Images go first: if the second
// statement never runs, what remains is an empty category rather than images
// pointing at a missing one.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM images WHERE category_id = ?
	`, id); err != nil {
		return fmt.Errorf("failed to delete images of category %d: %w", id, err)
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
	}

	return nil
}

// DeleteAll empties the catalog, images before categories.
func (s *CategoryStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}
