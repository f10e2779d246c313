package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
)

const imageColumns = `id, category_id, src, alt, title, description, tags, type, thumbnail_src, created_at, updated_at`

type ImageStore struct {
	db *sql.DB
}

func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (*domain.Image, error) {
	img := &domain.Image{}
	var mediaType string
	if err := row.Scan(&img.ID, &img.CategoryID, &img.Src, &img.Alt, &img.Title, &img.Description,
		&img.Tags, &mediaType, &img.ThumbnailSrc, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return nil, err
	}
	img.Type = domain.MediaType(mediaType)
	return img, nil
}

// Create inserts img. A category_id with no matching category yields
// domain.ErrValidation.
func (s *ImageStore) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO images (category_id, src, alt, title, description, tags, type, thumbnail_src)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, img.CategoryID, img.Src, img.Alt, img.Title, img.Description, img.Tags, string(img.Type), img.ThumbnailSrc)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrValidation, img.CategoryID)
		}
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ImageStore) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `
		SELECT `+imageColumns+` FROM images WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return img, nil
}

// List returns images newest first, restricted to one category when
// categoryID is non-nil.
func (s *ImageStore) List(ctx context.Context, categoryID *int64) ([]*domain.Image, error) {
	var (
		where strings.Builder
		args  []any
	)
	if categoryID != nil {
		where.WriteString("WHERE category_id = ?")
		args = append(args, *categoryID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+imageColumns+` FROM images `+where.String()+`
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	images := []*domain.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// Update replaces every mutable column of image id.
func (s *ImageStore) Update(ctx context.Context, id int64, img *domain.Image) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE images SET
			category_id = ?, src = ?, alt = ?, title = ?, description = ?,
			tags = ?, type = ?, thumbnail_src = ?, updated_at = datetime('now')
		WHERE id = ?
	`, img.CategoryID, img.Src, img.Alt, img.Title, img.Description, img.Tags, string(img.Type), img.ThumbnailSrc, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d does not exist", domain.ErrValidation, img.CategoryID)
		}
		return fmt.Errorf("failed to update image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: image %d", domain.ErrNotFound, id)
	}

	return nil
}

func (s *ImageStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM images WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: image %d", domain.ErrNotFound, id)
	}

	return nil
}
