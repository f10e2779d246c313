// Package scanner derives a media catalog from a directory tree. Nothing is
// cached: every Scan reads the tree afresh, and ids are positions within that
// one call.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/slug"
)

type Result struct {
	Categories   []domain.Category         `json:"categories"`
	ImagesBySlug map[string][]domain.Image `json:"images"`
}

type Scanner struct {
	root         string
	publicPrefix string
	logger       *slog.Logger
}

// New returns a Scanner over root whose image URLs start with publicPrefix,
// e.g. "/gallery".
func New(root, publicPrefix string, logger *slog.Logger) *Scanner {
	return &Scanner{root: root, publicPrefix: "/" + strings.Trim(publicPrefix, "/"), logger: logger}
}

// Scan lists each immediate subdirectory of the root as a category and each
// allow-listed file inside it as an image. A missing root is created and
// yields an empty result.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	result := &Result{
		Categories:   []domain.Category{},
		ImagesBySlug: map[string][]domain.Image{},
	}

	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(s.root, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create gallery root: %v", domain.ErrStorage, err)
		}
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read gallery root: %v", domain.ErrStorage, err)
	}

	titler := cases.Title(language.Und, cases.NoLower)
	var categoryID, imageID int64

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := entry.Name()
		categoryID++
		category := domain.Category{
			ID:   categoryID,
			Name: capitalizeFirst(dir),
			Slug: slug.Make(dir),
		}
		if info, err := entry.Info(); err == nil {
			category.CreatedAt = info.ModTime()
			category.UpdatedAt = info.ModTime()
		}

		files, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read category %q: %v", domain.ErrStorage, dir, err)
		}

		images := []domain.Image{}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			mediaType, ok := domain.MediaTypeForPath(f.Name())
			if !ok {
				continue
			}

			imageID++
			src := path.Join(s.publicPrefix, dir, f.Name())
			title := titler.String(strings.Map(separatorToSpace, strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))))
			img := domain.Image{
				ID:         imageID,
				CategoryID: categoryID,
				Src:        src,
				Alt:        title,
				Title:      title,
				Tags:       domain.Tags{},
				Type:       mediaType,
			}
			if mediaType == domain.MediaTypeImage {
				thumb := src
				img.ThumbnailSrc = &thumb
			}
			if info, err := f.Info(); err == nil {
				img.CreatedAt = info.ModTime()
				img.UpdatedAt = info.ModTime()
			}
			images = append(images, img)
		}

		result.Categories = append(result.Categories, category)
		// Directories whose names slugify alike share one image list.
		if existing, ok := result.ImagesBySlug[category.Slug]; ok {
			s.logger.Warn("gallery directories share a slug", "slug", category.Slug, "directory", dir)
			images = append(existing, images...)
		}
		result.ImagesBySlug[category.Slug] = images
	}

	return result, nil
}

// CreateCategory creates a directory for name under the root.
func (s *Scanner) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: invalid category name %q", domain.ErrValidation, name)
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return nil, fmt.Errorf("%w: category name %q has no usable characters", domain.ErrValidation, name)
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create gallery root: %v", domain.ErrStorage, err)
	}
	if err := os.Mkdir(filepath.Join(s.root, name), 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: category %q already exists", domain.ErrConflict, name)
		}
		return nil, fmt.Errorf("%w: failed to create category directory: %v", domain.ErrStorage, err)
	}

	return &domain.Category{Name: capitalizeFirst(name), Slug: categorySlug}, nil
}

func separatorToSpace(r rune) rune {
	if r == '-' || r == '_' {
		return ' '
	}
	return r
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
