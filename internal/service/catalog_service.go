package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/slug"
)

// categoryRepository is the subset of store.CategoryStore that CatalogService requires.
type categoryRepository interface {
	Create(ctx context.Context, name, slug string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// imageRepository is the subset of store.ImageStore that CatalogService requires.
type imageRepository interface {
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	List(ctx context.Context, categoryID *int64) ([]*domain.Image, error)
	Update(ctx context.Context, id int64, img *domain.Image) error
	Delete(ctx context.Context, id int64) error
}

// ImageInput is the client-supplied form of an image record, used for both
// create and full-replace update.
type ImageInput struct {
	CategoryID   int64
	Src          string
	Alt          string
	Title        string
	Description  *string
	Tags         []string
	Type         string
	ThumbnailSrc *string
}

// CatalogService fronts the structured catalog.
type CatalogService struct {
	categories categoryRepository
	images     imageRepository
	logger     *slog.Logger
}

func NewCatalogService(categories categoryRepository, images imageRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		categories: categories,
		images:     images,
		logger:     logger,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory slugifies name and inserts it. An existing slug is a
// conflict; two concurrent creates of the same slug are settled by the
// unique constraint, so the loser also sees domain.ErrConflict.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return nil, fmt.Errorf("%w: name %q has no usable characters", domain.ErrValidation, name)
	}

	existing, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category with slug %q already exists", domain.ErrConflict, categorySlug)
	}

	category, err := s.categories.Create(ctx, name, categorySlug)
	if err != nil {
		return nil, err
	}
	s.logger.Info("category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

func (s *CatalogService) DeleteAllCategories(ctx context.Context) error {
	if err := s.categories.DeleteAll(ctx); err != nil {
		return err
	}
	s.logger.Info("all categories deleted")
	return nil
}

func (s *CatalogService) ListImages(ctx context.Context, categoryID *int64) ([]*domain.Image, error) {
	return s.images.List(ctx, categoryID)
}

func (s *CatalogService) CreateImage(ctx context.Context, in ImageInput) (*domain.Image, error) {
	img, err := imageFromInput(in)
	if err != nil {
		return nil, err
	}
	return s.images.Create(ctx, img)
}

// UpdateImage replaces every field of image id and returns the stored result.
func (s *CatalogService) UpdateImage(ctx context.Context, id int64, in ImageInput) (*domain.Image, error) {
	img, err := imageFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.images.Update(ctx, id, img); err != nil {
		return nil, err
	}
	return s.images.GetByID(ctx, id)
}

func (s *CatalogService) DeleteImage(ctx context.Context, id int64) error {
	return s.images.Delete(ctx, id)
}

func imageFromInput(in ImageInput) (*domain.Image, error) {
	var missing []string
	if in.CategoryID <= 0 {
		missing = append(missing, "category_id")
	}
	if strings.TrimSpace(in.Src) == "" {
		missing = append(missing, "src")
	}
	if strings.TrimSpace(in.Alt) == "" {
		missing = append(missing, "alt")
	}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	mediaType := domain.MediaType(in.Type)
	switch mediaType {
	case domain.MediaTypeImage, domain.MediaTypeVideo:
	case "":
		if t, ok := domain.MediaTypeForPath(in.Src); ok {
			mediaType = t
		} else {
			mediaType = domain.MediaTypeImage
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrValidation, in.Type)
	}

	return &domain.Image{
		CategoryID:   in.CategoryID,
		Src:          in.Src,
		Alt:          in.Alt,
		Title:        in.Title,
		Description:  in.Description,
		Tags:         domain.Tags(in.Tags),
		Type:         mediaType,
		ThumbnailSrc: in.ThumbnailSrc,
	}, nil
}
