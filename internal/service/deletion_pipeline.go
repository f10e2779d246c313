package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/mediastore"
)

type imageDeleter interface {
	Delete(ctx context.Context, id int64) error
}

type carouselImageDeleter interface {
	DeleteCarouselImageByToken(ctx context.Context, token string) error
}

type DeleteRequest struct {
	ID        *string
	FilePath  string
	Section   string
	Subfolder string
}

type DeleteResult struct {
	Success bool `json:"success"`
}

// DeletionPipeline removes a stored file and, optionally, the catalog row
// pointing at it. Deleting something already gone still succeeds.
type DeletionPipeline struct {
	media    mediastore.MediaStore
	images   imageDeleter
	carousel carouselImageDeleter
	logger   *slog.Logger
}

func NewDeletionPipeline(media mediastore.MediaStore, images imageDeleter, carousel carouselImageDeleter, logger *slog.Logger) *DeletionPipeline {
	return &DeletionPipeline{
		media:    media,
		images:   images,
		carousel: carousel,
		logger:   logger,
	}
}

// canonicalPath returns the cleaned filePath when it already lives under
// /section/, and otherwise rebuilds it from section, subfolder and the file's
// base name. The result must name an entry strictly inside the section.
func canonicalPath(filePath, section, subfolder string) (string, error) {
	prefix := "/" + section + "/"
	var url string
	if strings.HasPrefix(filePath, prefix) {
		url = path.Clean(filePath)
	} else {
		base := path.Base(filePath)
		if base == "." || base == ".." || base == "/" {
			return "", fmt.Errorf("%w: file path %q names no file", domain.ErrValidation, filePath)
		}
		url = publicPath(section, subfolder, base)
	}
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("%w: file path %q is outside section %q", domain.ErrValidation, filePath, section)
	}
	return url, nil
}

func (p *DeletionPipeline) Delete(ctx context.Context, req DeleteRequest) (*DeleteResult, error) {
	if strings.TrimSpace(req.FilePath) == "" {
		return nil, fmt.Errorf("%w: filePath is required", domain.ErrValidation)
	}
	sec, ok := LookupSection(req.Section)
	if !ok {
		return nil, fmt.Errorf("%w: unknown section %q", domain.ErrValidation, req.Section)
	}
	if err := checkSubfolder(req.Subfolder); err != nil {
		return nil, err
	}

	var imageID int64
	if req.ID != nil && sec.Kind == SectionKindGallery {
		id, err := strconv.ParseInt(*req.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q is not numeric", domain.ErrValidation, *req.ID)
		}
		imageID = id
	}

	url, err := canonicalPath(req.FilePath, req.Section, req.Subfolder)
	if err != nil {
		return nil, err
	}
	if err := p.media.Delete(ctx, strings.TrimPrefix(url, "/")); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		case errors.Is(err, mediastore.ErrNotFound):
			p.logger.Info("media already absent", "url", url)
		default:
			p.logger.Error("failed to delete media file", "url", url, "error", err)
		}
	}

	if req.ID != nil {
		if err := p.deleteRow(ctx, sec, *req.ID, imageID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			p.logger.Info("catalog row already absent", "section", req.Section, "id", *req.ID)
		}
	}

	p.logger.Info("media deleted", "url", url, "section", req.Section)
	return &DeleteResult{Success: true}, nil
}

func (p *DeletionPipeline) deleteRow(ctx context.Context, sec Section, token string, imageID int64) error {
	switch sec.Kind {
	case SectionKindGallery:
		return p.images.Delete(ctx, imageID)
	case SectionKindHero:
		return p.carousel.DeleteCarouselImageByToken(ctx, token)
	default:
		p.logger.Debug("section keeps no catalog rows", "section", sec.Name)
		return nil
	}
}
