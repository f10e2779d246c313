package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/mediastore"
	"github.com/vbonduro/mediacatalog/internal/mediastore/probe"
)

// carouselAppender is the subset of store.HeroStore that UploadPipeline requires.
type carouselAppender interface {
	AppendCarouselImage(ctx context.Context, url string, mediaType domain.MediaType, altText string) (string, error)
}

// FileMeta describes an incoming file before it is stored.
type FileMeta struct {
	Name     string
	MimeType string
	Size     int64
}

type ValidationResult struct {
	Valid bool
	Error string
}

// UploadRequest is one multipart upload. File is read once for sniffing and
// rewound before storing.
type UploadRequest struct {
	File      io.ReadSeeker
	Filename  string
	MimeType  string
	Size      int64
	Section   string
	Subfolder string
	Tags      []string
}

type UploadResult struct {
	domain.FileInfo
	Tags    []string `json:"tags"`
	Token   string   `json:"id,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

// UploadPipeline writes uploaded bytes to the media store. Only hero uploads
// touch the structured store, and that write is best effort.
type UploadPipeline struct {
	media  mediastore.MediaStore
	hero   carouselAppender
	now    func() time.Time
	logger *slog.Logger
}

func NewUploadPipeline(media mediastore.MediaStore, hero carouselAppender, logger *slog.Logger) *UploadPipeline {
	return &UploadPipeline{
		media:  media,
		hero:   hero,
		now:    time.Now,
		logger: logger,
	}
}

// Validate checks the section, the MIME type against the section's allow list
// and the subfolder.
func (p *UploadPipeline) Validate(meta FileMeta, section, subfolder string) ValidationResult {
	sec, ok := LookupSection(section)
	if !ok {
		return ValidationResult{Error: fmt.Sprintf("unknown section %q", section)}
	}
	if strings.TrimSpace(meta.Name) == "" {
		return ValidationResult{Error: "file name is required"}
	}
	if !sec.allows(meta.MimeType) {
		return ValidationResult{Error: fmt.Sprintf("file type %q is not allowed in section %q (allowed: %s)",
			meta.MimeType, section, strings.Join(sec.MIMETypes, ", "))}
	}
	if err := checkSubfolder(subfolder); err != nil {
		return ValidationResult{Error: err.Error()}
	}
	return ValidationResult{Valid: true}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// storedFilename prefixes the client's base name with a millisecond timestamp.
func storedFilename(at time.Time, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	return fmt.Sprintf("%d-%s", at.UnixMilli(), whitespaceRun.ReplaceAllString(strings.TrimSpace(base), "-"))
}

// Store writes r under section/subfolder and returns where it landed. Width,
// height and duration are filled in when they can be read back.
func (p *UploadPipeline) Store(ctx context.Context, r io.Reader, originalName, mimeType, section, subfolder string) (*domain.FileInfo, error) {
	filename := storedFilename(p.now(), originalName)
	url := publicPath(section, subfolder, filename)

	size, err := p.media.Save(ctx, strings.TrimPrefix(url, "/"), r)
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", url, err)
	}
	p.logger.Debug("media stored", "url", url, "bytes", size)

	info := &domain.FileInfo{
		Filename:  filename,
		PublicURL: url,
		MimeType:  mimeType,
		Size:      size,
	}

	f, err := p.media.Open(ctx, strings.TrimPrefix(url, "/"))
	if err != nil {
		p.logger.Warn("failed to reopen stored media for probing", "url", url, "error", err)
		return info, nil
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Error("failed to close stored media", "url", url, "error", err)
		}
	}()

	meta := probe.Probe(f, mimeType)
	info.Width, info.Height, info.Duration = meta.Width, meta.Height, meta.Duration
	return info, nil
}

// DetectMIME sniffs the content type of r and rewinds it. The declared type
// wins only when sniffing is inconclusive.
func DetectMIME(r io.ReadSeeker, declared string) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read upload: %v", domain.ErrValidation, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: failed to rewind upload: %v", domain.ErrStorage, err)
	}

	sniffed := strings.TrimSpace(strings.SplitN(m.String(), ";", 2)[0])
	if (sniffed == "application/octet-stream" || sniffed == "text/plain") && declared != "" {
		return strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]), nil
	}
	return sniffed, nil
}

// Upload validates and stores the file. For hero sections it also appends the
// file to the active carousel; a failure there only sets Warning.
func (p *UploadPipeline) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.File == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	mimeType, err := DetectMIME(req.File, req.MimeType)
	if err != nil {
		return nil, err
	}

	v := p.Validate(FileMeta{Name: req.Filename, MimeType: mimeType, Size: req.Size}, req.Section, req.Subfolder)
	if !v.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, v.Error)
	}

	info, err := p.Store(ctx, req.File, req.Filename, mimeType, req.Section, req.Subfolder)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	result := &UploadResult{FileInfo: *info, Tags: tags}

	sec, _ := LookupSection(req.Section)
	if sec.Kind == SectionKindHero && p.hero != nil {
		token, err := p.hero.AppendCarouselImage(ctx, info.PublicURL, domain.MediaTypeForMIME(mimeType), strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename)))
		if err != nil {
			p.logger.Warn("hero upload stored but not added to carousel", "url", info.PublicURL, "error", err)
			result.Warning = heroWarning(err)
		} else {
			result.Token = token
		}
	}

	p.logger.Info("upload complete", "section", req.Section, "url", info.PublicURL, "mime_type", mimeType, "bytes", info.Size)
	return result, nil
}

func heroWarning(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "file uploaded, but no active hero is configured to add it to"
	}
	return "file uploaded, but it could not be added to the hero carousel"
}
