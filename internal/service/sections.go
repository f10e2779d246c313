package service

import (
	"fmt"
	"path"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
)

// SectionKind selects the catalog side effects of uploads and deletes.
type SectionKind string

const (
	SectionKindGallery SectionKind = "gallery"
	SectionKindHero    SectionKind = "hero"
	SectionKindPlain   SectionKind = "plain"
)

// Section is a top-level media directory with its MIME allow list.
type Section struct {
	Name      string
	Kind      SectionKind
	MIMETypes []string
}

func (s Section) allows(mimeType string) bool {
	for _, m := range s.MIMETypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

var sections = map[string]Section{
	"gallery": {
		Name: "gallery",
		Kind: SectionKindGallery,
		MIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml",
			"video/mp4", "video/webm", "video/ogg",
		},
	},
	"hero": {
		Name: "hero",
		Kind: SectionKindHero,
		MIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"video/mp4", "video/webm",
		},
	},
	"news": {
		Name: "news",
		Kind: SectionKindPlain,
		MIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		},
	},
}

// LookupSection returns the section registered under name.
func LookupSection(name string) (Section, bool) {
	s, ok := sections[name]
	return s, ok
}

// SectionNames lists every registered section.
func SectionNames() []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	return names
}

// checkSubfolder rejects subfolders that would leave the section directory or
// land in a hidden one.
func checkSubfolder(subfolder string) error {
	if subfolder == "" {
		return nil
	}
	if strings.HasPrefix(subfolder, "/") || strings.Contains(subfolder, `\`) {
		return fmt.Errorf("%w: subfolder must be a relative path", domain.ErrValidation)
	}
	for _, part := range strings.Split(subfolder, "/") {
		if part == "" || strings.HasPrefix(part, ".") {
			return fmt.Errorf("%w: invalid subfolder %q", domain.ErrValidation, subfolder)
		}
	}
	return nil
}

// publicPath joins the URL path of a stored file, e.g. /gallery/events/x.jpg.
func publicPath(section, subfolder, filename string) string {
	return "/" + path.Join(section, subfolder, filename)
}
