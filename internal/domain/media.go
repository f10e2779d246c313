package domain

import (
	"path/filepath"
	"strings"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".webm": true, ".ogg": true,
}

// MediaTypeForPath classifies a file by extension, case-insensitively.
// ok is false when the extension is outside the image and video allow lists.
func MediaTypeForPath(p string) (t MediaType, ok bool) {
	ext := strings.ToLower(filepath.Ext(p))
	switch {
	case imageExts[ext]:
		return MediaTypeImage, true
	case videoExts[ext]:
		return MediaTypeVideo, true
	default:
		return "", false
	}
}

// MediaTypeForMIME classifies a MIME type by its top-level type.
func MediaTypeForMIME(mimeType string) MediaType {
	if strings.HasPrefix(mimeType, "video/") {
		return MediaTypeVideo
	}
	return MediaTypeImage
}
