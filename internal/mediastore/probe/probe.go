// Package probe extracts display metadata from stored media. Every lookup is
// best effort: an unreadable or unsupported file yields empty Info.
package probe

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/abema/go-mp4"
	_ "golang.org/x/image/webp"
)

type Info struct {
	Width    *int
	Height   *int
	Duration *float64
}

// Probe inspects r according to mimeType. Raster images report their pixel
// dimensions and MP4 video reports its duration in seconds.
func Probe(r io.ReadSeeker, mimeType string) Info {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return imageInfo(r)
	case "video/mp4":
		return mp4Info(r)
	default:
		return Info{}
	}
}

func imageInfo(r io.Reader) Info {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		slog.Debug("could not read image dimensions", "error", err)
		return Info{}
	}
	w, h := cfg.Width, cfg.Height
	return Info{Width: &w, Height: &h}
}

func mp4Info(r io.ReadSeeker) Info {
	info, err := mp4.Probe(r)
	if err != nil {
		slog.Debug("could not probe mp4", "error", err)
		return Info{}
	}
	if info.Timescale == 0 {
		return Info{}
	}
	d := float64(info.Duration) / float64(info.Timescale)
	return Info{Duration: &d}
}
