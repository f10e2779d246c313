package mediastore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open and Delete when no file exists at the key.
var ErrNotFound = errors.New("media not found")

// MediaStore persists uploaded media bytes. Keys are slash-separated paths
// relative to the store root, e.g. "gallery/events/1700000000000-party.jpg",
// which is the public URL without its leading slash. Delete only removes
// files; a key naming a directory is a validation error.
type MediaStore interface {
	Save(ctx context.Context, key string, r io.Reader) (size int64, err error)
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)
	Delete(ctx context.Context, key string) error
}
