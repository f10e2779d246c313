package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/mediastore"
)

// LocalMediaStore keeps media under a root directory on the local disk.
type LocalMediaStore struct {
	basePath string
}

func NewLocalMediaStore(basePath string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create media directory: %v", domain.ErrStorage, err)
	}
	return &LocalMediaStore{basePath: basePath}, nil
}

func (s *LocalMediaStore) Root() string {
	return s.basePath
}

// Save writes r to key, creating parent directories as needed. A partially
// written file is removed on failure.
func (s *LocalMediaStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return 0, fmt.Errorf("%w: failed to create directory: %v", domain.ErrStorage, err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create file: %v", domain.ErrStorage, err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return 0, fmt.Errorf("%w: failed to write file: %v", domain.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return 0, fmt.Errorf("%w: failed to close file: %v", domain.ErrStorage, err)
	}
	return n, nil
}

func (s *LocalMediaStore) Open(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mediastore.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: failed to open file: %v", domain.ErrStorage, err)
	}
	return f, nil
}

func (s *LocalMediaStore) Delete(ctx context.Context, key string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	info, err := os.Lstat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", mediastore.ErrNotFound, key)
		}
		return fmt.Errorf("%w: failed to stat file: %v", domain.ErrStorage, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrValidation, key)
	}

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", mediastore.ErrNotFound, key)
		}
		return fmt.Errorf("%w: failed to delete file: %v", domain.ErrStorage, err)
	}
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalMediaStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base path: %v", domain.ErrStorage, err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, filepath.FromSlash(strings.TrimPrefix(key, "/"))))
	if err != nil {
		return "", fmt.Errorf("%w: invalid path: %v", domain.ErrValidation, err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path traversal attempt", domain.ErrValidation)
	}
	return absPath, nil
}
