package service

import (
	"bytes"
	"database/sql"
	"image"
	"image/png"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/mediacatalog/internal/db"
	"github.com/vbonduro/mediacatalog/internal/logging"
	"github.com/vbonduro/mediacatalog/internal/mediastore/local"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newTestMediaStore(t *testing.T) (*local.LocalMediaStore, string) {
	t.Helper()
	root := t.TempDir()
	ms, err := local.NewLocalMediaStore(root)
	require.NoError(t, err)
	return ms, root
}

func testLogger() *slog.Logger {
	return logging.Discard()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}
