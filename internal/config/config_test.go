package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.MediaRoot)
	assert.Equal(t, "gallery", cfg.GallerySection)
	assert.Equal(t, int64(32<<20), cfg.MaxMultipartMemory)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("MEDIA_ROOT", "/srv/public")
	t.Setenv("MAX_MULTIPART_MEMORY", "1048576")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "/srv/public", cfg.MediaRoot)
	assert.Equal(t, int64(1048576), cfg.MaxMultipartMemory)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadInvalidMultipartMemoryFallsBack(t *testing.T) {
	t.Setenv("MAX_MULTIPART_MEMORY", "lots")

	cfg := Load()

	assert.Equal(t, int64(32<<20), cfg.MaxMultipartMemory)
}
