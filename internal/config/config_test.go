package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("UPLOAD_URL_PATH", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, int64(15*1024*1024), cfg.MaxUploadBytes)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("SITE_BASE_URL", "https://comex.example/")
	t.Setenv("UPLOAD_URL_PATH", "/media/")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "https://comex.example", cfg.SiteBaseURL)
	assert.Equal(t, "/media", cfg.UploadURLPath)
}
