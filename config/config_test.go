package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-tienda/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.Images.Workers)
	assert.Equal(t, 10*time.Second, cfg.Images.FetchTimeout)
	assert.Equal(t, 200, cfg.Images.MaxDimension)
	assert.Equal(t, 80, cfg.Images.JPEGQuality)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_ENV", "production")
	t.Setenv("CATALOG_PORT", ":9090")
	t.Setenv("CATALOG_IMAGES_WORKERS", "0")
	t.Setenv("CATALOG_IMAGES_FETCH_TIMEOUT", "3s")
	t.Setenv("CATALOG_IMAGES_JPEG_QUALITY", "65")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, 1, cfg.Images.Workers, "workers are floored at one")
	assert.Equal(t, 3*time.Second, cfg.Images.FetchTimeout)
	assert.Equal(t, 65, cfg.Images.JPEGQuality)
	assert.Equal(t, "/tmp/creds.json", cfg.GoogleCredsPath)
}

func TestLoadRejectsBadQuality(t *testing.T) {
	t.Setenv("CATALOG_IMAGES_JPEG_QUALITY", "150")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadSettings(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, models.DefaultCatalogSettings().Columns, s.Columns)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := "title: Ofertas de temporada\ncolumns: 4\ncatalogType: promotional\norientation: landscape\npreferredCategories:\n  - Cables\n  - Headphones\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "Ofertas de temporada", s.Title)
		assert.Equal(t, 4, s.Columns)
		assert.Equal(t, models.Landscape, s.Orientation)
		assert.Equal(t, []string{"Cables", "Headphones"}, s.PreferredCategories)
		assert.True(t, s.ShowPrices, "unset keys keep their defaults")
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("colums: 4\n"), 0o600))
		_, err := LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("columns: 0\n"), 0o600))
		_, err := LoadSettings(path)
		assert.ErrorIs(t, err, models.ErrInvalidSettings)
	})
}
