package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("PORT", "")
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("SKIP_AUTH", "")
	t.Setenv("ARCHIVE_BUCKET", "")

	cfg := Load("")
	assert.Equal(t, "8111", cfg.Port)
	assert.True(t, cfg.UseMemoryStore)
	assert.False(t, cfg.SkipAuth)
	assert.Empty(t, cfg.ArchiveBucket)
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "financas-app")
	t.Setenv("ARCHIVE_BUCKET", "financas-imports")
	t.Setenv("FRONTEND_ORIGIN", "https://financas.example.com")

	cfg := Load("")
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.UseMemoryStore)
	assert.Equal(t, "financas-app", cfg.GoogleCloudProject)
	assert.Equal(t, "financas-imports", cfg.ArchiveBucket)
	assert.Contains(t, cfg.AllowedOrigins, "https://financas.example.com")
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("FLAG", "true")
	assert.True(t, GetEnvAsBool("FLAG", false))

	t.Setenv("FLAG", "notabool")
	assert.False(t, GetEnvAsBool("FLAG", false))

	assert.True(t, GetEnvAsBool("UNSET_FLAG", true))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("NUM", "42")
	assert.Equal(t, 42, GetEnvAsInt("NUM", 0))

	t.Setenv("NUM", "x")
	assert.Equal(t, 7, GetEnvAsInt("NUM", 7))
}
