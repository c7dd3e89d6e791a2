package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "vetflow", cfg.Storage.KeyPrefix)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
	assert.Equal(t, 2000, cfg.Gemini.MaxOutputTokens)
	assert.InDelta(t, 0.1, cfg.Gemini.MedicalTemperature, 1e-9)
	assert.InDelta(t, 0.7, cfg.Gemini.TutorTemperature, 1e-9)
	assert.Zero(t, cfg.Gemini.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "https://wa.me/", cfg.Share.BaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("GEMINI_TIMEOUT", "45s")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_BACKEND", "localstorage")

	_, err := Load()
	require.Error(t, err)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
