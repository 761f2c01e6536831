package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("BLOB_STORAGE_BASE_URL", "https://blob.example.com/")

	cfg, missing := fromViper(viper.New())
	require.Empty(t, missing)

	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "https://blob.example.com", cfg.Blob.BaseURL)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Redis.ViewTTL)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, time.Hour, cfg.DB.StaleAfter)
}

func TestFromViperOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("BLOB_STORAGE_BASE_URL", "https://blob.example.com")
	t.Setenv("API_TIMEOUT_SEC", "15")
	t.Setenv("VIEW_CACHE_TTL_SEC", "5")
	t.Setenv("ADMIN_TOKEN", "  secret ")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, missing := fromViper(viper.New())
	require.Empty(t, missing)

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Redis.ViewTTL)
	assert.Equal(t, "secret", cfg.Sec.AdminToken)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestFromViperReportsMissing(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("BLOB_STORAGE_BASE_URL", "")

	_, missing := fromViper(viper.New())
	assert.ElementsMatch(t, []string{"API_BASE_URL", "BLOB_STORAGE_BASE_URL"}, missing)
}
