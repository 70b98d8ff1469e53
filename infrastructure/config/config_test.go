package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "LISTEN_ADDR", "YOUTUBE_API_KEY", "YOUTUBE_TOKEN_FILE", "YOUTUBE_API_ENDPOINT",
		"YOUTUBE_REGION_CODE", "YOUTUBE_CATEGORY_ID", "YOUTUBE_MAX_RESULTS", "UPSTREAM_TIMEOUT",
		"SEARCH_CACHE_SECONDS", "TRENDING_CACHE_SECONDS", "LOG_DIR", "LOG_LEVEL", "METRICS_PATH",
		"MUSIC_HUB_URL", "OFFLINE_CACHE_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, "US", cfg.RegionCode)
	assert.Equal(t, "10", cfg.CategoryID)
	assert.Equal(t, int64(12), cfg.MaxResults)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "http://localhost:3000", cfg.HubURL)
	assert.Empty(t, cfg.OfflineCachePath)
	assert.False(t, cfg.HasAPIKey())
	assert.Equal(t, "s-maxage=120, stale-while-revalidate", cfg.SearchCacheControl())
	assert.Equal(t, "s-maxage=300, stale-while-revalidate", cfg.TrendingCacheControl())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "abc")
	t.Setenv("YOUTUBE_MAX_RESULTS", "25")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("SEARCH_CACHE_SECONDS", "60")
	t.Setenv("LOG_DIR", "")
	t.Setenv("OFFLINE_CACHE_PATH", "/tmp/music_hub.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, int64(25), cfg.MaxResults)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "s-maxage=60, stale-while-revalidate", cfg.SearchCacheControl())
	assert.Empty(t, cfg.LogDir)
	assert.Equal(t, "/tmp/music_hub.db", cfg.OfflineCachePath)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"max results not a number", "YOUTUBE_MAX_RESULTS", "lots"},
		{"max results zero", "YOUTUBE_MAX_RESULTS", "0"},
		{"bad timeout", "UPSTREAM_TIMEOUT", "soon"},
		{"negative cache seconds", "TRENDING_CACHE_SECONDS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "music_hub.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region_code: BR\nupstream_timeout: 2s\nmax_results: 5\n"), 0600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("YOUTUBE_REGION_CODE", "GB")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "GB", cfg.RegionCode, "env wins over yaml")
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, int64(5), cfg.MaxResults)
	assert.Equal(t, "10", cfg.CategoryID)
}

func TestLoadMissingYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestHasAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{PlaceholderAPIKey, false},
		{"real-key", true},
	}

	for _, tt := range tests {
		cfg := &Config{YouTubeAPIKey: tt.key}
		assert.Equal(t, tt.want, cfg.HasAPIKey(), "key %q", tt.key)
	}
}
