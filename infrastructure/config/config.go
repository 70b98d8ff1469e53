package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	PlaceholderAPIKey = "YOUR_YOUTUBE_API_KEY_HERE"

	defaultListenAddr       = ":3000"
	defaultRegionCode       = "US"
	defaultCategoryID       = "10"
	defaultMaxResults       = 12
	defaultUpstreamTimeout  = 10 * time.Second
	defaultSearchCacheSecs  = 120
	defaultTrendingCacheSec = 300
	defaultLogDir           = "logs"
	defaultLogLevel         = "info"
	defaultMetricsPath      = "/metrics"
	defaultEnvFile          = ".env"
	defaultHubURL           = "http://localhost:3000"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	YouTubeAPIKey    string        `yaml:"youtube_api_key"`
	YouTubeTokenFile string        `yaml:"youtube_token_file"`
	ClientSecretFile string        `yaml:"youtube_client_secret_file"`
	YouTubeEndpoint  string        `yaml:"youtube_api_endpoint"`
	RegionCode       string        `yaml:"region_code"`
	CategoryID       string        `yaml:"category_id"`
	MaxResults       int64         `yaml:"max_results"`
	UpstreamTimeout  time.Duration `yaml:"upstream_timeout"`

	SearchCacheSeconds   int `yaml:"search_cache_seconds"`
	TrendingCacheSeconds int `yaml:"trending_cache_seconds"`

	LogDir      string `yaml:"log_dir"`
	LogLevel    string `yaml:"log_level"`
	MetricsPath string `yaml:"metrics_path"`

	// Terminal client settings.
	HubURL           string `yaml:"music_hub_url"`
	OfflineCachePath string `yaml:"offline_cache_path"`
}

func Default() *Config {
	return &Config{
		ListenAddr:           defaultListenAddr,
		RegionCode:           defaultRegionCode,
		CategoryID:           defaultCategoryID,
		MaxResults:           defaultMaxResults,
		UpstreamTimeout:      defaultUpstreamTimeout,
		SearchCacheSeconds:   defaultSearchCacheSecs,
		TrendingCacheSeconds: defaultTrendingCacheSec,
		LogDir:               defaultLogDir,
		LogLevel:             defaultLogLevel,
		MetricsPath:          defaultMetricsPath,
		HubURL:               defaultHubURL,
	}
}

// Load resolves defaults, then .env, then CONFIG_FILE (yaml), then the process environment.
func Load() (*Config, error) {
	// .env is optional and never overrides variables that are already set.
	_ = godotenv.Load(defaultEnvFile)

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadEnv() error {
	strs := map[string]*string{
		"LISTEN_ADDR":                &c.ListenAddr,
		"YOUTUBE_API_KEY":            &c.YouTubeAPIKey,
		"YOUTUBE_TOKEN_FILE":         &c.YouTubeTokenFile,
		"YOUTUBE_CLIENT_SECRET_FILE": &c.ClientSecretFile,
		"YOUTUBE_API_ENDPOINT":       &c.YouTubeEndpoint,
		"YOUTUBE_REGION_CODE":        &c.RegionCode,
		"YOUTUBE_CATEGORY_ID":        &c.CategoryID,
		"LOG_LEVEL":                  &c.LogLevel,
		"METRICS_PATH":               &c.MetricsPath,
		"MUSIC_HUB_URL":              &c.HubURL,
		"OFFLINE_CACHE_PATH":         &c.OfflineCachePath,
	}
	for key, ptr := range strs {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*ptr = value
		}
	}

	// An explicitly empty LOG_DIR switches to console logging.
	if value, ok := os.LookupEnv("LOG_DIR"); ok {
		c.LogDir = value
	}

	if value := os.Getenv("YOUTUBE_MAX_RESULTS"); value != "" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid YOUTUBE_MAX_RESULTS %q", value)
		}
		c.MaxResults = n
	}

	if value := os.Getenv("UPSTREAM_TIMEOUT"); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT %q", value)
		}
		c.UpstreamTimeout = d
	}

	ints := map[string]*int{
		"SEARCH_CACHE_SECONDS":   &c.SearchCacheSeconds,
		"TRENDING_CACHE_SECONDS": &c.TrendingCacheSeconds,
	}
	for key, ptr := range ints {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s %q", key, value)
		}
		*ptr = n
	}

	return nil
}

// HasAPIKey reports whether live mode is configured through an API key.
func (c *Config) HasAPIKey() bool {
	return c.YouTubeAPIKey != "" && c.YouTubeAPIKey != PlaceholderAPIKey
}

func (c *Config) SearchCacheControl() string {
	return cacheControl(c.SearchCacheSeconds)
}

func (c *Config) TrendingCacheControl() string {
	return cacheControl(c.TrendingCacheSeconds)
}

func cacheControl(seconds int) string {
	return fmt.Sprintf("s-maxage=%d, stale-while-revalidate", seconds)
}
