// Package config loads the application configuration for the generation
// pipeline.
//
// Configuration is resolved in three layers, lowest precedence first:
//
//  1. Built-in defaults ([Default])
//  2. An optional TOML file (adforge.toml by default)
//  3. Environment variables (FAL_KEY, MAX_RETRIES, ...)
//
// The resolved [Config] is an explicit value passed into the components
// that need it. Nothing in this package or its consumers reads process
// state after startup; there is no global configuration singleton.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/adforgehq/adforge/pkg/errors"
)

// DefaultFile is the config file consulted when no --config flag is given.
const DefaultFile = "adforge.toml"

// Cache backend names accepted in [CacheConfig].
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	// FalKey is the generation backend credential. Only settable through
	// the FAL_KEY environment variable so it never lands in a config file.
	FalKey string `toml:"-"`

	// Model is the generation backend model identifier.
	Model string `toml:"model"`

	// TimeoutMS bounds each backend request in milliseconds.
	TimeoutMS int `toml:"timeout_ms"`

	// MaxRetries bounds generation attempts per asset.
	MaxRetries int `toml:"max_retries"`

	// OutputDir is the base directory for generated assets and reports.
	OutputDir string `toml:"output_dir"`

	Cache CacheConfig `toml:"cache"`
	Brand BrandConfig `toml:"brand"`
}

// CacheConfig selects and configures the generation cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // "file", "redis", or "none"
	Dir       string `toml:"dir"`     // file backend directory
	TTLHours  int    `toml:"ttl_hours"`
	RedisAddr string `toml:"redis_addr"`
}

// BrandConfig supplies the default brand guidelines used when a brief
// omits guidelines entirely.
type BrandConfig struct {
	Colors          []string `toml:"colors"`
	LogoRequired    bool     `toml:"logo_required"`
	ProhibitedWords []string `toml:"prohibited_words"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:      "fal-ai/imagen4/preview",
		TimeoutMS:  60000,
		MaxRetries: 3,
		OutputDir:  "assets/output",
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			Dir:       ".adforge-cache",
			TTLHours:  24,
			RedisAddr: "localhost:6379",
		},
		Brand: BrandConfig{
			Colors:          []string{"#000000", "#FFFFFF"},
			LogoRequired:    true,
			ProhibitedWords: []string{"guaranteed", "free", "miracle", "cure", "instant"},
		},
	}
}

// Load resolves the configuration from defaults, an optional TOML file,
// and environment variable overrides, in that order.
//
// If path is empty, [DefaultFile] is used when it exists; a missing
// default file is not an error. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
		}
	} else if explicit {
		return Config{}, apperrors.New(apperrors.ErrCodeFileNotFound, "config file not found: %s", path)
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the per-request backend timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (c Config) validate() error {
	if c.MaxRetries < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "max_retries must be at least 1")
	}
	if c.TimeoutMS < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "timeout_ms must be positive")
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be 'file', 'redis', or 'none')", c.Cache.Backend)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FAL_KEY"); v != "" {
		cfg.FalKey = v
	}
	if v := os.Getenv("DEFAULT_IMAGE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v, ok := envInt("IMAGE_GENERATION_TIMEOUT"); ok {
		cfg.TimeoutMS = v
	}
	if v, ok := envInt("MAX_RETRIES"); ok {
		cfg.MaxRetries = v
	}
	if v := os.Getenv("OUTPUT_BASE_PATH"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("BRAND_COLORS"); v != "" {
		cfg.Brand.Colors = splitList(v)
	}
	if v := os.Getenv("BRAND_LOGO_REQUIRED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Brand.LogoRequired = b
		}
	}
	if v := os.Getenv("PROHIBITED_WORDS"); v != "" {
		cfg.Brand.ProhibitedWords = splitList(v)
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
