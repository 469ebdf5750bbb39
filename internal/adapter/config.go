package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Feeds   FeedsConfig   `mapstructure:"feeds"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// APIConfig holds remote catalog configuration
type APIConfig struct {
	Key               string        `mapstructure:"key"`
	BaseURL           string        `mapstructure:"base_url"`
	Language          string        `mapstructure:"language"` // Empty leaves the API default
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// SearchConfig holds search and suggestion tuning
type SearchConfig struct {
	ResultCap        int           `mapstructure:"result_cap"`
	SuggestionLimit  int           `mapstructure:"suggestion_limit"`
	DebounceDelay    time.Duration `mapstructure:"debounce_delay"`
	MinSuggestLength int           `mapstructure:"min_suggest_length"`
}

// FeedsConfig holds dashboard behavior
type FeedsConfig struct {
	Strict bool `mapstructure:"strict"` // Fail the whole dashboard when one feed fails
}

// CacheConfig holds response cache configuration
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"` // "none", "memory" or "redis"
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
}

// StoreConfig holds local persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps favorites and identity in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// MetricsConfig holds the Prometheus listener configuration
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // Empty disables the listener
}

// BrowserConfig holds the command used to open trailers
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 4,
			Burst:             40,
		},
		Search: SearchConfig{
			ResultCap:        20,
			SuggestionLimit:  8,
			DebounceDelay:    300 * time.Millisecond,
			MinSuggestLength: 3,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       10 * time.Minute,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// ConfigFilePath returns where SaveConfig writes
func ConfigFilePath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from file and environment. An empty configFile
// searches the default config directory and the working directory.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. MARQUEE_API_KEY
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so env overrides apply to keys absent from the file
	setAll(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, or to ConfigFilePath when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = ConfigFilePath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(v, cfg)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setAll sets fields individually to ensure correct key names (snake_case)
func setAll(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.language", cfg.API.Language)
	v.SetDefault("api.timeout", cfg.API.Timeout.String())
	v.SetDefault("api.requests_per_second", cfg.API.RequestsPerSecond)
	v.SetDefault("api.burst", cfg.API.Burst)

	v.SetDefault("search.result_cap", cfg.Search.ResultCap)
	v.SetDefault("search.suggestion_limit", cfg.Search.SuggestionLimit)
	v.SetDefault("search.debounce_delay", cfg.Search.DebounceDelay.String())
	v.SetDefault("search.min_suggest_length", cfg.Search.MinSuggestLength)

	v.SetDefault("feeds.strict", cfg.Feeds.Strict)

	v.SetDefault("cache.backend", cfg.Cache.Backend)
	v.SetDefault("cache.ttl", cfg.Cache.TTL.String())
	v.SetDefault("cache.redis_addr", cfg.Cache.RedisAddr)
	v.SetDefault("cache.redis_db", cfg.Cache.RedisDB)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetDefault("metrics.addr", cfg.Metrics.Addr)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
}

// IsConfigured returns true if the catalog API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.API.Key) != ""
}
