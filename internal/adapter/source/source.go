package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
)

// CatalogConfig contains the configuration needed to create a catalog source
type CatalogConfig struct {
	API   adapter.APIConfig
	Cache adapter.CacheConfig
}

// NewCatalog creates the catalog repository together with its response cache.
// This factory function keeps callers unaware of the backend implementation.
func NewCatalog(cfg *CatalogConfig, logger *slog.Logger) (domain.CatalogRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.API.Key == "" {
		return nil, domain.ErrNotConfigured
	}

	c, err := cache.New(cache.Options{
		Backend:   cfg.Cache.Backend,
		TTL:       cfg.Cache.TTL,
		RedisAddr: cfg.Cache.RedisAddr,
		RedisDB:   cfg.Cache.RedisDB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}
	if c == nil {
		logger.Debug("response cache disabled")
	}

	return tmdb.NewClient(tmdb.Config{
		APIKey:            cfg.API.Key,
		BaseURL:           cfg.API.BaseURL,
		Language:          cfg.API.Language,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Cache:             c,
	}, logger), nil
}

// NewCatalogFromConfig creates a catalog repository from the application config
func NewCatalogFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.CatalogRepository, error) {
	return NewCatalog(&CatalogConfig{
		API:   cfg.API,
		Cache: cfg.Cache,
	}, logger)
}
