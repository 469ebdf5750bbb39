package source

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

func TestNewCatalog(t *testing.T) {
	if _, err := NewCatalog(nil, nil); err == nil {
		t.Error("NewCatalog(nil) succeeded")
	}

	_, err := NewCatalog(&CatalogConfig{}, adapter.NullLogger())
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("missing key error = %v, want ErrNotConfigured", err)
	}

	_, err = NewCatalog(&CatalogConfig{
		API:   adapter.APIConfig{Key: "k"},
		Cache: adapter.CacheConfig{Backend: "memcached", TTL: time.Minute},
	}, adapter.NullLogger())
	if err == nil {
		t.Error("unknown cache backend accepted")
	}

	repo, err := NewCatalog(&CatalogConfig{
		API:   adapter.APIConfig{Key: "k"},
		Cache: adapter.CacheConfig{Backend: "memory", TTL: time.Minute},
	}, adapter.NullLogger())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if _, ok := repo.(*tmdb.Client); !ok {
		t.Errorf("NewCatalog() returned %T, want *tmdb.Client", repo)
	}
}

func TestNewCatalogFromConfig(t *testing.T) {
	cfg := adapter.DefaultConfig()
	cfg.API.Key = "k"
	cfg.Cache.Backend = "none"

	if _, err := NewCatalogFromConfig(cfg, adapter.NullLogger()); err != nil {
		t.Errorf("NewCatalogFromConfig() error = %v", err)
	}
}
