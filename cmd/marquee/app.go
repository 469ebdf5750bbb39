package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/identity"
	"github.com/mmcdole/marquee/internal/metrics"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
)

// app wires the services one command invocation needs
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	logFile io.Closer

	slots     *store.SlotStore
	identity  *identity.LocalProvider
	favorites *favorites.Service
	session   *session.Session
	launcher  *adapter.Launcher

	// Only set when the command talks to the remote catalog
	repo    domain.CatalogRepository
	catalog *catalog.Service
	search  *search.Service

	metricsSrv *http.Server
}

// newApp loads configuration and builds the services. withCatalog also creates the
// remote catalog client, which requires an API key.
func newApp(withCatalog bool) (*app, error) {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg}

	logger, logFile, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		a.logFile = logFile
	}
	slog.SetDefault(logger)
	a.logger = logger

	logger.Info("starting marquee", "version", Version)

	storePath, err := expandPath(cfg.Store.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.slots = store.NewSlotStore(storePath)
	if err := a.slots.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a.identity = identity.NewLocalProvider(a.slots, logger)
	a.favorites = favorites.NewService(a.slots, logger)
	a.launcher = adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)

	if withCatalog {
		repo, err := source.NewCatalogFromConfig(cfg, logger)
		if err != nil {
			a.Close()
			if errors.Is(err, domain.ErrNotConfigured) {
				return nil, fmt.Errorf("%w: run 'marquee config init' or set MARQUEE_API_KEY", err)
			}
			return nil, err
		}
		a.repo = repo
		a.catalog = catalog.NewService(repo, logger)
		a.search = search.NewService(repo, cfg.Search.ResultCap, logger)
		a.startMetrics()
	}

	a.session = session.New(a.identity, a.catalog, a.favorites, cfg.Feeds.Strict, logger)
	return a, nil
}

// requireUser gates catalog and favorites commands behind sign-in
func (a *app) requireUser() (domain.User, error) {
	user, err := a.session.Require()
	if errors.Is(err, domain.ErrNotSignedIn) {
		return user, fmt.Errorf("%w: run 'marquee login' first", err)
	}
	return user, err
}

// startMetrics serves Prometheus metrics for the lifetime of the command
func (a *app) startMetrics() {
	if a.cfg.Metrics.Addr == "" {
		return
	}

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.metricsSrv = &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("serving metrics", "addr", a.cfg.Metrics.Addr)
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
}

// Close releases everything newApp opened
func (a *app) Close() {
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.metricsSrv.Shutdown(ctx); err != nil {
			a.logger.Warn("failed to stop metrics server", "error", err)
		}
		cancel()
	}
	if a.slots != nil {
		if err := a.slots.Close(); err != nil {
			a.logger.Error("failed to close local store", "error", err)
		}
	}
	if a.logger != nil {
		a.logger.Info("shutting down")
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
