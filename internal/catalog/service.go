package catalog

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/metrics"
)

// Service aggregates catalog feeds, details and genre listings.
type Service struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo domain.CatalogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// LoadDashboard fetches every feed concurrently. Each feed lands in its own slot; a
// failing feed does not affect the others.
func (s *Service) LoadDashboard(ctx context.Context) *Dashboard {
	dash := &Dashboard{Feeds: make([]FeedResult, len(Feeds))}

	var wg sync.WaitGroup
	for i, feed := range Feeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := s.fetchFeed(ctx, feed, 1)
			if err != nil {
				metrics.FeedFailuresTotal.WithLabelValues(string(feed.ID)).Inc()
				s.logger.Error("failed to load feed", "feed", feed.ID, "error", err)
			}
			dash.Feeds[i] = FeedResult{Feed: feed, Items: items, Err: err}
		}()
	}
	wg.Wait()

	s.logger.Debug("loaded dashboard", "feeds", len(Feeds))
	return dash
}

// LoadDashboardStrict fetches every feed concurrently and fails as a whole if any
// single feed fails, returning no partial dashboard.
func (s *Service) LoadDashboardStrict(ctx context.Context) (*Dashboard, error) {
	dash := &Dashboard{Feeds: make([]FeedResult, len(Feeds))}

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range Feeds {
		g.Go(func() error {
			items, err := s.fetchFeed(gctx, feed, 1)
			if err != nil {
				metrics.FeedFailuresTotal.WithLabelValues(string(feed.ID)).Inc()
				return err
			}
			dash.Feeds[i] = FeedResult{Feed: feed, Items: items}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard", "error", err)
		return nil, err
	}
	return dash, nil
}

// LoadFeed fetches one page of a single feed
func (s *Service) LoadFeed(ctx context.Context, id FeedID, page int) ([]domain.CatalogItem, error) {
	feed, ok := LookupFeed(id)
	if !ok {
		return nil, &UnknownFeedError{ID: id}
	}
	return s.fetchFeed(ctx, feed, page)
}

func (s *Service) fetchFeed(ctx context.Context, feed Feed, page int) ([]domain.CatalogItem, error) {
	var params domain.Params
	if page > 1 {
		params = domain.Params{"page": page}
	}
	p, err := s.repo.FetchCatalogPage(ctx, feed.Endpoint, params, feed.Kind)
	if err != nil {
		return nil, err
	}
	return domain.Dedupe(p.Results), nil
}

// UnknownFeedError is returned for a feed id outside Feeds
type UnknownFeedError struct {
	ID FeedID
}

func (e *UnknownFeedError) Error() string {
	return "unknown feed " + string(e.ID)
}
