package search

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// DefaultResultCap bounds every aggregated search result list
const DefaultResultCap = 20

// Query is one remote call resolved from a set of filters
type Query struct {
	Endpoint string
	Params   domain.Params
	Kind     domain.MediaKind // Kind assumed for results; empty for multi search
}

// Resolve maps filters to the remote calls that answer them:
//
//	query + all   -> one multi search (people dropped during normalization)
//	query + movie -> one movie search
//	query + tv    -> one tv search
//	no query      -> discovery for movie, tv, or both (movie first)
//
// Text searches ignore genre, year and rating. Discovery maps the year to
// primary_release_year for movies and first_air_date_year for shows.
func Resolve(filters domain.SearchFilters) []Query {
	f := filters.Normalized()
	query := strings.TrimSpace(f.Query)

	if query != "" {
		params := domain.Params{"query": query, "page": 1}
		switch f.MediaType {
		case domain.FilterMovie:
			return []Query{{Endpoint: tmdb.PathSearchMovie, Params: params, Kind: domain.MediaKindMovie}}
		case domain.FilterTV:
			return []Query{{Endpoint: tmdb.PathSearchTV, Params: params, Kind: domain.MediaKindTV}}
		default:
			return []Query{{Endpoint: tmdb.PathSearchMulti, Params: params}}
		}
	}

	var queries []Query
	if f.MediaType != domain.FilterTV {
		queries = append(queries, discover(f, domain.MediaKindMovie))
	}
	if f.MediaType != domain.FilterMovie {
		queries = append(queries, discover(f, domain.MediaKindTV))
	}
	return queries
}

func discover(f domain.SearchFilters, kind domain.MediaKind) Query {
	params := domain.Params{
		"sort_by": string(f.SortBy),
		"page":    1,
	}
	// Zero values are treated as unset
	if f.Genre != nil && *f.Genre != 0 {
		params["with_genres"] = *f.Genre
	}
	if f.Year != nil && *f.Year != 0 {
		if kind == domain.MediaKindTV {
			params["first_air_date_year"] = *f.Year
		} else {
			params["primary_release_year"] = *f.Year
		}
	}
	if f.MinRating != nil && *f.MinRating != 0 {
		params["vote_average.gte"] = *f.MinRating
	}
	return Query{Endpoint: tmdb.DiscoverPath(kind), Params: params, Kind: kind}
}

// Service runs filtered searches against the catalog
type Service struct {
	repo      domain.CatalogRepository
	resultCap int
	logger    *slog.Logger
}

// NewService creates a search service. A resultCap <= 0 uses DefaultResultCap.
func NewService(repo domain.CatalogRepository, resultCap int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if resultCap <= 0 {
		resultCap = DefaultResultCap
	}
	return &Service{
		repo:      repo,
		resultCap: resultCap,
		logger:    logger,
	}
}

// Search returns the aggregated results for filters. Failures are logged and
// yield an empty list.
func (s *Service) Search(ctx context.Context, filters domain.SearchFilters) []domain.CatalogItem {
	results, err := s.SearchStrict(ctx, filters)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("search failed", "query", filters.Query, "error", err)
		}
		return []domain.CatalogItem{}
	}
	return results
}

// SearchStrict is Search but reports the first failure instead of an empty list.
//
// Branch results are concatenated in resolution order (movies before shows), items
// below the minimum rating are dropped, duplicates by (kind, id) keep their first
// occurrence, and the list is truncated to the result cap. There is no re-ranking.
func (s *Service) SearchStrict(ctx context.Context, filters domain.SearchFilters) ([]domain.CatalogItem, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	queries := Resolve(filters)
	pages := make([]*domain.Page, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			page, err := s.repo.FetchCatalogPage(gctx, q.Endpoint, q.Params, q.Kind)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.CatalogItem
	for _, page := range pages {
		merged = append(merged, page.Results...)
	}

	if filters.MinRating != nil && *filters.MinRating != 0 {
		floor := *filters.MinRating
		kept := merged[:0]
		for _, item := range merged {
			if item.VoteAverage >= floor {
				kept = append(kept, item)
			}
		}
		merged = kept
	}

	results := domain.Dedupe(merged)
	if len(results) > s.resultCap {
		results = results[:s.resultCap]
	}
	return results, nil
}
