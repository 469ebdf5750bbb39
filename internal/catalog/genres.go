package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// Genres returns the genre list for a media kind
func (s *Service) Genres(ctx context.Context, kind domain.MediaKind) ([]domain.Genre, error) {
	var list tmdb.GenreList
	if err := s.repo.FetchJSON(ctx, tmdb.GenreListPath(kind), nil, &list); err != nil {
		s.logger.Error("failed to fetch genres", "kind", kind, "error", err)
		return nil, err
	}
	if list.Genres == nil {
		list.Genres = []domain.Genre{}
	}
	return list.Genres, nil
}

// ResolveGenre finds a genre by numeric id or by (fuzzy, case-insensitive) name
func (s *Service) ResolveGenre(ctx context.Context, kind domain.MediaKind, name string) (domain.Genre, error) {
	genres, err := s.Genres(ctx, kind)
	if err != nil {
		return domain.Genre{}, err
	}
	return matchGenre(genres, name)
}

func matchGenre(genres []domain.Genre, name string) (domain.Genre, error) {
	name = strings.TrimSpace(name)
	if id, err := strconv.Atoi(name); err == nil {
		for _, g := range genres {
			if g.ID == id {
				return g, nil
			}
		}
		return domain.Genre{}, fmt.Errorf("no genre with id %d", id)
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
		names[i] = g.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		return domain.Genre{}, fmt.Errorf("no genre matching %q", name)
	}
	sort.Sort(ranks)
	return genres[ranks[0].OriginalIndex], nil
}

// ByGenre discovers the most popular titles of a kind within a genre
func (s *Service) ByGenre(ctx context.Context, kind domain.MediaKind, genreID int) ([]domain.CatalogItem, error) {
	params := domain.Params{
		"with_genres": genreID,
		"sort_by":     string(domain.SortPopularityDesc),
	}
	page, err := s.repo.FetchCatalogPage(ctx, tmdb.DiscoverPath(kind), params, kind)
	if err != nil {
		return nil, err
	}
	return domain.Dedupe(page.Results), nil
}
