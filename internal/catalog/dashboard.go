package catalog

import (
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// FeedResult is one dashboard slot. Exactly one of Items or Err is meaningful.
type FeedResult struct {
	Feed  Feed
	Items []domain.CatalogItem
	Err   error
}

// OK reports whether the feed loaded
func (r FeedResult) OK() bool {
	return r.Err == nil
}

// Dashboard holds every feed slot in display order
type Dashboard struct {
	Feeds []FeedResult
}

// Feed returns the slot for id
func (d *Dashboard) Feed(id FeedID) (FeedResult, bool) {
	for _, r := range d.Feeds {
		if r.Feed.ID == id {
			return r, true
		}
	}
	return FeedResult{}, false
}

// Items returns the items of a loaded feed, nil if it failed or is unknown
func (d *Dashboard) Items(id FeedID) []domain.CatalogItem {
	r, ok := d.Feed(id)
	if !ok || !r.OK() {
		return nil
	}
	return r.Items
}

// Err joins the errors of all failed feeds, or returns nil when every feed loaded
func (d *Dashboard) Err() error {
	var errs []error
	for _, r := range d.Feeds {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Feed.ID, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Hero picks the featured item: the first trending movie, else the first popular movie
func (d *Dashboard) Hero() (domain.CatalogItem, bool) {
	for _, id := range []FeedID{FeedTrendingMovies, FeedPopularMovies} {
		if items := d.Items(id); len(items) > 0 {
			return items[0], true
		}
	}
	return domain.CatalogItem{}, false
}

// Match is a dashboard item found by Find
type Match struct {
	Item           domain.CatalogItem
	MatchedIndexes []int
}

// dashboardSource adapts unique dashboard items to fuzzy.Source
type dashboardSource []domain.CatalogItem

func (s dashboardSource) String(i int) string { return s[i].DisplayTitle() }
func (s dashboardSource) Len() int            { return len(s) }

// Find fuzzy-matches query against the titles of every loaded item, best first.
// Items appearing in several feeds are considered once.
func (d *Dashboard) Find(query string) []Match {
	if query == "" {
		return nil
	}

	var all []domain.CatalogItem
	for _, r := range d.Feeds {
		if r.OK() {
			all = append(all, r.Items...)
		}
	}
	src := dashboardSource(domain.Dedupe(all))

	found := fuzzy.FindFrom(query, src)
	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{Item: src[m.Index], MatchedIndexes: m.MatchedIndexes}
	}
	return out
}
