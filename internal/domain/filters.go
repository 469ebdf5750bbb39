package domain

import "fmt"

// MediaTypeFilter selects which catalogs a search runs against
type MediaTypeFilter string

const (
	FilterAll   MediaTypeFilter = "all"
	FilterMovie MediaTypeFilter = "movie"
	FilterTV    MediaTypeFilter = "tv"
)

// SortBy is one of the fixed discovery sort orders
type SortBy string

const (
	SortPopularityDesc  SortBy = "popularity.desc"
	SortPopularityAsc   SortBy = "popularity.asc"
	SortVoteAverageDesc SortBy = "vote_average.desc"
	SortVoteAverageAsc  SortBy = "vote_average.asc"
	SortReleaseDateDesc SortBy = "release_date.desc"
	SortReleaseDateAsc  SortBy = "release_date.asc"
)

// SortOptions lists every accepted sort order, default first
var SortOptions = []SortBy{
	SortPopularityDesc,
	SortPopularityAsc,
	SortVoteAverageDesc,
	SortVoteAverageAsc,
	SortReleaseDateDesc,
	SortReleaseDateAsc,
}

// Valid reports whether s is one of SortOptions
func (s SortBy) Valid() bool {
	for _, opt := range SortOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// SearchFilters describes one search invocation. Optional numeric constraints are nil
// when unset.
type SearchFilters struct {
	Query     string
	MediaType MediaTypeFilter
	Genre     *int
	Year      *int
	MinRating *float64
	SortBy    SortBy
}

// Normalized returns a copy with defaults applied (mediaType all, sort popularity.desc)
func (f SearchFilters) Normalized() SearchFilters {
	if f.MediaType == "" {
		f.MediaType = FilterAll
	}
	if f.SortBy == "" {
		f.SortBy = SortPopularityDesc
	}
	return f
}

// Validate checks enum fields and numeric ranges
func (f SearchFilters) Validate() error {
	n := f.Normalized()
	switch n.MediaType {
	case FilterAll, FilterMovie, FilterTV:
	default:
		return fmt.Errorf("%w: media type %q", ErrInvalidFilters, n.MediaType)
	}
	if !n.SortBy.Valid() {
		return fmt.Errorf("%w: sort %q", ErrInvalidFilters, n.SortBy)
	}
	if n.MinRating != nil && (*n.MinRating < 0 || *n.MinRating > 10) {
		return fmt.Errorf("%w: min rating %.1f out of range", ErrInvalidFilters, *n.MinRating)
	}
	return nil
}

// IsActive reports whether the filters warrant a search: a query or any of
// genre/year/min rating. Media type and sort alone do not.
func (f SearchFilters) IsActive() bool {
	return f.Query != "" || f.Genre != nil || f.Year != nil || f.MinRating != nil
}
