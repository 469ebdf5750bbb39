package domain

import (
	"fmt"
	"strconv"
)

// MediaKind distinguishes content kinds returned by the catalog
type MediaKind string

const (
	MediaKindMovie  MediaKind = "movie"
	MediaKindTV     MediaKind = "tv"
	MediaKindPerson MediaKind = "person" // Only appears in suggestions
)

// IsCatalog reports whether the kind is one of the browsable catalog kinds (movie or tv)
func (k MediaKind) IsCatalog() bool {
	return k == MediaKindMovie || k == MediaKindTV
}

// ParseMediaKind converts a raw string into a catalog media kind
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case MediaKindMovie:
		return MediaKindMovie, nil
	case MediaKindTV:
		return MediaKindTV, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// ItemKey identifies a catalog entity. Movies and shows may share numeric IDs.
type ItemKey struct {
	Kind MediaKind
	ID   int
}

func (k ItemKey) String() string {
	return string(k.Kind) + ":" + strconv.Itoa(k.ID)
}

// CatalogItem is the normalized shape of every movie or show returned by the catalog
type CatalogItem struct {
	ID               int       `json:"id"`
	Kind             MediaKind `json:"media_type"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`   // Relative image path, empty when absent
	BackdropPath     string    `json:"backdrop_path"` // Relative image path, empty when absent
	ReleaseDate      string    `json:"release_date"`  // ISO date or empty
	VoteAverage      float64   `json:"vote_average"`  // 0-10
	VoteCount        int       `json:"vote_count"`
	Popularity       float64   `json:"popularity"`
	GenreIDs         []int     `json:"genre_ids"`
	OriginalLanguage string    `json:"original_language"`
	Adult            bool      `json:"adult"`
}

// Key returns the (kind, id) identity of the item
func (c CatalogItem) Key() ItemKey {
	return ItemKey{Kind: c.Kind, ID: c.ID}
}

// DisplayTitle returns the title, or a fixed fallback for untitled entries
func (c CatalogItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "Unknown Title"
}

// ReleaseYear returns the four digit year of the release date, or "" if unknown
func (c CatalogItem) ReleaseYear() string {
	if len(c.ReleaseDate) < 4 {
		return ""
	}
	year := c.ReleaseDate[:4]
	if _, err := strconv.Atoi(year); err != nil {
		return ""
	}
	return year
}

// Page is one page of catalog results
type Page struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// Genre is a named catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Suggestion is a lightweight autocomplete entry. Unlike CatalogItem it may be a person.
type Suggestion struct {
	ID          int       `json:"id"`
	Kind        MediaKind `json:"media_type"`
	Title       string    `json:"title"`
	ImagePath   string    `json:"image_path"` // Poster for titles, profile for people
	ReleaseDate string    `json:"release_date"`
}

// Dedupe removes entries that share a (kind, id) identity, keeping the first occurrence
// and preserving order.
func Dedupe(items []CatalogItem) []CatalogItem {
	seen := make(map[ItemKey]bool, len(items))
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		key := item.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
