package tmdb

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Catalog endpoint paths
const (
	PathTrendingMovies = "/trending/movie/week"
	PathTrendingTV     = "/trending/tv/week"
	PathPopularMovies  = "/movie/popular"
	PathPopularTV      = "/tv/popular"
	PathTopRatedMovies = "/movie/top_rated"
	PathTopRatedTV     = "/tv/top_rated"
	PathNowPlaying     = "/movie/now_playing"
	PathUpcoming       = "/movie/upcoming"
	PathOnTheAir       = "/tv/on_the_air"
	PathAiringToday    = "/tv/airing_today"

	PathSearchMulti = "/search/multi"
	PathSearchMovie = "/search/movie"
	PathSearchTV    = "/search/tv"

	PathDiscoverMovie = "/discover/movie"
	PathDiscoverTV    = "/discover/tv"
)

// Detail sub-resources appended to /{kind}/{id}
const (
	SubCredits         = "credits"
	SubVideos          = "videos"
	SubSimilar         = "similar"
	SubRecommendations = "recommendations"
	SubImages          = "images"
	SubExternalIDs     = "external_ids"
)

// DetailPath returns /{kind}/{id} or /{kind}/{id}/{sub} when sub is non-empty
func DetailPath(kind domain.MediaKind, id int, sub string) string {
	if sub == "" {
		return fmt.Sprintf("/%s/%d", kind, id)
	}
	return fmt.Sprintf("/%s/%d/%s", kind, id, sub)
}

// GenreListPath returns /genre/{kind}/list
func GenreListPath(kind domain.MediaKind) string {
	return fmt.Sprintf("/genre/%s/list", kind)
}

// DiscoverPath returns the discovery endpoint for a kind
func DiscoverPath(kind domain.MediaKind) string {
	if kind == domain.MediaKindTV {
		return PathDiscoverTV
	}
	return PathDiscoverMovie
}

// endpointGroup collapses numeric path segments so metric labels stay bounded
func endpointGroup(endpoint string) string {
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
