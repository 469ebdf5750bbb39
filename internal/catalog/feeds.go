package catalog

import (
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// FeedID names one of the fixed dashboard feeds
type FeedID string

const (
	FeedTrendingMovies FeedID = "trending-movies"
	FeedTrendingTV     FeedID = "trending-tv"
	FeedPopularMovies  FeedID = "popular-movies"
	FeedPopularTV      FeedID = "popular-tv"
	FeedTopRatedMovies FeedID = "top-rated-movies"
	FeedTopRatedTV     FeedID = "top-rated-tv"
	FeedNowPlaying     FeedID = "now-playing"
	FeedUpcoming       FeedID = "upcoming"
	FeedOnTheAir       FeedID = "on-the-air"
	FeedAiringToday    FeedID = "airing-today"
)

// Feed is an unfiltered catalog list shown on the dashboard
type Feed struct {
	ID       FeedID
	Title    string
	Endpoint string
	Kind     domain.MediaKind
}

// Feeds lists the dashboard feeds in display order
var Feeds = []Feed{
	{FeedTrendingMovies, "Trending Movies", tmdb.PathTrendingMovies, domain.MediaKindMovie},
	{FeedTrendingTV, "Trending TV Shows", tmdb.PathTrendingTV, domain.MediaKindTV},
	{FeedPopularMovies, "Popular Movies", tmdb.PathPopularMovies, domain.MediaKindMovie},
	{FeedPopularTV, "Popular TV Shows", tmdb.PathPopularTV, domain.MediaKindTV},
	{FeedTopRatedMovies, "Top Rated Movies", tmdb.PathTopRatedMovies, domain.MediaKindMovie},
	{FeedTopRatedTV, "Top Rated TV Shows", tmdb.PathTopRatedTV, domain.MediaKindTV},
	{FeedNowPlaying, "Now Playing", tmdb.PathNowPlaying, domain.MediaKindMovie},
	{FeedUpcoming, "Upcoming", tmdb.PathUpcoming, domain.MediaKindMovie},
	{FeedOnTheAir, "On The Air", tmdb.PathOnTheAir, domain.MediaKindTV},
	{FeedAiringToday, "Airing Today", tmdb.PathAiringToday, domain.MediaKindTV},
}

// LookupFeed returns the feed with id
func LookupFeed(id FeedID) (Feed, bool) {
	for _, f := range Feeds {
		if f.ID == id {
			return f, true
		}
	}
	return Feed{}, false
}
