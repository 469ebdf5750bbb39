package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// RawPage is the envelope returned by list endpoints
type RawPage struct {
	Page         int       `json:"page"`
	Results      []RawItem `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// RawItem is a list entry as the API sends it. Pointer fields distinguish absent from empty.
type RawItem struct {
	ID               int      `json:"id"`
	MediaType        *string  `json:"media_type,omitempty"`
	Title            *string  `json:"title,omitempty"`
	Name             *string  `json:"name,omitempty"`
	Overview         *string  `json:"overview,omitempty"`
	PosterPath       *string  `json:"poster_path,omitempty"`
	BackdropPath     *string  `json:"backdrop_path,omitempty"`
	ProfilePath      *string  `json:"profile_path,omitempty"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
	FirstAirDate     *string  `json:"first_air_date,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
	VoteCount        *int     `json:"vote_count,omitempty"`
	Popularity       *float64 `json:"popularity,omitempty"`
	GenreIDs         []int    `json:"genre_ids,omitempty"`
	OriginalLanguage *string  `json:"original_language,omitempty"`
	Adult            *bool    `json:"adult,omitempty"`
}

// RawDetail is the flat detail object for /movie/{id} and /tv/{id}
type RawDetail struct {
	RawItem

	Runtime             int               `json:"runtime"`
	EpisodeRunTime      []int             `json:"episode_run_time"`
	NumberOfSeasons     int               `json:"number_of_seasons"`
	NumberOfEpisodes    int               `json:"number_of_episodes"`
	Genres              []domain.Genre    `json:"genres"`
	Tagline             string            `json:"tagline"`
	Status              string            `json:"status"`
	Homepage            string            `json:"homepage"`
	IMDbID              string            `json:"imdb_id"`
	Budget              int64             `json:"budget"`
	Revenue             int64             `json:"revenue"`
	LastAirDate         string            `json:"last_air_date"`
	InProduction        bool              `json:"in_production"`
	Type                string            `json:"type"`
	Networks            []domain.Company  `json:"networks"`
	ProductionCompanies []domain.Company  `json:"production_companies"`
	ProductionCountries []domain.Country  `json:"production_countries"`
	SpokenLanguages     []domain.Language `json:"spoken_languages"`
	CreatedBy           []domain.Creator  `json:"created_by"`
}

// GenreList is the /genre/{kind}/list response
type GenreList struct {
	Genres []domain.Genre `json:"genres"`
}

// VideoList is the /{kind}/{id}/videos response
type VideoList struct {
	Results []domain.Video `json:"results"`
}
