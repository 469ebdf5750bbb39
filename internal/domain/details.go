package domain

import "fmt"

// DetailStage describes how much of a DetailedItem has been populated
type DetailStage int

const (
	StageBasic DetailStage = iota
	StageWithCredits
	StageWithMediaAndSocial
)

// String returns a human-readable representation of the stage
func (s DetailStage) String() string {
	switch s {
	case StageBasic:
		return "Basic"
	case StageWithCredits:
		return "WithCredits"
	case StageWithMediaAndSocial:
		return "WithMediaAndSocial"
	default:
		return "Unknown"
	}
}

// DetailedItem is a CatalogItem promoted on demand with detail-only data.
// Each optional part is nil until its sub-request has been applied.
type DetailedItem struct {
	CatalogItem

	Info            *DetailInfo  `json:"info,omitempty"`
	Credits         *Credits     `json:"credits,omitempty"`
	Videos          []Video      `json:"videos,omitempty"`
	Similar         *Page        `json:"similar,omitempty"`
	Recommendations *Page        `json:"recommendations,omitempty"`
	Images          *ImageSet    `json:"images,omitempty"`
	ExternalIDs     *ExternalIDs `json:"external_ids,omitempty"`
}

// Stage derives the completeness stage from which parts are present
func (d *DetailedItem) Stage() DetailStage {
	if d.Credits == nil {
		return StageBasic
	}
	if d.Videos == nil || d.Images == nil || d.ExternalIDs == nil {
		return StageWithCredits
	}
	return StageWithMediaAndSocial
}

// Runtime returns "2h 5m" for movies or "45m per episode" for shows, "" when unknown
func (d *DetailedItem) Runtime() string {
	if d.Info == nil {
		return ""
	}
	switch d.Kind {
	case MediaKindMovie:
		if d.Info.Runtime > 0 {
			return fmt.Sprintf("%dh %dm", d.Info.Runtime/60, d.Info.Runtime%60)
		}
	case MediaKindTV:
		if len(d.Info.EpisodeRunTime) > 0 {
			return fmt.Sprintf("%dm per episode", d.Info.EpisodeRunTime[0])
		}
	}
	return ""
}

// DetailInfo holds fields only present on the detail endpoint
type DetailInfo struct {
	Runtime             int        `json:"runtime,omitempty"`          // Minutes, movies only
	EpisodeRunTime      []int      `json:"episode_run_time,omitempty"` // Minutes, shows only
	NumberOfSeasons     int        `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes    int        `json:"number_of_episodes,omitempty"`
	Genres              []Genre    `json:"genres,omitempty"`
	Tagline             string     `json:"tagline,omitempty"`
	Status              string     `json:"status,omitempty"`
	Homepage            string     `json:"homepage,omitempty"`
	IMDbID              string     `json:"imdb_id,omitempty"`
	Budget              int64      `json:"budget,omitempty"`
	Revenue             int64      `json:"revenue,omitempty"`
	LastAirDate         string     `json:"last_air_date,omitempty"`
	InProduction        bool       `json:"in_production,omitempty"`
	Type                string     `json:"type,omitempty"`
	Networks            []Company  `json:"networks,omitempty"`
	ProductionCompanies []Company  `json:"production_companies,omitempty"`
	ProductionCountries []Country  `json:"production_countries,omitempty"`
	SpokenLanguages     []Language `json:"spoken_languages,omitempty"`
	CreatedBy           []Creator  `json:"created_by,omitempty"`
}

// Company is a network or production company
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// Country is a production country
type Country struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// Language is a spoken language
type Language struct {
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// Creator is a series creator
type Creator struct {
	ID          int    `json:"id"`
	CreditID    string `json:"credit_id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Credits lists cast and crew
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is an actor credit
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// CrewMember is a crew credit
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Video is a trailer-like entry
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

// ImageSet lists additional artwork
type ImageSet struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// Image is one artwork entry
type Image struct {
	FilePath    string  `json:"file_path"`
	AspectRatio float64 `json:"aspect_ratio"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

// ExternalIDs holds social and IMDb identifiers
type ExternalIDs struct {
	IMDbID      string `json:"imdb_id,omitempty"`
	FacebookID  string `json:"facebook_id,omitempty"`
	InstagramID string `json:"instagram_id,omitempty"`
	TwitterID   string `json:"twitter_id,omitempty"`
}

// TrailerKey picks the best video key: official YouTube trailer, then any YouTube
// trailer, then any YouTube video. Returns "" if none qualify.
func TrailerKey(videos []Video) string {
	pick := func(match func(Video) bool) string {
		for _, v := range videos {
			if match(v) {
				return v.Key
			}
		}
		return ""
	}
	if key := pick(func(v Video) bool { return v.Type == "Trailer" && v.Site == "YouTube" && v.Official }); key != "" {
		return key
	}
	if key := pick(func(v Video) bool { return v.Type == "Trailer" && v.Site == "YouTube" }); key != "" {
		return key
	}
	return pick(func(v Video) bool { return v.Site == "YouTube" })
}
