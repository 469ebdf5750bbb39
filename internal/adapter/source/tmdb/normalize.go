package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// Normalize converts a raw list entry into a CatalogItem. The payload's media_type wins
// when present; otherwise the endpoint-implied kind is used. Absent fields become
// explicit zero values.
func Normalize(raw RawItem, assumed domain.MediaKind) domain.CatalogItem {
	kind := assumed
	if raw.MediaType != nil && *raw.MediaType != "" {
		kind = domain.MediaKind(*raw.MediaType)
	}

	genres := raw.GenreIDs
	if genres == nil {
		genres = []int{}
	}

	return domain.CatalogItem{
		ID:               raw.ID,
		Kind:             kind,
		Title:            firstNonEmpty(raw.Title, raw.Name),
		Overview:         str(raw.Overview),
		PosterPath:       str(raw.PosterPath),
		BackdropPath:     str(raw.BackdropPath),
		ReleaseDate:      firstNonEmpty(raw.ReleaseDate, raw.FirstAirDate),
		VoteAverage:      f64(raw.VoteAverage),
		VoteCount:        intOr(raw.VoteCount),
		Popularity:       f64(raw.Popularity),
		GenreIDs:         genres,
		OriginalLanguage: str(raw.OriginalLanguage),
		Adult:            raw.Adult != nil && *raw.Adult,
	}
}

// NormalizePage normalizes every entry and drops those whose kind is not movie or tv
// (people from multi search, or entries with no kind at all)
func NormalizePage(raw *RawPage, assumed domain.MediaKind) *domain.Page {
	page := &domain.Page{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Results:      make([]domain.CatalogItem, 0, len(raw.Results)),
	}
	for _, r := range raw.Results {
		item := Normalize(r, assumed)
		if !item.Kind.IsCatalog() {
			continue
		}
		page.Results = append(page.Results, item)
	}
	return page
}

// NormalizeSuggestion converts a multi-search entry into a Suggestion. ok is false for
// kinds other than movie, tv and person.
func NormalizeSuggestion(raw RawItem) (domain.Suggestion, bool) {
	if raw.MediaType == nil {
		return domain.Suggestion{}, false
	}
	kind := domain.MediaKind(*raw.MediaType)
	if !kind.IsCatalog() && kind != domain.MediaKindPerson {
		return domain.Suggestion{}, false
	}

	image := str(raw.PosterPath)
	if image == "" {
		image = str(raw.ProfilePath)
	}

	return domain.Suggestion{
		ID:          raw.ID,
		Kind:        kind,
		Title:       firstNonEmpty(raw.Title, raw.Name),
		ImagePath:   image,
		ReleaseDate: firstNonEmpty(raw.ReleaseDate, raw.FirstAirDate),
	}, true
}

// NormalizeDetail promotes a raw detail object into a DetailedItem with Info populated
func NormalizeDetail(raw RawDetail, kind domain.MediaKind) domain.DetailedItem {
	return domain.DetailedItem{
		CatalogItem: Normalize(raw.RawItem, kind),
		Info: &domain.DetailInfo{
			Runtime:             raw.Runtime,
			EpisodeRunTime:      raw.EpisodeRunTime,
			NumberOfSeasons:     raw.NumberOfSeasons,
			NumberOfEpisodes:    raw.NumberOfEpisodes,
			Genres:              raw.Genres,
			Tagline:             raw.Tagline,
			Status:              raw.Status,
			Homepage:            raw.Homepage,
			IMDbID:              raw.IMDbID,
			Budget:              raw.Budget,
			Revenue:             raw.Revenue,
			LastAirDate:         raw.LastAirDate,
			InProduction:        raw.InProduction,
			Type:                raw.Type,
			Networks:            raw.Networks,
			ProductionCompanies: raw.ProductionCompanies,
			ProductionCountries: raw.ProductionCountries,
			SpokenLanguages:     raw.SpokenLanguages,
			CreatedBy:           raw.CreatedBy,
		},
	}
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func f64(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOr(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
