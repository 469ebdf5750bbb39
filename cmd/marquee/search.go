package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by text and filters",
	Long: `Search movies and TV shows. A text query searches titles; without one the
catalog is discovered using the genre, year and rating filters. At least one of
a query, --genre, --year or --min-rating is required.

Sort orders: popularity.desc (default), popularity.asc, vote_average.desc,
vote_average.asc, release_date.desc, release_date.asc`,
	RunE: runSearch,
}

var (
	searchType      string
	searchGenre     string
	searchYear      int
	searchMinRating float64
	searchSort      string
	searchStrict    bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "all", "Media type: all, movie or tv")
	searchCmd.Flags().StringVarP(&searchGenre, "genre", "g", "", "Genre name or id")
	searchCmd.Flags().IntVarP(&searchYear, "year", "y", 0, "Release or first-air year")
	searchCmd.Flags().Float64VarP(&searchMinRating, "min-rating", "r", 0, "Minimum vote average (0-10)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", string(domain.SortPopularityDesc), "Sort order for discovery")
	searchCmd.Flags().BoolVar(&searchStrict, "strict", false, "Report request failures instead of an empty result")
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters := domain.SearchFilters{
		Query:     strings.TrimSpace(strings.Join(args, " ")),
		MediaType: domain.MediaTypeFilter(searchType),
		SortBy:    domain.SortBy(searchSort),
	}
	if cmd.Flags().Changed("year") {
		filters.Year = &searchYear
	}
	if cmd.Flags().Changed("min-rating") {
		filters.MinRating = &searchMinRating
	}
	if err := filters.Validate(); err != nil {
		return err
	}
	if !filters.IsActive() && searchGenre == "" {
		return errors.New("nothing to search: give a query or one of --genre, --year, --min-rating")
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	if searchGenre != "" {
		// Genre ids differ between catalogs; names resolve against the movie list
		// unless only shows are searched.
		kind := domain.MediaKindMovie
		if filters.MediaType == domain.FilterTV {
			kind = domain.MediaKindTV
		}
		genre, err := a.catalog.ResolveGenre(cmd.Context(), kind, searchGenre)
		if err != nil {
			return fmt.Errorf("failed to resolve genre: %w", err)
		}
		a.logger.Debug("resolved genre", "input", searchGenre, "id", genre.ID, "name", genre.Name)
		filters.Genre = &genre.ID
	}

	var items []domain.CatalogItem
	if searchStrict {
		items, err = a.search.SearchStrict(cmd.Context(), filters)
		if err != nil {
			return err
		}
	} else {
		items = a.search.Search(cmd.Context(), filters)
	}

	return newPrinter(cmd).Items(items)
}
