package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

var detailsCmd = &cobra.Command{
	Use:   "details <movie|tv> <id>",
	Short: "Show full details for a movie or show",
	Long: `Show details for a movie or show. --stage controls how much is fetched:
basic (detail object only), credits (adds cast and crew) or full (adds trailers,
similar titles, recommendations, artwork and social ids).`,
	Args: cobra.ExactArgs(2),
	RunE: runDetails,
}

var (
	detailsStage string
	detailsOpen  bool
)

func init() {
	detailsCmd.Flags().StringVar(&detailsStage, "stage", "full", "How much to fetch: basic, credits or full")
	detailsCmd.Flags().BoolVar(&detailsOpen, "open", false, "Open the trailer in a browser")
}

func parseStage(s string) (domain.DetailStage, error) {
	switch strings.ToLower(s) {
	case "basic":
		return domain.StageBasic, nil
	case "credits":
		return domain.StageWithCredits, nil
	case "full", "":
		return domain.StageWithMediaAndSocial, nil
	default:
		return 0, fmt.Errorf("unknown stage %q (want basic, credits or full)", s)
	}
}

func runDetails(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	stage, err := parseStage(detailsStage)
	if err != nil {
		return err
	}
	if detailsOpen && stage < domain.StageWithMediaAndSocial {
		stage = domain.StageWithMediaAndSocial
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	item, err := a.catalog.Details(cmd.Context(), kind, id, stage)
	if err != nil {
		return err
	}

	if detailsOpen {
		key := domain.TrailerKey(item.Videos)
		if key == "" {
			return fmt.Errorf("no trailer available for %s", item.DisplayTitle())
		}
		if err := a.launcher.Launch(tmdb.TrailerURL(key)); err != nil {
			return err
		}
	}

	p := newPrinter(cmd)
	if p.json {
		return p.JSON(item)
	}
	printDetails(p, item, a.favorites.IsFavorite(item.ID))
	return nil
}

func printDetails(p *printer, item *domain.DetailedItem, favorite bool) {
	title := p.render(styles.TitleStyle, item.DisplayTitle())
	if year := item.ReleaseYear(); year != "" {
		title += p.render(styles.DimStyle, " ("+year+")")
	}
	if favorite {
		title += p.render(styles.RatingStyle, " ♥")
	}
	p.Line("%s", title)

	var facts []string
	facts = append(facts, string(item.Kind))
	if item.VoteAverage > 0 {
		facts = append(facts, fmt.Sprintf("★ %s (%d votes)", formatRating(item.VoteAverage), item.VoteCount))
	}
	if rt := item.Runtime(); rt != "" {
		facts = append(facts, rt)
	}
	if info := item.Info; info != nil {
		if info.NumberOfSeasons > 0 {
			facts = append(facts, fmt.Sprintf("%d seasons", info.NumberOfSeasons))
		}
		if info.Status != "" {
			facts = append(facts, info.Status)
		}
	}
	p.Dim(strings.Join(facts, " • "))

	if info := item.Info; info != nil {
		if info.Tagline != "" {
			p.Line("%s", p.render(styles.DimStyle, "“"+info.Tagline+"”"))
		}
		if len(info.Genres) > 0 {
			names := make([]string, len(info.Genres))
			for i, g := range info.Genres {
				names[i] = g.Name
			}
			p.Line("Genres: %s", strings.Join(names, ", "))
		}
	}

	if item.Overview != "" {
		p.Line("")
		p.Line("%s", item.Overview)
	}

	p.Line("")
	p.Line("Poster:   %s", tmdb.ImageURL(item.PosterPath, tmdb.SizeW500))
	if item.BackdropPath != "" {
		p.Line("Backdrop: %s", tmdb.ImageURL(item.BackdropPath, tmdb.SizeOriginal))
	}
	if key := domain.TrailerKey(item.Videos); key != "" {
		p.Line("Trailer:  %s", tmdb.TrailerURL(key))
	}
	if ids := item.ExternalIDs; ids != nil && ids.IMDbID != "" {
		p.Line("IMDb:     https://www.imdb.com/title/%s", ids.IMDbID)
	}

	if c := item.Credits; c != nil {
		p.Line("")
		p.Header("Cast")
		for i, member := range c.Cast {
			if i == 8 {
				break
			}
			p.Line("  %s as %s", member.Name, member.Character)
		}
		var directors []string
		for _, member := range c.Crew {
			if member.Job == "Director" {
				directors = append(directors, member.Name)
			}
		}
		if len(directors) > 0 {
			p.Line("Directed by %s", strings.Join(directors, ", "))
		}
	}
	if info := item.Info; info != nil && len(info.CreatedBy) > 0 {
		names := make([]string, len(info.CreatedBy))
		for i, c := range info.CreatedBy {
			names[i] = c.Name
		}
		p.Line("Created by %s", strings.Join(names, ", "))
	}

	printRelated(p, "Similar", item.Similar)
	printRelated(p, "Recommended", item.Recommendations)
}

func printRelated(p *printer, title string, page *domain.Page) {
	if page == nil || len(page.Results) == 0 {
		return
	}
	items := page.Results
	if len(items) > 5 {
		items = items[:5]
	}
	p.Line("")
	p.Header(title)
	p.Items(items)
}
