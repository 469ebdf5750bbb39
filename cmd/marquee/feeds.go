package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Show the dashboard feeds, or one page of a single feed",
	Long: `Show the dashboard: every curated feed loaded concurrently. A feed that fails
is reported in place while the others still show. With --strict the whole
dashboard fails when any feed fails.

With --feed, show one page of a single feed. Feed ids: ` + feedIDList(),
	Args: cobra.NoArgs,
	RunE: runFeeds,
}

var (
	feedID     string
	feedPage   int
	feedLimit  int
	feedStrict bool
	feedFind   string
)

func init() {
	feedsCmd.Flags().StringVar(&feedID, "feed", "", "Show a single feed")
	feedsCmd.Flags().IntVar(&feedPage, "page", 1, "Page of the single feed")
	feedsCmd.Flags().IntVarP(&feedLimit, "limit", "n", 5, "Items shown per feed on the dashboard (0 for all)")
	feedsCmd.Flags().BoolVar(&feedStrict, "strict", false, "Fail when any feed fails")
	feedsCmd.Flags().StringVarP(&feedFind, "find", "f", "", "Fuzzy-find titles across the loaded dashboard")
}

func feedIDList() string {
	ids := make([]string, len(catalog.Feeds))
	for i, f := range catalog.Feeds {
		ids[i] = string(f.ID)
	}
	return strings.Join(ids, ", ")
}

// runHome is the bare "marquee" command: the signed-in landing view
func runHome(cmd *cobra.Command, _ []string) error {
	feedLimit = 5
	return showDashboard(cmd, false)
}

func runFeeds(cmd *cobra.Command, _ []string) error {
	if feedID != "" {
		return showFeed(cmd)
	}
	return showDashboard(cmd, feedStrict)
}

func showFeed(cmd *cobra.Command) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	items, err := a.catalog.LoadFeed(cmd.Context(), catalog.FeedID(feedID), feedPage)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if !p.json {
		feed, _ := catalog.LookupFeed(catalog.FeedID(feedID))
		p.Header(fmt.Sprintf("%s (page %d)", feed.Title, feedPage))
	}
	return p.Items(items)
}

// feedView is the JSON shape of one dashboard slot
type feedView struct {
	ID    catalog.FeedID       `json:"id"`
	Title string               `json:"title"`
	Items []domain.CatalogItem `json:"items,omitempty"`
	Error string               `json:"error,omitempty"`
}

type homeView struct {
	User      domain.User          `json:"user"`
	Hero      *domain.CatalogItem  `json:"hero,omitempty"`
	Feeds     []feedView           `json:"feeds"`
	Favorites []domain.CatalogItem `json:"favorites"`
}

func showDashboard(cmd *cobra.Command, strict bool) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	sess := a.session
	if strict {
		sess = session.New(a.identity, a.catalog, a.favorites, true, a.logger)
	}

	home, err := sess.Start(cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(cmd)

	if feedFind != "" {
		matches := home.Dashboard.Find(feedFind)
		items := make([]domain.CatalogItem, len(matches))
		for i, m := range matches {
			items[i] = m.Item
		}
		return p.Items(items)
	}

	if p.json {
		view := homeView{User: home.User, Hero: home.Hero, Favorites: home.Favorites}
		for _, r := range home.Dashboard.Feeds {
			fv := feedView{ID: r.Feed.ID, Title: r.Feed.Title, Items: r.Items}
			if r.Err != nil {
				fv.Error = r.Err.Error()
			}
			view.Feeds = append(view.Feeds, fv)
		}
		return p.JSON(view)
	}

	p.Dim("Signed in as " + home.User.DisplayName)
	p.Line("")

	if home.Hero != nil {
		p.Line("%s  %s", p.render(styles.TitleStyle, home.Hero.DisplayTitle()), p.render(styles.RatingStyle, "★ "+formatRating(home.Hero.VoteAverage)))
		if home.Hero.Overview != "" {
			p.Line("%s", styles.Truncate(home.Hero.Overview, 160))
		}
		if home.Hero.BackdropPath != "" {
			p.Dim(tmdb.ImageURL(home.Hero.BackdropPath, tmdb.SizeOriginal))
		}
		p.Line("")
	}

	for _, r := range home.Dashboard.Feeds {
		p.Header(r.Feed.Title)
		if !r.OK() {
			p.Line("  %s", p.render(styles.ErrorStyle, "unavailable: "+r.Err.Error()))
			p.Line("")
			continue
		}
		items := r.Items
		if feedLimit > 0 && len(items) > feedLimit {
			items = items[:feedLimit]
		}
		if err := p.Items(items); err != nil {
			return err
		}
		p.Line("")
	}

	if len(home.Favorites) > 0 {
		p.Header("My List")
		return p.Items(home.Favorites)
	}
	return nil
}
