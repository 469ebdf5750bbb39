package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// newTestService serves routes (path -> JSON body) from a fake catalog API.
// Paths listed in failing answer 500.
func newTestService(t *testing.T, routes map[string]string, failing ...string) (*Service, *int64) {
	t.Helper()
	var hits int64
	fail := map[string]bool{}
	for _, p := range failing {
		fail[p] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if fail[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := tmdb.NewClient(tmdb.Config{APIKey: "k", BaseURL: srv.URL}, nil)
	return NewService(client, nil), &hits
}

func pageOf(titles ...string) string {
	var parts []string
	for i, title := range titles {
		parts = append(parts, fmt.Sprintf(`{"id":%d,"title":%q,"name":%q}`, i+1, title, title))
	}
	return `{"page":1,"results":[` + strings.Join(parts, ",") + `],"total_pages":1,"total_results":` + fmt.Sprint(len(titles)) + `}`
}

func allFeedRoutes() map[string]string {
	routes := map[string]string{}
	for _, f := range Feeds {
		routes[f.Endpoint] = pageOf(f.Title + " A")
	}
	return routes
}

func TestLoadDashboardPerFeedSlots(t *testing.T) {
	routes := allFeedRoutes()
	svc, hits := newTestService(t, routes, tmdb.PathUpcoming)

	dash := svc.LoadDashboard(context.Background())

	if atomic.LoadInt64(hits) != int64(len(Feeds)) {
		t.Errorf("made %d requests, want %d", atomic.LoadInt64(hits), len(Feeds))
	}
	if len(dash.Feeds) != len(Feeds) {
		t.Fatalf("len(Feeds) = %d, want %d", len(dash.Feeds), len(Feeds))
	}
	for i, r := range dash.Feeds {
		if r.Feed.ID != Feeds[i].ID {
			t.Errorf("slot %d = %s, want %s", i, r.Feed.ID, Feeds[i].ID)
		}
		if r.Feed.ID == FeedUpcoming {
			var apiErr *domain.APIError
			if !errors.As(r.Err, &apiErr) {
				t.Errorf("upcoming Err = %v, want *domain.APIError", r.Err)
			}
			continue
		}
		if !r.OK() || len(r.Items) != 1 {
			t.Errorf("feed %s = %+v, want one item", r.Feed.ID, r)
			continue
		}
		if r.Items[0].Kind != r.Feed.Kind {
			t.Errorf("feed %s item kind = %s, want %s", r.Feed.ID, r.Items[0].Kind, r.Feed.Kind)
		}
	}
	if dash.Err() == nil {
		t.Error("Err() = nil, want upcoming failure")
	}
}

func TestLoadDashboardStrictFailsAsWhole(t *testing.T) {
	svc, _ := newTestService(t, allFeedRoutes(), tmdb.PathOnTheAir)

	dash, err := svc.LoadDashboardStrict(context.Background())
	if err == nil {
		t.Fatal("LoadDashboardStrict() error = nil, want failure")
	}
	if dash != nil {
		t.Errorf("LoadDashboardStrict() dashboard = %+v, want nil", dash)
	}
}

func TestLoadDashboardStrictSuccess(t *testing.T) {
	svc, _ := newTestService(t, allFeedRoutes())

	dash, err := svc.LoadDashboardStrict(context.Background())
	if err != nil {
		t.Fatalf("LoadDashboardStrict() error = %v", err)
	}
	if dash.Err() != nil {
		t.Errorf("Err() = %v, want nil", dash.Err())
	}
	hero, ok := dash.Hero()
	if !ok || hero.Title != "Trending Movies A" {
		t.Errorf("Hero() = %+v, %v", hero, ok)
	}
}

func TestHeroFallsBackToPopular(t *testing.T) {
	routes := allFeedRoutes()
	routes[tmdb.PathTrendingMovies] = pageOf()
	svc, _ := newTestService(t, routes)

	hero, ok := svc.LoadDashboard(context.Background()).Hero()
	if !ok || hero.Title != "Popular Movies A" {
		t.Errorf("Hero() = %+v, %v; want first popular movie", hero, ok)
	}
}

func TestDashboardFind(t *testing.T) {
	routes := allFeedRoutes()
	routes[tmdb.PathTrendingMovies] = pageOf("The Batman", "Dune")
	routes[tmdb.PathPopularMovies] = pageOf("The Batman")
	svc, _ := newTestService(t, routes)
	dash := svc.LoadDashboard(context.Background())

	matches := dash.Find("btmn")
	if len(matches) != 1 {
		t.Fatalf("Find() = %+v, want one deduplicated match", matches)
	}
	if matches[0].Item.Title != "The Batman" {
		t.Errorf("Find() item = %q", matches[0].Item.Title)
	}
	if dash.Find("") != nil {
		t.Error("Find(\"\") should be nil")
	}
}

func TestLoadFeedUnknown(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.LoadFeed(context.Background(), "nope", 1)
	var unknown *UnknownFeedError
	if !errors.As(err, &unknown) {
		t.Errorf("LoadFeed() error = %v, want *UnknownFeedError", err)
	}
}

func detailRoutes() map[string]string {
	return map[string]string{
		"/movie/550":                 `{"id":550,"title":"Fight Club","runtime":139,"genres":[{"id":18,"name":"Drama"}],"tagline":"Mischief. Mayhem. Soap."}`,
		"/movie/550/credits":         `{"cast":[{"id":287,"name":"Brad Pitt","character":"Tyler Durden","order":0}],"crew":[]}`,
		"/movie/550/videos":          `{"results":[{"key":"teaser","site":"YouTube","type":"Teaser"},{"key":"trailer","site":"YouTube","type":"Trailer"}]}`,
		"/movie/550/similar":         pageOf("Se7en"),
		"/movie/550/recommendations": pageOf("Memento"),
		"/movie/550/images":          `{"backdrops":[{"file_path":"/b.jpg","width":1280,"height":720}],"posters":[]}`,
		"/movie/550/external_ids":    `{"imdb_id":"tt0137523"}`,
	}
}

func TestDetailsFull(t *testing.T) {
	svc, hits := newTestService(t, detailRoutes())

	item, err := svc.Details(context.Background(), domain.MediaKindMovie, 550, domain.StageWithMediaAndSocial)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if atomic.LoadInt64(hits) != 7 {
		t.Errorf("made %d requests, want 7", atomic.LoadInt64(hits))
	}
	if item.Stage() != domain.StageWithMediaAndSocial {
		t.Errorf("Stage() = %v", item.Stage())
	}
	if item.Kind != domain.MediaKindMovie || item.Title != "Fight Club" {
		t.Errorf("item = %+v", item.CatalogItem)
	}
	if got := item.Runtime(); got != "2h 19m" {
		t.Errorf("Runtime() = %q, want 2h 19m", got)
	}
	if got := domain.TrailerKey(item.Videos); got != "trailer" {
		t.Errorf("TrailerKey() = %q, want trailer", got)
	}
	if diff := cmp.Diff("Se7en", item.Similar.Results[0].Title); diff != "" {
		t.Errorf("similar mismatch: %s", diff)
	}
	if item.ExternalIDs.IMDbID != "tt0137523" {
		t.Errorf("ExternalIDs = %+v", item.ExternalIDs)
	}
}

func TestDetailsStages(t *testing.T) {
	tests := []struct {
		stage    domain.DetailStage
		requests int64
	}{
		{domain.StageBasic, 1},
		{domain.StageWithCredits, 2},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			svc, hits := newTestService(t, detailRoutes())
			item, err := svc.Details(context.Background(), domain.MediaKindMovie, 550, tt.stage)
			if err != nil {
				t.Fatalf("Details() error = %v", err)
			}
			if atomic.LoadInt64(hits) != tt.requests {
				t.Errorf("made %d requests, want %d", atomic.LoadInt64(hits), tt.requests)
			}
			if item.Stage() != tt.stage {
				t.Errorf("Stage() = %v, want %v", item.Stage(), tt.stage)
			}
		})
	}
}

func TestDetailsFailsWhenAnyPartFails(t *testing.T) {
	svc, _ := newTestService(t, detailRoutes(), "/movie/550/images")

	if _, err := svc.Details(context.Background(), domain.MediaKindMovie, 550, domain.StageWithMediaAndSocial); err == nil {
		t.Error("Details() error = nil, want failure")
	}
}

func TestResolveGenre(t *testing.T) {
	genres := []domain.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}, {ID: 18, Name: "Drama"}}

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"drama", 18, false},
		{"878", 878, false},
		{"sci fi", 878, false},
		{"99", 0, true},
		{"western", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := matchGenre(genres, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("matchGenre() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.ID != tt.want {
				t.Errorf("matchGenre() = %+v, want id %d", got, tt.want)
			}
		})
	}
}

func TestByGenre(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{tmdb.PathDiscoverTV: pageOf("Dark")})
	items, err := svc.ByGenre(context.Background(), domain.MediaKindTV, 18)
	if err != nil {
		t.Fatalf("ByGenre() error = %v", err)
	}
	if len(items) != 1 || items[0].Kind != domain.MediaKindTV {
		t.Errorf("ByGenre() = %+v", items)
	}
}
