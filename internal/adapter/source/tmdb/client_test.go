package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
)

type recordedRequest struct {
	Path  string
	Query url.Values
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{Path: r.URL.Path, Query: r.URL.Query()})
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) client(extra ...func(*Config)) *Client {
	cfg := Config{APIKey: "test-key", BaseURL: f.server.URL}
	for _, fn := range extra {
		fn(&cfg)
	}
	return NewClient(cfg, nil)
}

func TestFetchPageAttachesKeyAndOmitsEmptyParams(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[{"id":7,"title":"Heat"}],"total_pages":1,"total_results":1}`))
	})

	var nilYear *int
	genre := 28
	page, err := api.client().FetchPage(context.Background(), PathDiscoverMovie, domain.Params{
		"sort_by":              "popularity.desc",
		"with_genres":          &genre,
		"primary_release_year": nilYear,
		"query":                "",
		"page":                 1,
		"vote_average.gte":     7.5,
		"region":               nil,
	})
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != 7 {
		t.Fatalf("FetchPage() results = %+v", page.Results)
	}

	reqs := api.Requests()
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	want := url.Values{
		"api_key":          {"test-key"},
		"sort_by":          {"popularity.desc"},
		"with_genres":      {"28"},
		"page":             {"1"},
		"vote_average.gte": {"7.5"},
	}
	if diff := cmp.Diff(want, reqs[0].Query); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	if reqs[0].Path != PathDiscoverMovie {
		t.Errorf("path = %q, want %q", reqs[0].Path, PathDiscoverMovie)
	}
}

func TestFetchPageAPIError(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.client().FetchPage(context.Background(), PathPopularMovies, nil)
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchPage() error = %v, want *domain.APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.StatusText != "Unauthorized" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if got, want := apiErr.Error(), "catalog API error: Unauthorized"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFetchPageNetworkError(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	c := api.client()
	api.server.Close()

	_, err := c.FetchPage(context.Background(), PathPopularMovies, nil)
	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("FetchPage() error = %v, want *domain.NetworkError", err)
	}
}

func TestFetchPageDecodeError(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":`))
	})

	_, err := api.client().FetchPage(context.Background(), PathPopularMovies, nil)
	var decErr *domain.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("FetchPage() error = %v, want *domain.DecodeError", err)
	}
}

func TestFetchPageNotConfigured(t *testing.T) {
	c := NewClient(Config{}, nil)
	_, err := c.FetchPage(context.Background(), PathPopularMovies, nil)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("FetchPage() error = %v, want ErrNotConfigured", err)
	}
}

func TestFetchCatalogPageNormalizes(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"name":"Dark","first_air_date":"2017-12-01"},
			{"id":2,"media_type":"movie","title":"Arrival"}
		],"total_pages":3,"total_results":50}`))
	})

	page, err := api.client().FetchCatalogPage(context.Background(), PathPopularTV, nil, domain.MediaKindTV)
	if err != nil {
		t.Fatalf("FetchCatalogPage() error = %v", err)
	}
	want := &domain.Page{
		Page:         1,
		TotalPages:   3,
		TotalResults: 50,
		Results: []domain.CatalogItem{
			{ID: 1, Kind: domain.MediaKindTV, Title: "Dark", ReleaseDate: "2017-12-01", GenreIDs: []int{}},
			{ID: 2, Kind: domain.MediaKindMovie, Title: "Arrival", GenreIDs: []int{}},
		},
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("FetchCatalogPage() mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchSuggestionsKeepsPeople(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"media_type":"movie","title":"Batman","poster_path":"/b.jpg","release_date":"1989-06-23"},
			{"id":2,"media_type":"person","name":"Christian Bale","profile_path":"/c.jpg"},
			{"id":3,"media_type":"collection","name":"Batman Collection"},
			{"id":4,"media_type":"tv","name":"Batman: TAS"}
		]}`))
	})

	got, err := api.client().FetchSuggestions(context.Background(), "  batman ")
	if err != nil {
		t.Fatalf("FetchSuggestions() error = %v", err)
	}
	want := []domain.Suggestion{
		{ID: 1, Kind: domain.MediaKindMovie, Title: "Batman", ImagePath: "/b.jpg", ReleaseDate: "1989-06-23"},
		{ID: 2, Kind: domain.MediaKindPerson, Title: "Christian Bale", ImagePath: "/c.jpg"},
		{ID: 4, Kind: domain.MediaKindTV, Title: "Batman: TAS"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FetchSuggestions() mismatch (-want +got):\n%s", diff)
	}
	if q := api.Requests()[0].Query.Get("query"); q != "batman" {
		t.Errorf("query = %q, want trimmed %q", q, "batman")
	}
}

func TestFetchJSONUsesCache(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
	})
	c := api.client(func(cfg *Config) { cfg.Cache = cache.NewMemory(time.Minute) })

	for i := 0; i < 3; i++ {
		var list GenreList
		if err := c.FetchJSON(context.Background(), GenreListPath(domain.MediaKindMovie), nil, &list); err != nil {
			t.Fatalf("FetchJSON() error = %v", err)
		}
		if len(list.Genres) != 1 {
			t.Fatalf("genres = %+v", list.Genres)
		}
	}
	if n := len(api.Requests()); n != 1 {
		t.Errorf("got %d requests, want 1 (cached)", n)
	}
}

func TestFetchJSONLanguage(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	c := api.client(func(cfg *Config) { cfg.Language = "de-DE" })

	var v map[string]any
	if err := c.FetchJSON(context.Background(), "/movie/1", nil, &v); err != nil {
		t.Fatalf("FetchJSON() error = %v", err)
	}
	if got := api.Requests()[0].Query.Get("language"); got != "de-DE" {
		t.Errorf("language = %q, want de-DE", got)
	}
}

func TestEndpointGroup(t *testing.T) {
	tests := map[string]string{
		"/movie/550/credits":   "/movie/:id/credits",
		"/tv/1399":             "/tv/:id",
		"/trending/movie/week": "/trending/movie/week",
	}
	for in, want := range tests {
		if got := endpointGroup(in); got != want {
			t.Errorf("endpointGroup(%q) = %q, want %q", in, got, want)
		}
	}
}
