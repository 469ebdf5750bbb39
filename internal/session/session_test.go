package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/store"
)

type fakeIdentity struct {
	user *domain.User
}

func (f *fakeIdentity) CurrentUser() (domain.User, bool) {
	if f.user == nil {
		return domain.User{}, false
	}
	return *f.user, true
}

func (f *fakeIdentity) SignIn(_ context.Context, name string) (domain.User, error) {
	f.user = &domain.User{ID: "u1", DisplayName: name}
	return *f.user, nil
}

func (f *fakeIdentity) SignOut() error {
	f.user = nil
	return nil
}

type countingRepo struct {
	calls int64
	fail  string
}

func (r *countingRepo) FetchCatalogPage(_ context.Context, endpoint string, _ domain.Params, kind domain.MediaKind) (*domain.Page, error) {
	atomic.AddInt64(&r.calls, 1)
	if endpoint == r.fail {
		return nil, &domain.APIError{Endpoint: endpoint, StatusCode: 503, StatusText: "Service Unavailable"}
	}
	return &domain.Page{Page: 1, Results: []domain.CatalogItem{{ID: 1, Kind: kind, Title: endpoint}}}, nil
}

func (r *countingRepo) FetchSuggestions(context.Context, string) ([]domain.Suggestion, error) {
	return nil, nil
}

func (r *countingRepo) FetchJSON(context.Context, string, domain.Params, any) error {
	return nil
}

func newSession(repo *countingRepo, id *fakeIdentity, strict bool) *Session {
	slots := store.NewSlotStore("")
	favs := favorites.NewService(slots, nil)
	favs.Add(domain.CatalogItem{ID: 9, Kind: domain.MediaKindMovie, Title: "Saved"})
	return New(id, catalog.NewService(repo, nil), favs, strict, nil)
}

func TestStartRequiresUser(t *testing.T) {
	repo := &countingRepo{}
	s := newSession(repo, &fakeIdentity{}, false)

	_, err := s.Start(context.Background())
	if !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("Start() error = %v, want ErrNotSignedIn", err)
	}
	if n := atomic.LoadInt64(&repo.calls); n != 0 {
		t.Errorf("made %d catalog calls without a user, want 0", n)
	}
}

func TestStartLoadsHome(t *testing.T) {
	repo := &countingRepo{fail: catalog.Feeds[0].Endpoint}
	id := &fakeIdentity{}
	id.SignIn(context.Background(), "Ada")
	s := newSession(repo, id, false)

	home, err := s.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if home.User.DisplayName != "Ada" {
		t.Errorf("User = %+v", home.User)
	}
	if len(home.Favorites) != 1 {
		t.Errorf("Favorites = %+v, want one", home.Favorites)
	}
	// Trending movies failed, so the hero comes from popular movies
	if home.Hero == nil || home.Hero.Title != catalog.Feeds[2].Endpoint {
		t.Errorf("Hero = %+v", home.Hero)
	}
	if n := atomic.LoadInt64(&repo.calls); n != int64(len(catalog.Feeds)) {
		t.Errorf("made %d calls, want %d", n, len(catalog.Feeds))
	}
}

func TestStartStrictFails(t *testing.T) {
	repo := &countingRepo{fail: catalog.Feeds[3].Endpoint}
	id := &fakeIdentity{}
	id.SignIn(context.Background(), "Ada")
	s := newSession(repo, id, true)

	if _, err := s.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want strict dashboard failure")
	}
}
