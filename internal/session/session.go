package session

import (
	"context"
	"log/slog"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
)

// Home is everything the browse view needs once a user is signed in
type Home struct {
	User      domain.User
	Dashboard *catalog.Dashboard
	Hero      *domain.CatalogItem
	Favorites []domain.CatalogItem
}

// Session gates the catalog pipeline behind the identity provider.
type Session struct {
	identity  domain.IdentityProvider
	catalog   *catalog.Service
	favorites *favorites.Service
	strict    bool
	logger    *slog.Logger
}

// New creates a Session. With strict set, the dashboard loads all-or-nothing.
func New(identity domain.IdentityProvider, cat *catalog.Service, favs *favorites.Service, strict bool, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		identity:  identity,
		catalog:   cat,
		favorites: favs,
		strict:    strict,
		logger:    logger,
	}
}

// Require returns the signed-in user or domain.ErrNotSignedIn
func (s *Session) Require() (domain.User, error) {
	user, ok := s.identity.CurrentUser()
	if !ok {
		return domain.User{}, domain.ErrNotSignedIn
	}
	return user, nil
}

// Start loads the dashboard and favorites for the signed-in user. Nothing is fetched
// when no user is present.
func (s *Session) Start(ctx context.Context) (*Home, error) {
	user, err := s.Require()
	if err != nil {
		return nil, err
	}

	var dash *catalog.Dashboard
	if s.strict {
		dash, err = s.catalog.LoadDashboardStrict(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		dash = s.catalog.LoadDashboard(ctx)
	}

	home := &Home{
		User:      user,
		Dashboard: dash,
		Favorites: s.favorites.List(),
	}
	if hero, ok := dash.Hero(); ok {
		home.Hero = &hero
	}

	s.logger.Debug("session started", "user", user.ID, "favorites", len(home.Favorites))
	return home, nil
}
