package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// ErrEmptyName is returned when signing in without a display name
var ErrEmptyName = errors.New("display name is required")

// LocalProvider is an IdentityProvider that keeps the signed-in user in the slot store
type LocalProvider struct {
	store  domain.SlotStore
	mu     sync.Mutex
	now    func() time.Time
	logger *slog.Logger
}

var _ domain.IdentityProvider = (*LocalProvider)(nil)

func NewLocalProvider(slots domain.SlotStore, logger *slog.Logger) *LocalProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalProvider{store: slots, now: time.Now, logger: logger}
}

// CurrentUser returns the signed-in user. Unreadable identity data counts as signed out.
func (p *LocalProvider) CurrentUser() (domain.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, ok, err := p.store.Read(store.SlotIdentity)
	if err != nil {
		p.logger.Error("failed to read identity", "error", err)
		return domain.User{}, false
	}
	if !ok {
		return domain.User{}, false
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		p.logger.Warn("discarding unreadable identity", "error", err)
		return domain.User{}, false
	}
	return user, true
}

// SignIn creates a new user and makes it current
func (p *LocalProvider) SignIn(_ context.Context, displayName string) (domain.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.User{}, ErrEmptyName
	}

	user := domain.User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		SignedInAt:  p.now().UTC(),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Write(store.SlotIdentity, data); err != nil {
		p.logger.Error("failed to save identity", "error", err)
		return domain.User{}, err
	}
	p.logger.Info("signed in", "user", user.ID)
	return user, nil
}

func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Delete(store.SlotIdentity)
}
