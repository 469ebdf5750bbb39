package favorites

import (
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// Service manages the persisted favorites list. Entries are keyed by numeric id only,
// so a movie and a show sharing an id occupy the same entry.
type Service struct {
	store  domain.SlotStore
	slot   string
	mu     sync.Mutex // Held across every read-modify-write
	logger *slog.Logger
}

// NewService creates a favorites service over the given slot store
func NewService(slots domain.SlotStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  slots,
		slot:   store.SlotFavorites,
		logger: logger,
	}
}

// IsFavorite reports whether an entry with id is saved
func (s *Service) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.load(), id) >= 0
}

// Add appends item unless an entry with the same id already exists
func (s *Service) Add(item domain.CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if indexOf(items, item.ID) >= 0 {
		return nil
	}
	return s.save(append(items, item))
}

// Remove deletes the entry with id. Removing a missing id is a no-op.
func (s *Service) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	i := indexOf(items, id)
	if i < 0 {
		return nil
	}
	return s.save(append(items[:i], items[i+1:]...))
}

// List returns all favorites in insertion order
func (s *Service) List() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Filter returns the favorites whose titles match query, best match first.
// An empty query returns the full list.
func (s *Service) Filter(query string) []domain.CatalogItem {
	items := s.List()
	matches := Match(query, titlesOf(items))
	if matches == nil {
		return items
	}

	out := make([]domain.CatalogItem, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}

// load reads the slot. Read and parse failures are logged and yield an empty list.
func (s *Service) load() []domain.CatalogItem {
	data, ok, err := s.store.Read(s.slot)
	if err != nil {
		s.logger.Error("failed to read favorites", "error", err)
		return []domain.CatalogItem{}
	}
	if !ok || len(data) == 0 {
		return []domain.CatalogItem{}
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("discarding unreadable favorites", "error", &domain.ParseError{Slot: s.slot, Err: err})
		return []domain.CatalogItem{}
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}
	return items
}

func (s *Service) save(items []domain.CatalogItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.store.Write(s.slot, data); err != nil {
		s.logger.Error("failed to save favorites", "error", err)
		return err
	}
	return nil
}

func indexOf(items []domain.CatalogItem, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func titlesOf(items []domain.CatalogItem) []string {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.DisplayTitle()
	}
	return titles
}
