package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Slot names used by the application
const (
	SlotFavorites = "favorites"
	SlotIdentity  = "identity"
)

var bucketSlots = []byte("slots")

// SlotStore implements domain.SlotStore using BoltDB. With an empty path it keeps
// everything in memory.
type SlotStore struct {
	path string
	db   *bolt.DB
	mu   sync.RWMutex // Protects memory cache

	// In-memory copy of every slot read or written so far
	cache map[string][]byte
}

var _ domain.SlotStore = (*SlotStore)(nil)

// NewSlotStore returns a store backed by the bolt file at path. Call Init before use.
func NewSlotStore(path string) *SlotStore {
	return &SlotStore{path: path, cache: make(map[string][]byte)}
}

// Init opens the database and creates the slot bucket. It is a no-op in memory mode
// or when already open.
func (s *SlotStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SlotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Read returns a copy of the slot contents
func (s *SlotStore) Read(slot string) ([]byte, bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[slot]; ok {
		s.mu.RUnlock()
		return clone(data), true, nil
	}
	db := s.db
	s.mu.RUnlock()

	if db == nil {
		return nil, false, nil
	}

	var data []byte
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(slot)); v != nil {
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", slot, err)
	}
	if data == nil {
		return nil, false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[slot] = data
	s.mu.Unlock()

	return clone(data), true, nil
}

// Write replaces the slot contents
func (s *SlotStore) Write(slot string, data []byte) error {
	data = clone(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketSlots).Put([]byte(slot), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write slot %q: %w", slot, err)
		}
	}

	s.cache[slot] = data
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (s *SlotStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketSlots).Delete([]byte(slot))
		})
		if err != nil {
			return fmt.Errorf("failed to delete slot %q: %w", slot, err)
		}
	}

	delete(s.cache, slot)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
