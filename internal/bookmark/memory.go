package bookmark

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps bookmarks for the life of the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a store whose entries expire after ttl. A zero ttl
// keeps entries forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the named bookmark.
func (s *MemoryStore) Get(ctx context.Context, name string) (*Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[name]
	if !ok || s.expired(entry) {
		delete(s.entries, name)

		return nil, notFound(name)
	}

	return decode(name, entry.data)
}

// Put stores b under its name.
func (s *MemoryStore) Put(ctx context.Context, b *Bookmark) error {
	err := ValidateName(b.Name)
	if err != nil {
		return err
	}

	data, err := encode(b)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[b.Name] = entry
	s.mu.Unlock()

	return nil
}

// Delete removes the named bookmark. Deleting a missing one is not an error.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.entries, name)
	s.mu.Unlock()

	return nil
}

// List returns the live bookmark names in order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))

	for name, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, name)

			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expires.IsZero() && !s.now().Before(entry.expires)
}
