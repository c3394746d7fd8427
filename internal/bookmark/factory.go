package bookmark

import (
	"context"
	"fmt"
	"time"
)

// StoreType represents the type of bookmark backend.
type StoreType string

const (
	// StoreTypeMemory keeps bookmarks in process.
	StoreTypeMemory StoreType = "memory"

	// StoreTypeNATS keeps bookmarks in a NATS KV bucket.
	StoreTypeNATS StoreType = "nats"

	// StoreTypeNone disables bookmarks.
	StoreTypeNone StoreType = "none"
)

// Config configures a bookmark backend.
type Config struct {
	// Type is the backend type; memory when empty
	Type StoreType

	// TTL of in-memory entries
	TTL time.Duration

	// NATS KV configuration
	NATS *NATSConfig

	// Passphrase, when set, seals stored cursors
	Passphrase []byte
}

// NewFromConfig creates a bookmark store from configuration.
func NewFromConfig(ctx context.Context, config *Config) (Store, error) {
	if config == nil {
		config = &Config{Type: StoreTypeMemory}
	}

	var (
		store Store
		err   error
	)

	switch config.Type {
	case StoreTypeMemory, "":
		store = NewMemoryStore(config.TTL)

	case StoreTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		store, err = NewNATSStore(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

	case StoreTypeNone:
		return NewNoOpStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStoreType, config.Type)
	}

	if len(config.Passphrase) == 0 {
		return store, nil
	}

	sealer, err := NewSealer(config.Passphrase)
	if err != nil {
		_ = store.Close()

		return nil, err
	}

	return NewSealedStore(store, sealer), nil
}

// NoOpStore remembers nothing.
type NoOpStore struct{}

// NewNoOpStore creates a new no-op store.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// Get always reports the bookmark as missing.
func (s *NoOpStore) Get(ctx context.Context, name string) (*Bookmark, error) {
	return nil, notFound(name)
}

// Put does nothing.
func (s *NoOpStore) Put(ctx context.Context, b *Bookmark) error {
	return nil
}

// Delete does nothing.
func (s *NoOpStore) Delete(ctx context.Context, name string) error {
	return nil
}

// List always returns no names.
func (s *NoOpStore) List(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

// Close does nothing.
func (s *NoOpStore) Close() error {
	return nil
}
