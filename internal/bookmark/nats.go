package bookmark

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS key-value backend.
type NATSConfig struct {
	// URL of the NATS server, e.g. nats://127.0.0.1:4222
	URL string

	// Bucket holding the bookmarks; DefaultBookmarkBucket when empty
	Bucket string

	// TTL of stored bookmarks; BookmarkTTL when zero
	TTL time.Duration

	// Timeout of the initial connection; NATSConnectTimeout when zero
	Timeout time.Duration
}

// NATSStore keeps bookmarks in a JetStream key-value bucket so several
// machines can resume the same listing.
type NATSStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSStore connects to config.URL and opens, or creates, the bucket.
func NewNATSStore(_ context.Context, config *NATSConfig) (*NATSStore, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSConfigRequired
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultBookmarkBucket
	}

	ttl := config.TTL
	if ttl == 0 {
		ttl = constants.BookmarkTTL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = constants.NATSConnectTimeout
	}

	conn, err := nats.Connect(config.URL, nats.Name("infra-cli"), nats.Timeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream(nats.MaxWait(timeout))
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to open JetStream: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "paging cursors saved by the infra CLI",
			TTL:         ttl,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to open bookmark bucket %s: %w", bucket, err)
	}

	return &NATSStore{conn: conn, kv: kv}, nil
}

// NewNATSStoreWithKeyValue wraps an already opened bucket.
func NewNATSStoreWithKeyValue(kv nats.KeyValue) *NATSStore {
	return &NATSStore{kv: kv}
}

// Get reads the named bookmark.
func (s *NATSStore) Get(ctx context.Context, name string) (*Bookmark, error) {
	entry, err := s.kv.Get(name)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, notFound(name)
	}

	if err != nil {
		return nil, fmt.Errorf("reading bookmark %s: %w", name, err)
	}

	return decode(name, entry.Value())
}

// Put writes b under its name.
func (s *NATSStore) Put(ctx context.Context, b *Bookmark) error {
	err := ValidateName(b.Name)
	if err != nil {
		return err
	}

	data, err := encode(b)
	if err != nil {
		return err
	}

	_, err = s.kv.Put(b.Name, data)
	if err != nil {
		return fmt.Errorf("writing bookmark %s: %w", b.Name, err)
	}

	return nil
}

// Delete removes the named bookmark.
func (s *NATSStore) Delete(ctx context.Context, name string) error {
	err := s.kv.Delete(name)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting bookmark %s: %w", name, err)
	}

	return nil
}

// List returns the stored bookmark names in order.
func (s *NATSStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return []string{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}

	slices.Sort(keys)

	return keys, nil
}

// Close drains the connection when the store owns it.
func (s *NATSStore) Close() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Drain()
	if err != nil {
		return fmt.Errorf("closing NATS connection: %w", err)
	}

	return nil
}
