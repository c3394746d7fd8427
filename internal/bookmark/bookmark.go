// Package bookmark stores named pagination cursors so a listing can be resumed
// by a later CLI invocation.
package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS bookmark store")
	ErrUnsupportedStoreType = errors.New("unsupported bookmark store type")
	ErrInvalidName          = errors.New("bookmark name must be non-empty and must not contain spaces, '*', '>' or '.'")
	ErrSealedValue          = errors.New("sealed cursor cannot be opened")
)

// Bookmark is the position of a paged listing.
type Bookmark struct {
	Name     string            `json:"name"     yaml:"name"`
	Resource string            `json:"resource" yaml:"resource"`
	Query    map[string]string `json:"query"    yaml:"query"`
	Cursor   string            `json:"cursor"   yaml:"cursor"`
	Pages    int               `json:"pages"    yaml:"pages"`
	Updated  time.Time         `json:"updated"  yaml:"updated"`
}

// Exhausted reports whether the listing has been read to the end.
func (b *Bookmark) Exhausted() bool {
	return b.Pages > 0 && b.Cursor == ""
}

// Advance records that one more page was read and where the next one starts.
func (b *Bookmark) Advance(cursor string, now time.Time) {
	b.Cursor = cursor
	b.Pages++
	b.Updated = now
}

// Store persists bookmarks by name.
type Store interface {
	Get(ctx context.Context, name string) (*Bookmark, error)
	Put(ctx context.Context, b *Bookmark) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

// ValidateName rejects names that cannot be used as a key-value key.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t*>.") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", constants.ErrBookmarkNotFound, name)
}

func encode(b *Bookmark) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding bookmark %s: %w", b.Name, err)
	}

	return data, nil
}

func decode(name string, data []byte) (*Bookmark, error) {
	var b Bookmark

	err := json.Unmarshal(data, &b)
	if err != nil {
		return nil, fmt.Errorf("decoding bookmark %s: %w", name, err)
	}

	return &b, nil
}
