package bookmark

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Sealer encrypts cursors with a key derived from a passphrase. Sealed values
// carry their own salt, so a store written by one Sealer can be read by any
// Sealer built from the same passphrase.
type Sealer struct {
	passphrase []byte
	salt       [saltSize]byte
	key        *[keySize]byte
}

// NewSealer derives a fresh sealing key from passphrase.
func NewSealer(passphrase []byte) (*Sealer, error) {
	if len(passphrase) == 0 {
		return nil, constants.ErrPassphraseRequired
	}

	s := &Sealer{passphrase: append([]byte(nil), passphrase...)}

	_, err := io.ReadFull(rand.Reader, s.salt[:])
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	s.key, err = deriveKey(s.passphrase, s.salt[:])
	if err != nil {
		return nil, err
	}

	return s, nil
}

func deriveKey(passphrase, salt []byte) (*[keySize]byte, error) {
	derived, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("deriving sealing key: %w", err)
	}

	var key [keySize]byte
	copy(key[:], derived)
	clear(derived)

	return &key, nil
}

// Seal returns base64(salt | nonce | secretbox(plain)).
func (s *Sealer) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte

	_, err := io.ReadFull(rand.Reader, nonce[:])
	if err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, s.salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, []byte(plain), &nonce, s.key)

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSealedValue, err)
	}

	if len(raw) < saltSize+nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: expected at least %d bytes, got %d", ErrSealedValue, saltSize+nonceSize+secretbox.Overhead, len(raw))
	}

	salt, rest := raw[:saltSize], raw[saltSize:]

	key := s.key
	if string(salt) != string(s.salt[:]) {
		key, err = deriveKey(s.passphrase, salt)
		if err != nil {
			return "", err
		}
	}

	var nonce [nonceSize]byte
	copy(nonce[:], rest[:nonceSize])

	plain, ok := secretbox.Open(nil, rest[nonceSize:], &nonce, key)
	if !ok {
		return "", fmt.Errorf("%w: wrong passphrase or corrupted value", ErrSealedValue)
	}

	return string(plain), nil
}

// SealedStore seals the cursor of every bookmark written to the wrapped store.
type SealedStore struct {
	Store

	sealer *Sealer
}

// NewSealedStore wraps store.
func NewSealedStore(store Store, sealer *Sealer) *SealedStore {
	return &SealedStore{Store: store, sealer: sealer}
}

// Get reads the named bookmark and opens its cursor.
func (s *SealedStore) Get(ctx context.Context, name string) (*Bookmark, error) {
	b, err := s.Store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if b.Cursor == "" {
		return b, nil
	}

	b.Cursor, err = s.sealer.Open(b.Cursor)
	if err != nil {
		return nil, fmt.Errorf("bookmark %s: %w", name, err)
	}

	return b, nil
}

// Put seals the cursor of b and stores a copy; b itself is not changed.
func (s *SealedStore) Put(ctx context.Context, b *Bookmark) error {
	sealed := *b

	if b.Cursor != "" {
		cursor, err := s.sealer.Seal(b.Cursor)
		if err != nil {
			return err
		}

		sealed.Cursor = cursor
	}

	return s.Store.Put(ctx, &sealed)
}
