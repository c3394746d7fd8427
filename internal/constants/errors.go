package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentialConfigured = errors.New("no credential configured, set project-id or organization-id and private-key-file")
	ErrBothIDsConfigured      = errors.New("project-id and organization-id are mutually exclusive")
	ErrUnknownConfigKey       = errors.New("unknown configuration key")
	ErrUnsupportedFormat      = errors.New("unsupported output format")
)

// Command errors.
var (
	ErrUnknownResource    = errors.New("unknown resource, see 'infra logs --help' for the list")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrBookmarkExhausted  = errors.New("bookmark has no further pages")
	ErrInvalidKeyValue    = errors.New("expected key=value")
	ErrPassphraseRequired = errors.New("a passphrase is required to seal bookmarks")
)
