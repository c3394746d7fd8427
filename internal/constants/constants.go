package constants

import "time"

// Version is the client version reported in the User-Agent header.
const Version = "0.4.0"

// API hosts and paths.
const (
	// SandboxHost is the base URL of the sandbox environment.
	SandboxHost = "https://sandbox.api.starkinfra.com/"

	// ProductionHost is the base URL of the production environment.
	ProductionHost = "https://api.starkinfra.com/"

	// APIVersion prefixes every resource path.
	APIVersion = "v2"
)

// Request headers.
const (
	HeaderAccessID        = "Access-Id"
	HeaderAccessTime      = "Access-Time"
	HeaderAccessSignature = "Access-Signature"
	HeaderContentType     = "Content-Type"
	HeaderUserAgent       = "User-Agent"
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderRequestID       = "X-Request-Id"

	// ContentTypeJSON is sent on every request.
	ContentTypeJSON = "application/json"
)

// Client identity.
const (
	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "Go-infra-client/" + Version

	// DefaultLanguage is sent when no language is configured.
	DefaultLanguage = "en-US"

	// LanguagePortuguese is the other language the API answers in.
	LanguagePortuguese = "pt-BR"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 15 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 5 * time.Second

	// DefaultRetryWaitMin is the minimum backoff when retries are enabled.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum backoff when retries are enabled.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination limits.
const (
	// MaxPageSize is the largest page the API serves.
	MaxPageSize = 100

	// DefaultPageSize is used by CLI page commands.
	DefaultPageSize = 10
)

// Bookmark storage.
const (
	// DefaultBookmarkBucket is the NATS key-value bucket holding cursors.
	DefaultBookmarkBucket = "infra_bookmarks"

	// BookmarkTTL bounds how long a stored cursor is kept.
	BookmarkTTL = 24 * time.Hour

	// NATSConnectTimeout bounds the initial NATS connection.
	NATSConnectTimeout = 5 * time.Second
)

// Output formats.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// KeyValueSplitParts is the number of parts when splitting key=value strings.
	KeyValueSplitParts = 2

	// CentsPerUnit converts integer amounts to currency units for display.
	CentsPerUnit = 100
)
