package infra

import (
	"context"
	"time"
)

// Client is the entry point to every resource of the API.
type Client interface {
	IssuingClients
	PixClients
	MerchantClients

	// Resources gives untyped access to any registered resource by name.
	Resources() RawClient
}

// IssuingClients provides access to card issuing resources.
type IssuingClients interface {
	IssuingBalance() BalanceClient[*IssuingBalance]
	IssuingCards() IssuingCardsClient
	IssuingCardLogs() LogClient[*IssuingCardLog]
	IssuingInvoiceLogs() LogClient[*IssuingInvoiceLog]
	IssuingStockLogs() LogClient[*IssuingStockLog]
	IssuingEmbossingRequestLogs() LogClient[*IssuingEmbossingRequestLog]
}

// PixClients provides access to instant payment resources.
type PixClients interface {
	PixBalance() BalanceClient[*PixBalance]
	PixKeyLogs() LogClient[*PixKeyLog]
	PixClaimLogs() LogClient[*PixClaimLog]
	PixReversalLogs() LogClient[*PixReversalLog]
}

// MerchantClients provides access to merchant reference data.
type MerchantClients interface {
	MerchantCountries() Lister[*MerchantCountry]
}

// Creator creates entities in bulk. The result preserves input order.
type Creator[T any] interface {
	Create(ctx context.Context, entities []T, query Query, opts ...CallOption) ([]T, error)
}

// Getter fetches one entity by id.
type Getter[T any] interface {
	Get(ctx context.Context, id string, query Query, opts ...CallOption) (T, error)
}

// Lister enumerates a collection lazily or one page at a time.
type Lister[T any] interface {
	// Query enumerates every matching entity, up to limit when limit > 0.
	Query(ctx context.Context, query Query, limit int, opts ...CallOption) *Iterator[T]
	// Page fetches a single page. An empty cursor requests the first page.
	Page(ctx context.Context, query Query, cursor string, limit int, opts ...CallOption) (Page[T], error)
}

// Updater patches an entity. Only the keys present in patch are sent.
type Updater[T any] interface {
	Update(ctx context.Context, id string, patch map[string]any, opts ...CallOption) (T, error)
}

// Canceler cancels an entity, returning its post-cancellation state.
type Canceler[T any] interface {
	Cancel(ctx context.Context, id string, opts ...CallOption) (T, error)
}

// LogClient reads an append-only log collection.
type LogClient[T any] interface {
	Getter[T]
	Lister[T]
}

// BalanceClient reads a singleton balance.
type BalanceClient[T any] interface {
	Get(ctx context.Context, opts ...CallOption) (T, error)
}

// IssuingCardsClient manages issuing cards.
type IssuingCardsClient interface {
	Creator[*IssuingCard]
	Getter[*IssuingCard]
	Lister[*IssuingCard]
	Updater[*IssuingCard]
	Canceler[*IssuingCard]
}

// RawClient addresses resources by registered name and returns untyped values.
type RawClient interface {
	Get(ctx context.Context, name, id string, query Query, opts ...CallOption) (Resource, error)
	Query(ctx context.Context, name string, query Query, limit int, opts ...CallOption) *Iterator[Resource]
	Page(ctx context.Context, name string, query Query, cursor string, limit int, opts ...CallOption) (Page[Resource], error)
	Stream(ctx context.Context, name string, query Query, pagination *PaginationOptions, opts ...CallOption) *PageStream[Resource]
}

// CallOptions are per-call settings.
type CallOptions struct {
	Credential *Credential
}

// CallOption customizes a single call.
type CallOption func(*CallOptions)

// WithCredential signs the call with c instead of the client's credential.
func WithCredential(c *Credential) CallOption {
	return func(o *CallOptions) {
		o.Credential = c
	}
}

// ApplyCallOptions folds opts into CallOptions.
func ApplyCallOptions(opts ...CallOption) CallOptions {
	var out CallOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}

	return out
}

// Config represents client configuration for building an infra.Client.
//
// # Credentials
//
// Each call is signed with, in order: the credential passed through
// WithCredential, Config.Credential, and the process default set with
// SetDefaultCredential. A call with none of them fails with
// ErrAuthenticationConfig before any request is sent.
//
// # Hosts
//
// Requests go to the host of Environment (sandbox when empty) unless Host is
// set. Host is meant for tests and proxies.
//
// # Timeouts and retries
//
// Per-request deadlines should be set through the context passed to each
// call. The transport retries nothing unless RetryMax is above zero.
type Config struct {
	// Credential: default signer for calls made through this client.
	Credential *Credential
	// Environment: selects the API host. Defaults to the credential's environment, then sandbox.
	Environment Environment
	// Host: overrides the API base URL, e.g. an httptest server.
	Host string
	// Language: Accept-Language header value (en-US or pt-BR).
	Language string
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout: per-attempt timeout of the underlying http.Client.
	HTTPTimeout time.Duration
	// RetryMax: transport-level retries for connection errors and 5xx. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables HTTP request/response logging through Logger.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors: hooks run around every request.
	Interceptors Interceptors
	// Registry: resource registry; DefaultRegistry when nil.
	Registry *Registry
}
