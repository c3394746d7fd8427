package client

import (
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/internal/http"
	"github.com/fivetwenty-io/infra-client/internal/rest"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// Client implements the infra.Client interface.
type Client struct {
	engine *rest.Engine
	logger infra.Logger

	// Resource clients
	issuingBalance              *BalanceClient[*infra.IssuingBalance]
	issuingCards                *ResourceClient[*infra.IssuingCard]
	issuingCardLogs             *ResourceClient[*infra.IssuingCardLog]
	issuingInvoiceLogs          *ResourceClient[*infra.IssuingInvoiceLog]
	issuingStockLogs            *ResourceClient[*infra.IssuingStockLog]
	issuingEmbossingRequestLogs *ResourceClient[*infra.IssuingEmbossingRequestLog]
	pixBalance                  *BalanceClient[*infra.PixBalance]
	pixKeyLogs                  *ResourceClient[*infra.PixKeyLog]
	pixClaimLogs                *ResourceClient[*infra.PixClaimLog]
	pixReversalLogs             *ResourceClient[*infra.PixReversalLog]
	merchantCountries           *ResourceClient[*infra.MerchantCountry]
	raw                         *RawClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *infra.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Language != "" {
		httpOpts = append(httpOpts, http.WithLanguage(config.Language))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if len(config.Interceptors.Request) > 0 || len(config.Interceptors.Response) > 0 {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors.Chain()))
	}

	return httpOpts
}

// createEngineOptions picks the host and the registry from config.
func createEngineOptions(config *infra.Config) ([]rest.Option, error) {
	opts := []rest.Option{
		rest.WithCredential(config.Credential),
		rest.WithRegistry(config.Registry),
	}

	switch {
	case config.Host != "":
		opts = append(opts, rest.WithHost(config.Host))
	case config.Environment != "":
		env, err := infra.ParseEnvironment(string(config.Environment))
		if err != nil {
			return nil, err
		}

		opts = append(opts, rest.WithHost(rest.HostFor(env)))
	}

	return opts, nil
}

// New creates a client from config. No request is sent.
func New(config *infra.Config) (*Client, error) {
	if config == nil {
		return nil, infra.ErrConfigRequired
	}

	engineOpts, err := createEngineOptions(config)
	if err != nil {
		return nil, err
	}

	transport := http.NewClient(rest.HostFor(infra.EnvironmentSandbox), createHTTPClientOptions(config)...)

	return NewWithTransport(transport, config.Logger, engineOpts...), nil
}

// NewWithTransport creates a client over a custom transport.
func NewWithTransport(transport rest.Transport, logger infra.Logger, opts ...rest.Option) *Client {
	if logger == nil {
		logger = infra.NoopLogger{}
	}

	client := &Client{
		engine: rest.NewEngine(transport, opts...),
		logger: logger,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.issuingBalance = NewBalanceClient[*infra.IssuingBalance](c.engine, infra.IssuingBalanceDescriptor)
	c.issuingCards = NewResourceClient[*infra.IssuingCard](c.engine, infra.IssuingCardDescriptor)
	c.issuingCardLogs = NewResourceClient[*infra.IssuingCardLog](c.engine, infra.IssuingCardLogDescriptor)
	c.issuingInvoiceLogs = NewResourceClient[*infra.IssuingInvoiceLog](c.engine, infra.IssuingInvoiceLogDescriptor)
	c.issuingStockLogs = NewResourceClient[*infra.IssuingStockLog](c.engine, infra.IssuingStockLogDescriptor)
	c.issuingEmbossingRequestLogs = NewResourceClient[*infra.IssuingEmbossingRequestLog](c.engine, infra.IssuingEmbossingRequestLogDescriptor)
	c.pixBalance = NewBalanceClient[*infra.PixBalance](c.engine, infra.PixBalanceDescriptor)
	c.pixKeyLogs = NewResourceClient[*infra.PixKeyLog](c.engine, infra.PixKeyLogDescriptor)
	c.pixClaimLogs = NewResourceClient[*infra.PixClaimLog](c.engine, infra.PixClaimLogDescriptor)
	c.pixReversalLogs = NewResourceClient[*infra.PixReversalLog](c.engine, infra.PixReversalLogDescriptor)
	c.merchantCountries = NewResourceClient[*infra.MerchantCountry](c.engine, infra.MerchantCountryDescriptor)
	c.raw = NewRawClient(c.engine)
}

// Engine returns the engine shared by the resource clients.
func (c *Client) Engine() *rest.Engine {
	return c.engine
}

// Resource client accessors

// IssuingBalance implements infra.Client.IssuingBalance.
func (c *Client) IssuingBalance() infra.BalanceClient[*infra.IssuingBalance] {
	return c.issuingBalance
}

// IssuingCards implements infra.Client.IssuingCards.
func (c *Client) IssuingCards() infra.IssuingCardsClient {
	return c.issuingCards
}

// IssuingCardLogs implements infra.Client.IssuingCardLogs.
func (c *Client) IssuingCardLogs() infra.LogClient[*infra.IssuingCardLog] {
	return c.issuingCardLogs
}

// IssuingInvoiceLogs implements infra.Client.IssuingInvoiceLogs.
func (c *Client) IssuingInvoiceLogs() infra.LogClient[*infra.IssuingInvoiceLog] {
	return c.issuingInvoiceLogs
}

// IssuingStockLogs implements infra.Client.IssuingStockLogs.
func (c *Client) IssuingStockLogs() infra.LogClient[*infra.IssuingStockLog] {
	return c.issuingStockLogs
}

// IssuingEmbossingRequestLogs implements infra.Client.IssuingEmbossingRequestLogs.
func (c *Client) IssuingEmbossingRequestLogs() infra.LogClient[*infra.IssuingEmbossingRequestLog] {
	return c.issuingEmbossingRequestLogs
}

// PixBalance implements infra.Client.PixBalance.
func (c *Client) PixBalance() infra.BalanceClient[*infra.PixBalance] {
	return c.pixBalance
}

// PixKeyLogs implements infra.Client.PixKeyLogs.
func (c *Client) PixKeyLogs() infra.LogClient[*infra.PixKeyLog] {
	return c.pixKeyLogs
}

// PixClaimLogs implements infra.Client.PixClaimLogs.
func (c *Client) PixClaimLogs() infra.LogClient[*infra.PixClaimLog] {
	return c.pixClaimLogs
}

// PixReversalLogs implements infra.Client.PixReversalLogs.
func (c *Client) PixReversalLogs() infra.LogClient[*infra.PixReversalLog] {
	return c.pixReversalLogs
}

// MerchantCountries implements infra.Client.MerchantCountries.
func (c *Client) MerchantCountries() infra.Lister[*infra.MerchantCountry] {
	return c.merchantCountries
}

// Resources implements infra.Client.Resources.
func (c *Client) Resources() infra.RawClient {
	return c.raw
}

var _ infra.Client = (*Client)(nil)
