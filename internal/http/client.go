// Package http is the transport under the request builder. It sends already
// signed requests and maps non-success answers onto the infra error taxonomy.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Request is a fully built request. Body must be the exact bytes that were signed.
// BaseURL, when set, replaces the client's base URL for this request.
type Request struct {
	BaseURL string
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string
}

// Response is a received answer with its body fully read.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Client sends requests to one base URL.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	logger     infra.Logger
	debug      bool
	userAgent  string
	language   string
	chain      *infra.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger infra.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLanguage sets the Accept-Language header.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithRetryConfig enables transport retries on connection errors, 429 and 5xx.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client, e.g. for custom TLS.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *infra.InterceptorChain) Option {
	return func(c *Client) {
		c.chain = chain
	}
}

// NewClient creates a transport for baseURL. Retries are off unless WithRetryConfig is given.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: retryClient,
		logger:     infra.NoopLogger{},
		userAgent:  constants.DefaultUserAgent,
		language:   constants.DefaultLanguage,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req. For non-success statuses it returns both the response and an
// error from the infra taxonomy; failures below HTTP yield *infra.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	baseURL := c.baseURL
	if req.BaseURL != "" {
		baseURL = strings.TrimRight(req.BaseURL, "/")
	}

	fullURL := baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body any
	if len(req.Body) > 0 {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()

	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	httpReq.Header.Set(constants.HeaderAcceptLanguage, c.language)
	httpReq.Header.Set(constants.HeaderRequestID, requestID)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	intercepted := &infra.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header,
		Body:    req.Body,
	}

	err = c.chain.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]any{
			"method":     req.Method,
			"url":        fullURL,
			"request_id": requestID,
			"access_id":  httpReq.Header.Get(constants.HeaderAccessID),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &infra.TransportError{Method: req.Method, URL: fullURL, Err: err}
		_ = c.chain.ExecuteResponseInterceptors(ctx, intercepted, &infra.Response{Error: transportErr})

		return nil, transportErr
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &infra.TransportError{Method: req.Method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]any{
			"status_code": resp.StatusCode,
			"request_id":  requestID,
			"duration":    time.Since(start).String(),
			"body_bytes":  len(respBody),
		})
	}

	var apiErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr = infra.ParseErrorResponse(resp.StatusCode, httpResp.Header.Get(constants.HeaderContentType), respBody)
	}

	err = c.chain.ExecuteResponseInterceptors(ctx, intercepted, &infra.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       bytes.Clone(respBody),
		Error:      apiErr,
	})
	if err != nil {
		return resp, err
	}

	return resp, apiErr
}
