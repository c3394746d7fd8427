package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	infrahttp "github.com/fivetwenty-io/infra-client/internal/http"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBlocked = errors.New("blocked by interceptor")

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]any
}

func (l *MockLogger) Debug(msg string, fields map[string]any) {
	l.logs = append(l.logs, map[string]any{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]any) {
	l.logs = append(l.logs, map[string]any{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]any) {
	l.logs = append(l.logs, map[string]any{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]any) {
	l.logs = append(l.logs, map[string]any{"level": "error", "msg": msg, "fields": fields})
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	var (
		gotHeaders http.Header
		gotBody    []byte
		gotQuery   url.Values
		gotPath    string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"cards":[]}`))
	}))
	defer server.Close()

	client := infrahttp.NewClient(server.URL+"/", infrahttp.WithLanguage(constants.LanguagePortuguese))

	resp, err := client.Do(context.Background(), &infrahttp.Request{
		Method:  http.MethodPost,
		Path:    "v2/issuing-card",
		Query:   url.Values{"expand": []string{"rules"}},
		Body:    []byte(`{"cards":[{"holderName":"Tony Stark"}]}`),
		Headers: map[string]string{constants.HeaderAccessID: "project/1"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"cards":[]}`, string(resp.Body))

	assert.Equal(t, "/v2/issuing-card", gotPath)
	assert.Equal(t, "rules", gotQuery.Get("expand"))
	assert.Equal(t, `{"cards":[{"holderName":"Tony Stark"}]}`, string(gotBody))
	assert.Equal(t, constants.ContentTypeJSON, gotHeaders.Get("Content-Type"))
	assert.Equal(t, constants.DefaultUserAgent, gotHeaders.Get("User-Agent"))
	assert.Equal(t, "pt-BR", gotHeaders.Get("Accept-Language"))
	assert.Equal(t, "project/1", gotHeaders.Get("Access-Id"))

	_, err = uuid.Parse(gotHeaders.Get(constants.HeaderRequestID))
	assert.NoError(t, err)
}

func TestClient_DoBaseURLOverride(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := infrahttp.NewClient("http://127.0.0.1:1")
	assert.Equal(t, "http://127.0.0.1:1", client.BaseURL())

	_, err := client.Do(context.Background(), &infrahttp.Request{BaseURL: server.URL + "/", Method: http.MethodGet, Path: "/v2/pix-balance"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_DoErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		check       func(t *testing.T, err error)
	}{
		{
			name:        "error list",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"errors":[{"code":"invalidJson","message":"bad"}]}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *infra.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "invalidJson", apiErr.FirstError().Code)
			},
		},
		{
			name:   "server failure",
			status: http.StatusInternalServerError,
			body:   "boom",
			check: func(t *testing.T, err error) {
				t.Helper()

				var internalErr *infra.InternalServerError
				require.ErrorAs(t, err, &internalErr)
			},
		},
		{
			name:        "unstructured",
			status:      http.StatusServiceUnavailable,
			contentType: "text/html",
			body:        "<html>maintenance</html>",
			check: func(t *testing.T, err error) {
				t.Helper()

				var unknownErr *infra.UnknownError
				require.ErrorAs(t, err, &unknownErr)
				assert.Equal(t, http.StatusServiceUnavailable, unknownErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := infrahttp.NewClient(server.URL).Do(context.Background(), &infrahttp.Request{Method: http.MethodGet, Path: "v2/issuing-card"})
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, string(resp.Body))
			tt.check(t, err)
		})
	}
}

func TestClient_DoTransportError(t *testing.T) {
	t.Parallel()

	client := infrahttp.NewClient("http://127.0.0.1:1", infrahttp.WithTimeout(time.Second))

	resp, err := client.Do(context.Background(), &infrahttp.Request{Method: http.MethodGet, Path: "v2/issuing-card"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, infra.IsTransport(err))
}

func TestClient_DoRetries(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"a":1}`, string(body))

		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := infrahttp.NewClient(server.URL, infrahttp.WithRetryConfig(2, time.Millisecond, 2*time.Millisecond))

	resp, err := client.Do(context.Background(), &infrahttp.Request{Method: http.MethodPost, Path: "v2/issuing-card", Body: []byte(`{"a":1}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClient_DoNoRetriesByDefault(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := infrahttp.NewClient(server.URL).Do(context.Background(), &infrahttp.Request{Method: http.MethodGet, Path: "v2/issuing-card"})
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_DoInterceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-1", r.Header.Get("X-Trace"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var seenStatus int

	chain := infra.NewInterceptorChain()
	chain.AddRequestInterceptor(infra.HeaderInterceptor(map[string]string{"X-Trace": "trace-1"}))
	chain.AddResponseInterceptor(func(ctx context.Context, req *infra.Request, resp *infra.Response) error {
		seenStatus = resp.StatusCode

		return nil
	})

	_, err := infrahttp.NewClient(server.URL, infrahttp.WithInterceptors(chain)).Do(context.Background(), &infrahttp.Request{Method: http.MethodGet, Path: "v2/issuing-card"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, seenStatus)

	blocking := infra.NewInterceptorChain()
	blocking.AddRequestInterceptor(func(ctx context.Context, req *infra.Request) error { return errBlocked })

	_, err = infrahttp.NewClient(server.URL, infrahttp.WithInterceptors(blocking)).Do(context.Background(), &infrahttp.Request{Method: http.MethodGet, Path: "v2/issuing-card"})
	require.ErrorIs(t, err, errBlocked)
}

func TestClient_DoDebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := infrahttp.NewClient(server.URL, infrahttp.WithLogger(logger), infrahttp.WithDebug(true))

	_, err := client.Do(context.Background(), &infrahttp.Request{
		Method:  http.MethodGet,
		Path:    "v2/issuing-card",
		Headers: map[string]string{constants.HeaderAccessID: "project/1", constants.HeaderAccessSignature: "sig"},
	})
	require.NoError(t, err)

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])

	fields, ok := logger.logs[0]["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "project/1", fields["access_id"])
	assert.NotContains(t, fields, "signature")
}
