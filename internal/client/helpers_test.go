package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/infra-client/internal/testserver"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client signing as a sandbox project and pointed at
// a fresh signature-checking server.
func newTestClient(t *testing.T) (*Client, *testserver.Server) {
	t.Helper()

	server := testserver.New(t)

	client, err := New(&infra.Config{Credential: testCredential(t), Host: server.Host()})
	require.NoError(t, err)

	return client, server
}

func testCredential(t *testing.T) *infra.Credential {
	t.Helper()

	cred, err := infra.NewProject(infra.EnvironmentSandbox, "5656565656565656", testserver.PrivateKeyPEM)
	require.NoError(t, err)

	return cred
}

// getOperation is a table entry for a get-by-id call.
type getOperation struct {
	Name       string
	ID         string
	StatusCode int
	Response   any
	WantErr    bool
	NotFound   bool
	ErrMessage string
}

// runGetTests runs each case against its own server with path answering.
func runGetTests[T infra.Resource](
	t *testing.T,
	path string,
	tests []getOperation,
	getFunc func(*Client) func(context.Context, string) (T, error),
	check func(*testing.T, T),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client, server := newTestClient(t)
			server.HandleJSON(http.MethodGet, path+"/"+testCase.ID, testCase.StatusCode, testCase.Response)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Equal(t, testCase.NotFound, infra.IsNotFound(err))

				return
			}

			require.NoError(t, err)

			if check != nil {
				check(t, result)
			}
		})
	}
}

func notFoundBody() map[string]any {
	return map[string]any{"errors": []map[string]string{{"code": "notFound", "message": "entity not found"}}}
}
