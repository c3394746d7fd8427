package starkinfra_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivetwenty-io/infra-client/internal/testserver"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/fivetwenty-io/infra-client/pkg/starkinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := starkinfra.New(context.Background(), &infra.Config{Environment: infra.EnvironmentSandbox})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := starkinfra.New(context.Background(), nil)
		require.ErrorIs(t, err, infra.ErrConfigRequired)
	})

	t.Run("rejects bad environment", func(t *testing.T) {
		t.Parallel()

		_, err := starkinfra.New(context.Background(), &infra.Config{Environment: "staging"})
		require.ErrorIs(t, err, infra.ErrInvalidEnvironment)
		assert.Contains(t, err.Error(), "failed to create new client")
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := starkinfra.New(ctx, &infra.Config{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew_HostWithoutTrailingSlash(t *testing.T) {
	t.Parallel()

	server := testserver.New(t)
	server.HandleCollection("/v2/pix-balance", "balances", []map[string]any{{"id": "pb", "amount": 42}}, 10)

	cred, err := infra.NewProject(infra.EnvironmentSandbox, "5656565656565656", testserver.PrivateKeyPEM)
	require.NoError(t, err)

	client, err := starkinfra.New(context.Background(), &infra.Config{Credential: cred, Host: strings.TrimSuffix(server.Host(), "/")})
	require.NoError(t, err)

	balance, err := client.PixBalance().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.Amount)
	assert.Equal(t, 1, server.Count(http.MethodGet, "/v2/pix-balance"))
}

func TestNewWithProject(t *testing.T) {
	t.Parallel()

	client, err := starkinfra.NewWithProject(context.Background(), infra.EnvironmentSandbox, "5656565656565656", testserver.PrivateKeyPEM)
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = starkinfra.NewWithProject(context.Background(), infra.EnvironmentSandbox, "", testserver.PrivateKeyPEM)
	require.ErrorIs(t, err, infra.ErrEmptyID)
}

func TestNewWithOrganization(t *testing.T) {
	t.Parallel()

	client, err := starkinfra.NewWithOrganization(context.Background(), infra.EnvironmentProduction, "4848484848484848", testserver.PrivateKeyPEM, "7272727272727272")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithKeyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "private-key.pem")
	require.NoError(t, os.WriteFile(path, []byte(testserver.PrivateKeyPEM), 0o600))

	client, err := starkinfra.NewWithKeyFile(context.Background(), infra.EnvironmentSandbox, "5656565656565656", path)
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = starkinfra.NewWithKeyFile(context.Background(), infra.EnvironmentSandbox, "5656565656565656", filepath.Join(t.TempDir(), "missing.pem"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
