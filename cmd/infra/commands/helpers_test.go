package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/internal/testserver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setupCLI points the CLI at a fresh test server with a project credential.
// viper is global, so tests using it do not run in parallel.
func setupCLI(t *testing.T) *testserver.Server {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	server := testserver.New(t)

	keyFile := filepath.Join(t.TempDir(), "private-key.pem")
	require.NoError(t, os.WriteFile(keyFile, []byte(testserver.PrivateKeyPEM), constants.ConfigFilePerm))

	viper.Set("project-id", "5656565656565656")
	viper.Set("private-key-file", keyFile)
	viper.Set("environment", "sandbox")
	viper.Set("host", server.Host())
	viper.Set("output", constants.FormatJSON)

	return server
}

// execute runs cmd with args and returns what it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func decodeJSON[T any](t *testing.T, raw string) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out), raw)

	return out
}

func subcommandNames(cmd *cobra.Command) []string {
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	return names
}

func card(id, status string) map[string]any {
	return map[string]any{
		"id":               id,
		"holderName":       "Tony Stark",
		"holderTaxId":      "012.345.678-90",
		"holderExternalId": "ext-" + id,
		"status":           status,
		"number":           "****-****-****-1234",
		"securityCode":     "***",
		"expiration":       "**/**",
		"created":          "2022-05-10T12:00:00.000000+00:00",
	}
}
