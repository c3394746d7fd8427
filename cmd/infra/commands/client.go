package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/fivetwenty-io/infra-client/internal/bookmark"
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/fivetwenty-io/infra-client/pkg/starkinfra"
	"github.com/spf13/viper"
)

// loadCredential builds the signing credential from flags, environment and
// the config file.
func loadCredential() (*infra.Credential, error) {
	projectID := strings.TrimSpace(viper.GetString("project-id"))
	organizationID := strings.TrimSpace(viper.GetString("organization-id"))
	keyFile := strings.TrimSpace(viper.GetString("private-key-file"))

	if projectID != "" && organizationID != "" {
		return nil, constants.ErrBothIDsConfigured
	}

	if (projectID == "" && organizationID == "") || keyFile == "" {
		return nil, constants.ErrNoCredentialConfigured
	}

	environment, err := infra.ParseEnvironment(viper.GetString("environment"))
	if err != nil {
		return nil, err
	}

	key, err := os.ReadFile(filepath.Clean(keyFile))
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	if projectID != "" {
		return infra.NewProject(environment, projectID, string(key))
	}

	return infra.NewOrganization(environment, organizationID, string(key), viper.GetString("workspace-id"))
}

// CreateClient creates an API client from the current configuration.
func CreateClient(ctx context.Context) (infra.Client, error) {
	cred, err := loadCredential()
	if err != nil {
		return nil, err
	}

	config := &infra.Config{
		Credential: cred,
		Host:       viper.GetString("host"),
		Language:   viper.GetString("language"),
		RetryMax:   viper.GetInt("retries"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = infra.NewJSONLogger(os.Stderr, "debug")
	}

	return starkinfra.New(ctx, config)
}

// bookmarkStoreOpener opens the store used by the page command.
//
//nolint:gochecknoglobals
var bookmarkStoreOpener = openBookmarkStore

// openBookmarkStore opens the configured bookmark store.
func openBookmarkStore(ctx context.Context) (bookmark.Store, error) {
	config := &bookmark.Config{
		Type: bookmark.StoreType(viper.GetString("bookmark-store")),
		TTL:  viper.GetDuration("bookmark-ttl"),
	}

	if url := viper.GetString("nats-url"); url != "" {
		config.NATS = &bookmark.NATSConfig{
			URL:    url,
			Bucket: viper.GetString("nats-bucket"),
			TTL:    config.TTL,
		}

		if config.Type == "" {
			config.Type = bookmark.StoreTypeNATS
		}
	}

	if viper.GetBool("seal") {
		passphrase, err := readPassphrase()
		if err != nil {
			return nil, err
		}

		config.Passphrase = passphrase
	}

	return bookmark.NewFromConfig(ctx, config)
}

// readPassphrase takes the passphrase from the environment, then from the
// terminal.
func readPassphrase() ([]byte, error) {
	if passphrase := viper.GetString("bookmark-passphrase"); passphrase != "" {
		return []byte(passphrase), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, constants.ErrPassphraseRequired
	}

	fmt.Fprint(os.Stderr, "Bookmark passphrase: ")

	passphrase, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	if len(passphrase) == 0 {
		return nil, constants.ErrPassphraseRequired
	}

	return passphrase, nil
}
