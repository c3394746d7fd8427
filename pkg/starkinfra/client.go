package starkinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/infra-client/internal/client"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
)

// New creates a new API client. No request is sent until a resource is used.
func New(ctx context.Context, config *infra.Config) (infra.Client, error) {
	if config == nil {
		return nil, infra.ErrConfigRequired
	}

	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	cfg := *config

	// Normalize host override
	if cfg.Host != "" {
		host := strings.TrimSuffix(cfg.Host, "/")
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "https://" + host
		}

		cfg.Host = host + "/"
	}

	c, err := client.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithProject creates a client signing as a project.
func NewWithProject(ctx context.Context, environment infra.Environment, projectID, privateKeyPEM string) (infra.Client, error) {
	cred, err := infra.NewProject(environment, projectID, privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return New(ctx, &infra.Config{Credential: cred})
}

// NewWithOrganization creates a client signing as an organization, optionally
// acting on workspaceID.
func NewWithOrganization(ctx context.Context, environment infra.Environment, organizationID, privateKeyPEM, workspaceID string) (infra.Client, error) {
	cred, err := infra.NewOrganization(environment, organizationID, privateKeyPEM, workspaceID)
	if err != nil {
		return nil, err
	}

	return New(ctx, &infra.Config{Credential: cred})
}

// NewWithKeyFile creates a project client reading the private key from path.
func NewWithKeyFile(ctx context.Context, environment infra.Environment, projectID, path string) (infra.Client, error) {
	key, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	return NewWithProject(ctx, environment, projectID, string(key))
}
