package infra

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fivetwenty-io/infra-client/internal/auth"
)

// CredentialKind distinguishes the two kinds of API user.
type CredentialKind string

const (
	CredentialProject      CredentialKind = "project"
	CredentialOrganization CredentialKind = "organization"
)

// Environment selects the API host.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment validates an environment name.
func ParseEnvironment(raw string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(raw))); env {
	case EnvironmentSandbox, EnvironmentProduction:
		return env, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEnvironment, raw)
	}
}

// Credential identifies the caller and holds its signing key. It is immutable
// once built and safe to share between goroutines. The key is never exposed:
// it is parsed for each signature and wiped right after.
type Credential struct {
	kind        CredentialKind
	id          string
	workspaceID string
	environment Environment
	privateKey  []byte
}

// NewProject builds a project credential.
func NewProject(environment Environment, id, privateKeyPEM string) (*Credential, error) {
	return newCredential(CredentialProject, environment, id, "", privateKeyPEM)
}

// NewOrganization builds an organization credential. workspaceID may be empty
// for calls made at the organization level.
func NewOrganization(environment Environment, id, privateKeyPEM, workspaceID string) (*Credential, error) {
	return newCredential(CredentialOrganization, environment, id, workspaceID, privateKeyPEM)
}

func newCredential(kind CredentialKind, environment Environment, id, workspaceID, privateKeyPEM string) (*Credential, error) {
	env, err := ParseEnvironment(string(environment))
	if err != nil {
		return nil, err
	}

	if id == "" {
		return nil, fmt.Errorf("%s credential: %w", kind, ErrEmptyID)
	}

	if strings.TrimSpace(privateKeyPEM) == "" {
		return nil, fmt.Errorf("%s credential: %w", kind, ErrEmptyPrivateKey)
	}

	err = auth.ValidatePrivateKey([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%s credential: %w", kind, err)
	}

	return &Credential{
		kind:        kind,
		id:          id,
		workspaceID: workspaceID,
		environment: env,
		privateKey:  []byte(privateKeyPEM),
	}, nil
}

// Kind returns the credential kind.
func (c *Credential) Kind() CredentialKind { return c.kind }

// ID returns the project or organization id.
func (c *Credential) ID() string { return c.id }

// WorkspaceID returns the workspace an organization acts on, if any.
func (c *Credential) WorkspaceID() string { return c.workspaceID }

// Environment returns the environment the credential targets.
func (c *Credential) Environment() Environment { return c.environment }

// WithWorkspace returns a copy of an organization credential acting on workspaceID.
func (c *Credential) WithWorkspace(workspaceID string) *Credential {
	clone := *c
	clone.workspaceID = workspaceID

	return &clone
}

// AccessID renders the Access-Id header value.
func (c *Credential) AccessID() string {
	if c.kind == CredentialOrganization && c.workspaceID != "" {
		return fmt.Sprintf("%s/%s/workspace/%s", c.kind, c.id, c.workspaceID)
	}

	return fmt.Sprintf("%s/%s", c.kind, c.id)
}

// Sign signs the request message for accessTime and body.
func (c *Credential) Sign(accessTime string, body []byte) (string, error) {
	signature, err := auth.Sign(c.privateKey, auth.Message(c.AccessID(), accessTime, body))
	if err != nil {
		return "", fmt.Errorf("signing request for %s: %w", c.AccessID(), err)
	}

	return signature, nil
}

// PublicKeyPEM returns the public half of the credential's key.
func (c *Credential) PublicKeyPEM() (string, error) {
	pub, err := auth.PublicKeyPEM(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("deriving public key: %w", err)
	}

	return string(pub), nil
}

// String implements fmt.Stringer without the key.
func (c *Credential) String() string {
	return fmt.Sprintf("%s (%s)", c.AccessID(), c.environment)
}

// GoString keeps %#v from printing the key.
func (c *Credential) GoString() string {
	return fmt.Sprintf("infra.Credential{AccessID: %q, Environment: %q, PrivateKey: %q}", c.AccessID(), c.environment, MaskedValue)
}

// MarshalJSON implements json.Marshaler without the key.
func (c *Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{ //nolint:wrapcheck
		"kind":        string(c.kind),
		"id":          c.id,
		"workspaceId": c.workspaceID,
		"environment": string(c.environment),
		"privateKey":  MaskedValue,
	})
}

// MaskedValue replaces secrets in rendered output.
const MaskedValue = "***"

//nolint:gochecknoglobals
var defaultCredential atomic.Pointer[Credential]

// SetDefaultCredential sets the credential used when a call names none.
// It is meant to be called once during program initialization.
func SetDefaultCredential(c *Credential) {
	defaultCredential.Store(c)
}

// DefaultCredential returns the process-wide credential, or nil.
func DefaultCredential() *Credential {
	return defaultCredential.Load()
}

// ResolveCredential returns the first non-nil candidate, then the process
// default, and fails with ErrAuthenticationConfig when there is none.
func ResolveCredential(candidates ...*Credential) (*Credential, error) {
	for _, c := range candidates {
		if c != nil {
			return c, nil
		}
	}

	if c := DefaultCredential(); c != nil {
		return c, nil
	}

	return nil, ErrAuthenticationConfig
}
