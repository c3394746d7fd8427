package rest_test

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/auth"
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/internal/rest"
	"github.com/fivetwenty-io/infra-client/internal/testserver"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Unix(1600000000, 0)
}

func testProject(t *testing.T) *infra.Credential {
	t.Helper()

	cred, err := infra.NewProject(infra.EnvironmentSandbox, "5656565656565656", testserver.PrivateKeyPEM)
	require.NoError(t, err)

	return cred
}

func TestResourceNaming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		last     string
		plural   string
	}{
		{"IssuingCard", "issuing-card", "card", "cards"},
		{"IssuingCardLog", "issuing-card/log", "log", "logs"},
		{"IssuingBalance", "issuing-balance", "balance", "balances"},
		{"IssuingEmbossingRequest", "issuing-embossing-request", "request", "requests"},
		{"IssuingEmbossingRequestLog", "issuing-embossing-request/log", "log", "logs"},
		{"MerchantCountry", "merchant-country", "country", "countries"},
		{"PixKey", "pix-key", "key", "keys"},
		{"PixClaim", "pix-claim", "claim", "claims"},
		{"PixStatus", "pix-status", "status", "status"},
		{"IssuingJourney", "issuing-journey", "journey", "journeys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.endpoint, rest.Endpoint(tt.name))
			assert.Equal(t, tt.last, rest.LastName(tt.name))
			assert.Equal(t, tt.plural, rest.LastNamePlural(tt.name))
		})
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v2/issuing-card", rest.Path("IssuingCard", ""))
	assert.Equal(t, "v2/issuing-card/5155165527080960", rest.Path("IssuingCard", "5155165527080960"))
	assert.Equal(t, "v2/pix-key/log/abc", rest.Path("PixKeyLog", "abc"))
	assert.Equal(t, "v2/pix-key/a%2Fb", rest.Path("PixKey", "a/b"))
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	cred := testProject(t)
	builder := rest.NewBuilder(fixedClock)

	req, err := builder.Build(context.Background(), cred, "POST", "IssuingCard", "", infra.Query{"expand": []string{"rules"}}, map[string]any{"cards": []any{}})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "v2/issuing-card", req.Path)
	assert.Equal(t, "rules", req.Query.Get("expand"))
	assert.JSONEq(t, `{"cards":[]}`, string(req.Body))
	assert.Equal(t, "project/5656565656565656", req.Headers[constants.HeaderAccessID])
	assert.Equal(t, "1600000000", req.Headers[constants.HeaderAccessTime])

	valid, err := auth.Verify([]byte(testserver.PublicKeyPEM), auth.Message(cred.AccessID(), "1600000000", req.Body), req.Headers[constants.HeaderAccessSignature])
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestBuilder_BuildWithoutBody(t *testing.T) {
	t.Parallel()

	cred := testProject(t)

	req, err := rest.NewBuilder(fixedClock).Build(context.Background(), cred, "GET", "IssuingCard", "123", nil, nil)
	require.NoError(t, err)

	assert.Empty(t, req.Body)
	assert.Equal(t, "v2/issuing-card/123", req.Path)
	assert.Empty(t, req.Query)

	valid, err := auth.Verify([]byte(testserver.PublicKeyPEM), []byte("project/5656565656565656:1600000000:"), req.Headers[constants.HeaderAccessSignature])
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestBuilder_BuildErrors(t *testing.T) {
	t.Parallel()

	builder := rest.NewBuilder(fixedClock)

	t.Run("no credential", func(t *testing.T) {
		t.Parallel()

		_, err := builder.Build(context.Background(), nil, "GET", "IssuingCard", "", nil, nil)
		require.ErrorIs(t, err, infra.ErrAuthenticationConfig)
	})

	t.Run("unsupported query value", func(t *testing.T) {
		t.Parallel()

		_, err := builder.Build(context.Background(), testProject(t), "GET", "IssuingCard", "", infra.Query{"limit": 1.5}, nil)
		require.ErrorIs(t, err, infra.ErrUnsupportedQuery)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := builder.Build(ctx, testProject(t), "GET", "IssuingCard", "", nil, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}
