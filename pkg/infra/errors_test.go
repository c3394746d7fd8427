package infra_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("structured error list", func(t *testing.T) {
		t.Parallel()

		err := infra.ParseErrorResponse(http.StatusBadRequest, "application/json; charset=utf-8",
			[]byte(`{"errors":[{"code":"invalidHolderName","message":"holderName is required"},{"code":"invalidTaxId","message":"taxId is invalid"}]}`))

		var apiErr *infra.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Len(t, apiErr.Errors, 2)
		assert.Equal(t, "invalidHolderName", apiErr.FirstError().Code)
		assert.True(t, apiErr.HasCode("invalidTaxId"))
		assert.False(t, apiErr.HasCode("invalidAmount"))
		assert.Contains(t, apiErr.Error(), "invalidHolderName: holderName is required; invalidTaxId: taxId is invalid")
	})

	t.Run("json body without content type", func(t *testing.T) {
		t.Parallel()

		err := infra.ParseErrorResponse(http.StatusUnauthorized, "", []byte(` {"errors":[{"code":"invalidSignature","message":"bad"}]}`))
		assert.True(t, infra.IsAPIError(err))
	})

	t.Run("internal server error", func(t *testing.T) {
		t.Parallel()

		err := infra.ParseErrorResponse(http.StatusInternalServerError, "application/json", []byte(`{"errors":[]}`))

		var internalErr *infra.InternalServerError
		require.ErrorAs(t, err, &internalErr)
		assert.False(t, infra.IsAPIError(err))
	})

	t.Run("unstructured body", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"<html>gateway</html>", `{"message":"nope"}`, ""} {
			err := infra.ParseErrorResponse(http.StatusBadGateway, "", []byte(body))

			var unknownErr *infra.UnknownError
			require.ErrorAs(t, err, &unknownErr, body)
			assert.Equal(t, body, unknownErr.Body)
		}
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting card: %w", &infra.NotFoundError{Resource: "IssuingCard", ID: "123"})
	assert.True(t, infra.IsNotFound(notFound))
	assert.Equal(t, `getting card: IssuingCard "123" not found`, notFound.Error())

	api404 := &infra.APIError{StatusCode: http.StatusNotFound}
	assert.True(t, infra.IsNotFound(api404))
	assert.False(t, infra.IsNotFound(&infra.APIError{StatusCode: http.StatusBadRequest}))

	cause := errors.New("connection refused")
	transport := &infra.TransportError{Method: "GET", URL: "https://sandbox.api.starkinfra.com/v2/issuing-card", Err: cause}
	assert.True(t, infra.IsTransport(fmt.Errorf("listing: %w", transport)))
	require.ErrorIs(t, transport, cause)

	assert.Equal(t, "IssuingBalance not found", (&infra.NotFoundError{Resource: "IssuingBalance"}).Error())
	assert.Equal(t, "$.card: missing required object", (&infra.DecodeError{Path: "$.card", Expected: "object"}).Error())
	assert.Equal(t, "IssuingCard: expected 3 entities in response, got 2", (&infra.ProtocolError{Resource: "IssuingCard", Expected: 3, Actual: 2}).Error())
}
