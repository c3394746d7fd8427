package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/internal/testserver"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, infra.ErrConfigRequired)

	_, err = New(&infra.Config{Environment: "staging"})
	require.ErrorIs(t, err, infra.ErrInvalidEnvironment)

	client, err := New(&infra.Config{})
	require.NoError(t, err)
	assert.NotNil(t, client.IssuingCards())
	assert.NotNil(t, client.Engine())
}

func TestClient_ConfigHostWins(t *testing.T) {
	t.Parallel()

	server := testserver.New(t)
	server.HandleCollection("/v2/issuing-balance", "balances", []map[string]any{{"id": "b1", "amount": 1500, "currency": "BRL"}}, 10)

	prodCred, err := infra.NewProject(infra.EnvironmentProduction, "1", testserver.PrivateKeyPEM)
	require.NoError(t, err)

	client, err := New(&infra.Config{Credential: prodCred, Host: server.Host(), Environment: infra.EnvironmentProduction})
	require.NoError(t, err)

	balance, err := client.IssuingBalance().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance.Amount)
	assert.Equal(t, "BRL", balance.Currency)
}

func TestClient_IssuingCardsGet(t *testing.T) {
	t.Parallel()

	runGetTests(t, "/v2/issuing-card", []getOperation{
		{
			Name:       "found",
			ID:         "5155165527080960",
			StatusCode: http.StatusOK,
			Response:   map[string]any{"card": card("5155165527080960", "active")},
		},
		{
			Name:       "not found",
			ID:         "404",
			StatusCode: http.StatusNotFound,
			Response:   notFoundBody(),
			WantErr:    true,
			NotFound:   true,
			ErrMessage: "IssuingCard",
		},
		{
			Name:       "rejected",
			ID:         "400",
			StatusCode: http.StatusBadRequest,
			Response:   map[string]any{"errors": []map[string]string{{"code": "invalidCardId", "message": "bad id"}}},
			WantErr:    true,
			ErrMessage: "invalidCardId",
		},
	}, func(c *Client) func(context.Context, string) (*infra.IssuingCard, error) {
		return func(ctx context.Context, id string) (*infra.IssuingCard, error) {
			return c.IssuingCards().Get(ctx, id, nil)
		}
	}, func(t *testing.T, got *infra.IssuingCard) {
		t.Helper()

		assert.Equal(t, "5155165527080960", got.GetID())
		assert.Equal(t, "active", got.Status)
		assert.Empty(t, got.Number)
		assert.Nil(t, got.Expiration)
	})
}

func TestClient_IssuingCardsCreate(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)
	server.Handle(http.MethodPost, "/v2/issuing-card", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Cards []map[string]any `json:"cards"`
		}

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		out := make([]map[string]any, 0, len(body.Cards))
		for i, c := range body.Cards {
			created := card(fmt.Sprintf("card-%d", i), infra.CardStatusActive)
			created["holderName"] = c["holderName"]
			out = append(out, created)
		}

		testserver.WriteJSON(w, http.StatusOK, map[string]any{"cards": out})
	})

	created, err := client.IssuingCards().Create(context.Background(), []*infra.IssuingCard{
		{HolderName: "Tony Stark", HolderTaxID: "012.345.678-90", HolderExternalID: "1"},
		{HolderName: "Pepper Potts", HolderTaxID: "012.345.678-91", HolderExternalID: "2"},
	}, infra.Query{"expand": []string{"securityCode"}})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "card-0", created[0].GetID())
	assert.Equal(t, "Pepper Potts", created[1].HolderName)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "securityCode", requests[0].Query.Get("expand"))
	assert.Equal(t, constants.ContentTypeJSON, requests[0].Headers.Get("Content-Type"))
}

func TestClient_IssuingCardsQueryAndPage(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)

	items := make([]map[string]any, 0, 5)
	for i := range 5 {
		items = append(items, card(fmt.Sprintf("card-%d", i), "active"))
	}

	server.HandleCollection("/v2/issuing-card", "cards", items, 2)

	var ids []string

	for c, err := range client.IssuingCards().Query(context.Background(), infra.CardFilter{Status: "active"}.Query(), 0).Seq() {
		require.NoError(t, err)

		ids = append(ids, c.GetID())
	}

	assert.Equal(t, []string{"card-0", "card-1", "card-2", "card-3", "card-4"}, ids)
	assert.Equal(t, 3, server.Count(http.MethodGet, "/v2/issuing-card"))

	for _, req := range server.Requests() {
		assert.Equal(t, "active", req.Query.Get("status"))
	}

	page, err := client.IssuingCards().Page(context.Background(), nil, "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.NotEmpty(t, page.Cursor)

	page, err = client.IssuingCards().Page(context.Background(), nil, page.Cursor, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestClient_IssuingCardsUpdateAndCancel(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)

	server.Handle(http.MethodPatch, "/v2/issuing-card/c1", func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, map[string]any{"status": "blocked"}, patch)

		testserver.WriteJSON(w, http.StatusOK, map[string]any{"card": card("c1", infra.CardStatusBlocked)})
	})
	server.HandleJSON(http.MethodDelete, "/v2/issuing-card/c1", http.StatusOK, map[string]any{"card": card("c1", infra.CardStatusCanceled)})

	updated, err := client.IssuingCards().Update(context.Background(), "c1", map[string]any{"status": "blocked"})
	require.NoError(t, err)
	assert.Equal(t, infra.CardStatusBlocked, updated.Status)

	canceled, err := client.IssuingCards().Cancel(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, infra.CardStatusCanceled, canceled.Status)

	_, err = client.IssuingCards().Cancel(context.Background(), " ")
	require.ErrorIs(t, err, infra.ErrEmptyID)
}

func TestClient_Balances(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)
	server.HandleCollection("/v2/pix-balance", "balances", []map[string]any{{"id": "pb", "amount": 99, "currency": "BRL", "updated": "2022-05-10T12:00:00.000000+00:00"}}, 10)
	server.HandleCollection("/v2/issuing-balance", "balances", []map[string]any{}, 10)

	balance, err := client.PixBalance().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), balance.Amount)
	require.NotNil(t, balance.Updated)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "1", requests[0].Query.Get("limit"))

	_, err = client.IssuingBalance().Get(context.Background())
	require.Error(t, err)
	assert.True(t, infra.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting balance")
}

func TestClient_LogClients(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)

	server.HandleCollection("/v2/issuing-card/log", "logs", []map[string]any{
		{"id": "l1", "type": "created", "created": "2022-05-10T12:00:00.000000+00:00", "card": card("c1", "active")},
		{"id": "l2", "type": "blocked", "created": "2022-05-11T12:00:00.000000+00:00", "card": card("c1", "blocked")},
	}, 100)
	server.HandleCollection("/v2/pix-claim/log", "logs", []map[string]any{
		{"id": "l3", "type": "created", "agent": "claimer", "reason": "userRequested", "errors": []string{}, "created": "2022-05-10T12:00:00.000000+00:00", "claim": map[string]any{"id": "claim-1", "status": "created"}},
	}, 100)

	filter := infra.LogFilter{ParentIDs: []string{"c1"}, Types: []string{"created", "blocked"}}

	logs, err := client.IssuingCardLogs().Query(context.Background(), filter.Query(infra.IssuingCardLogParentFilter), 0).All()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "blocked", logs[1].Type)
	assert.Equal(t, "c1", logs[1].Card.GetID())

	claimLogs, err := client.PixClaimLogs().Query(context.Background(), infra.LogFilter{ParentIDs: []string{"claim-1"}}.Query(infra.PixClaimLogParentFilter), 0).All()
	require.NoError(t, err)
	require.Len(t, claimLogs, 1)
	assert.Equal(t, "claimer", claimLogs[0].Agent)

	var cardLogQuery, claimLogQuery bool

	for _, req := range server.Requests() {
		switch req.Path {
		case "/v2/issuing-card/log":
			cardLogQuery = req.Query.Get("cardIds") == "c1" && req.Query.Get("types") == "created,blocked"
		case "/v2/pix-claim/log":
			claimLogQuery = req.Query.Get("claimIds") == "claim-1"
		}
	}

	assert.True(t, cardLogQuery)
	assert.True(t, claimLogQuery)

	server.HandleJSON(http.MethodGet, "/v2/issuing-card/log/l2", http.StatusOK, map[string]any{
		"log": map[string]any{"id": "l2", "type": "blocked", "created": "2022-05-11T12:00:00.000000+00:00", "card": card("c1", "blocked")},
	})

	log, err := client.IssuingCardLogs().Get(context.Background(), "l2", nil)
	require.NoError(t, err)
	assert.Equal(t, "blocked", log.Card.Status)
}

func TestClient_MerchantCountries(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)
	server.HandleCollection("/v2/merchant-country", "countries", []map[string]any{
		{"code": "BRA", "name": "Brazil", "number": "076", "shortCode": "BR"},
		{"code": "USA", "name": "United States of America", "number": "840", "shortCode": "US"},
	}, 100)

	countries, err := client.MerchantCountries().Query(context.Background(), infra.CountryFilter{Search: "b"}.Query(), 1).All()
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "BRA", countries[0].GetID())
	assert.Equal(t, "b", server.Requests()[0].Query.Get("search"))
}

func TestClient_Resources(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)
	server.HandleJSON(http.MethodGet, "/v2/pix-reversal/log/r1", http.StatusOK, map[string]any{
		"log": map[string]any{"id": "r1", "type": "created", "errors": []string{}, "created": "2022-05-10T12:00:00.000000+00:00", "reversal": map[string]any{"id": "rev-1", "amount": 100}},
	})

	res, err := client.Resources().Get(context.Background(), infra.ResourcePixReversalLog, "r1", nil)
	require.NoError(t, err)

	log, ok := res.(*infra.PixReversalLog)
	require.True(t, ok)
	assert.Equal(t, "r1", log.GetID())

	_, err = client.Resources().Get(context.Background(), "Gadget", "1", nil)

	var unknown *infra.UnknownResourceError
	require.ErrorAs(t, err, &unknown)

	all, err := client.Resources().Query(context.Background(), "Gadget", nil, 0).All()
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, all)

	stream := client.Resources().Stream(context.Background(), "Gadget", nil, nil)
	defer stream.Close()

	page, ok := stream.Next()
	require.True(t, ok)
	require.ErrorAs(t, page.Err, &unknown)

	_, ok = stream.Next()
	assert.False(t, ok)
	assert.Len(t, server.Requests(), 1)
}

func TestClient_PerCallCredential(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t)
	server.HandleCollection("/v2/pix-balance", "balances", []map[string]any{{"id": "pb", "amount": 1}}, 10)

	org, err := infra.NewOrganization(infra.EnvironmentSandbox, "4848484848484848", testserver.PrivateKeyPEM, "7272727272727272")
	require.NoError(t, err)

	_, err = client.PixBalance().Get(context.Background(), infra.WithCredential(org))
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "organization/4848484848484848/workspace/7272727272727272", requests[0].Headers.Get("Access-Id"))
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := testserver.New(t)
	server.HandleCollection("/v2/issuing-card", "cards", []map[string]any{card("c1", "active")}, 10)

	collector := infra.NewMetricsCollector()

	client, err := New(&infra.Config{
		Credential:   testCredential(t),
		Host:         server.Host(),
		Interceptors: infra.Interceptors{}.WithMetrics(collector),
	})
	require.NoError(t, err)

	_, err = client.IssuingCards().Page(context.Background(), nil, "", 10)
	require.NoError(t, err)

	metrics, ok := collector.GetMetrics("GET v2/issuing-card")
	require.True(t, ok)
	assert.Equal(t, int64(1), metrics.TotalRequests)
}
