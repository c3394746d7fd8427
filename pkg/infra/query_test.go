package infra_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Values(t *testing.T) {
	t.Parallel()

	limit := 25
	var missing *string

	q := infra.Query{
		"status":   "active",
		"empty":    "",
		"ids":      []string{"1", "2", "3"},
		"none":     []string{},
		"limit":    &limit,
		"count":    int64(7),
		"expand":   nil,
		"missing":  missing,
		"disabled": false,
		"after":    time.Date(2020, 3, 4, 23, 59, 0, 0, time.UTC),
		"before":   infra.Date{Year: 2020, Month: time.April, Day: 1},
		"zero":     time.Time{},
	}

	values, err := q.Values()
	require.NoError(t, err)

	assert.Equal(t, "active", values.Get("status"))
	assert.Equal(t, "1,2,3", values.Get("ids"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "7", values.Get("count"))
	assert.Equal(t, "false", values.Get("disabled"))
	assert.Equal(t, "2020-03-04", values.Get("after"))
	assert.Equal(t, "2020-04-01", values.Get("before"))

	for _, key := range []string{"empty", "none", "expand", "missing", "zero"} {
		assert.False(t, values.Has(key), key)
	}
}

func TestQuery_Encode(t *testing.T) {
	t.Parallel()

	encoded, err := infra.Query{"tags": []string{"a b", "c"}, "cursor": "xyz"}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "cursor=xyz&tags=a+b%2Cc", encoded)

	_, err = infra.Query{"limit": 1.5}.Encode()
	require.ErrorIs(t, err, infra.ErrUnsupportedQuery)
}

func TestQuery_CloneAndSet(t *testing.T) {
	t.Parallel()

	var q infra.Query

	clone := q.Clone()
	require.NotNil(t, clone)

	clone.Set("a", "1").Set("b", "2")
	assert.Len(t, clone, 2)
	assert.Nil(t, q)

	again := clone.Clone()
	again.Set("a", "changed")
	assert.Equal(t, "1", clone["a"])
}

func TestFilters(t *testing.T) {
	t.Parallel()

	values, err := infra.LogFilter{
		IDs:       []string{"l1"},
		ParentIDs: []string{"c1", "c2"},
		Types:     []string{"blocked"},
	}.Query(infra.IssuingCardLogParentFilter).Values()
	require.NoError(t, err)
	assert.Equal(t, "l1", values.Get("ids"))
	assert.Equal(t, "c1,c2", values.Get("cardIds"))
	assert.Equal(t, "blocked", values.Get("types"))

	values, err = infra.CardFilter{Expand: []string{"rules", "securityCode"}, HolderIDs: []string{"h1"}}.Query().Values()
	require.NoError(t, err)
	assert.Equal(t, "rules,securityCode", values.Get("expand"))
	assert.Equal(t, "h1", values.Get("holderIds"))
	assert.False(t, values.Has("status"))

	values, err = infra.CountryFilter{Search: "bra"}.Query().Values()
	require.NoError(t, err)
	assert.Equal(t, "bra", values.Get("search"))
}
