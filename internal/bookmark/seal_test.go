package bookmark

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("correct horse"))
	require.NoError(t, err)

	sealed, err := sealer.Seal("c1")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "c1")

	again, err := sealer.Seal("c1")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again)

	plain, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "c1", plain)

	t.Run("another sealer with the same passphrase", func(t *testing.T) {
		t.Parallel()

		other, err := NewSealer([]byte("correct horse"))
		require.NoError(t, err)

		plain, err := other.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "c1", plain)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		t.Parallel()

		other, err := NewSealer([]byte("battery staple"))
		require.NoError(t, err)

		_, err = other.Open(sealed)
		require.ErrorIs(t, err, ErrSealedValue)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := sealer.Open("!!!")
		require.ErrorIs(t, err, ErrSealedValue)

		_, err = sealer.Open("c2hvcnQ")
		require.ErrorIs(t, err, ErrSealedValue)
	})
}

func TestNewSealer_RequiresPassphrase(t *testing.T) {
	t.Parallel()

	_, err := NewSealer(nil)
	require.ErrorIs(t, err, constants.ErrPassphraseRequired)
}

func TestSealedStore(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("correct horse"))
	require.NoError(t, err)

	kv := newFakeKV()
	store := NewSealedStore(NewNATSStoreWithKeyValue(kv), sealer)

	original := sample("cards")
	require.NoError(t, store.Put(context.Background(), original))
	assert.Equal(t, "c1", original.Cursor)
	assert.NotContains(t, string(kv.data["cards"]), `"cursor":"c1"`)

	got, err := store.Get(context.Background(), "cards")
	require.NoError(t, err)
	assert.Equal(t, original, got)

	done := sample("done")
	done.Cursor = ""
	require.NoError(t, store.Put(context.Background(), done))

	got, err = store.Get(context.Background(), "done")
	require.NoError(t, err)
	assert.True(t, got.Exhausted())
}
