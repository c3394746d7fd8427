package auth

import (
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockScalar_ClearsDER(t *testing.T) {
	t.Parallel()

	keyPEM, err := GenerateKeyPEM()
	require.NoError(t, err)

	block, _ := pem.Decode(keyPEM)
	require.NotNil(t, block)
	require.NotEmpty(t, block.Bytes)

	scalar, err := blockScalar(block)
	require.NoError(t, err)
	assert.Len(t, scalar, privateScalarSize)
	assert.Equal(t, make([]byte, len(block.Bytes)), block.Bytes)

	bad := &pem.Block{Type: blockECPrivateKey, Bytes: []byte{0x30, 0x03, 0x02, 0x01, 0x07}}

	_, err = blockScalar(bad)
	require.Error(t, err)
	assert.Equal(t, make([]byte, 5), bad.Bytes)
}
