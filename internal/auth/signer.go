package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Message builds the byte string covered by a request signature.
func Message(accessID, accessTime string, body []byte) []byte {
	msg := make([]byte, 0, len(accessID)+len(accessTime)+len(body)+2)
	msg = append(msg, accessID...)
	msg = append(msg, ':')
	msg = append(msg, accessTime...)
	msg = append(msg, ':')

	return append(msg, body...)
}

// Sign signs SHA-256(message) with the key in privateKeyPEM and returns the
// base64 encoded DER signature. The parsed key is wiped before returning.
func Sign(privateKeyPEM, message []byte) (string, error) {
	key, err := ParsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", fmt.Errorf("loading signing key: %w", err)
	}
	defer key.Zero()

	digest := sha256.Sum256(message)
	signature := ecdsa.Sign(key, digest[:])

	return base64.StdEncoding.EncodeToString(signature.Serialize()), nil
}

// Verify checks a base64 DER signature of message against a PEM public key.
func Verify(publicKeyPEM, message []byte, signature string) (bool, error) {
	pub, err := ParsePublicKey(publicKeyPEM)
	if err != nil {
		return false, err
	}

	der, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}

	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return false, fmt.Errorf("parsing signature: %w", err)
	}

	digest := sha256.Sum256(message)

	return sig.Verify(digest[:], pub), nil
}
