// Package auth parses secp256k1 keys and signs request messages.
package auth

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Static errors for err113 compliance.
var (
	ErrNoPrivateKeyBlock = errors.New("no EC PRIVATE KEY block found in PEM data")
	ErrNoPublicKeyBlock  = errors.New("no PUBLIC KEY block found in PEM data")
	ErrUnsupportedCurve  = errors.New("key is not on the secp256k1 curve")
	ErrUnsupportedKey    = errors.New("unsupported key algorithm")
	ErrInvalidScalar     = errors.New("private key scalar is out of range")
)

const (
	blockECPrivateKey   = "EC PRIVATE KEY"
	blockPKCS8          = "PRIVATE KEY"
	blockPublicKey      = "PUBLIC KEY"
	ecPrivateKeyVersion = 1
	privateScalarSize   = 32
)

//nolint:gochecknoglobals
var (
	oidSecp256k1      = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

// ecPrivateKey is the SEC 1 ECPrivateKey structure.
type ecPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type pkcs8PrivateKey struct {
	Version    int
	Algo       pkix.AlgorithmIdentifier
	PrivateKey []byte
}

type subjectPublicKeyInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

// privateScalar extracts the raw private scalar from PEM data. The caller
// owns the returned slice and must clear it.
func privateScalar(pemData []byte) ([]byte, error) {
	rest := pemData

	for {
		var block *pem.Block

		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, ErrNoPrivateKeyBlock
		}

		if block.Type == blockECPrivateKey || block.Type == blockPKCS8 {
			return blockScalar(block)
		}
	}
}

// blockScalar parses a private key block and clears its DER bytes.
func blockScalar(block *pem.Block) ([]byte, error) {
	defer clear(block.Bytes)

	if block.Type == blockPKCS8 {
		return parsePKCS8(block.Bytes)
	}

	return parseSEC1(block.Bytes, nil)
}

func parseSEC1(der []byte, curve asn1.ObjectIdentifier) ([]byte, error) {
	var key ecPrivateKey

	_, err := asn1.Unmarshal(der, &key)
	if err != nil {
		return nil, fmt.Errorf("parsing EC private key: %w", err)
	}

	if key.Version != ecPrivateKeyVersion {
		return nil, fmt.Errorf("parsing EC private key: %w: version %d", ErrUnsupportedKey, key.Version)
	}

	if len(key.NamedCurveOID) > 0 {
		curve = key.NamedCurveOID
	}

	if curve != nil && !curve.Equal(oidSecp256k1) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve)
	}

	if len(key.PrivateKey) == 0 || len(key.PrivateKey) > privateScalarSize {
		return nil, ErrInvalidScalar
	}

	scalar := make([]byte, privateScalarSize)
	copy(scalar[privateScalarSize-len(key.PrivateKey):], key.PrivateKey)
	clear(key.PrivateKey)

	return scalar, nil
}

func parsePKCS8(der []byte) ([]byte, error) {
	var key pkcs8PrivateKey

	_, err := asn1.Unmarshal(der, &key)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 private key: %w", err)
	}

	if !key.Algo.Algorithm.Equal(oidPublicKeyECDSA) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key.Algo.Algorithm)
	}

	var curve asn1.ObjectIdentifier

	_, err = asn1.Unmarshal(key.Algo.Parameters.FullBytes, &curve)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 curve parameters: %w", err)
	}

	return parseSEC1(key.PrivateKey, curve)
}

// ParsePrivateKey decodes a secp256k1 private key. The caller must call Zero
// on the result once done with it.
func ParsePrivateKey(pemData []byte) (*secp256k1.PrivateKey, error) {
	scalar, err := privateScalar(pemData)
	if err != nil {
		return nil, err
	}
	defer clear(scalar)

	key := secp256k1.PrivKeyFromBytes(scalar)
	if key.Key.IsZero() {
		return nil, ErrInvalidScalar
	}

	return key, nil
}

// ValidatePrivateKey checks that pemData holds a usable key without keeping it.
func ValidatePrivateKey(pemData []byte) error {
	key, err := ParsePrivateKey(pemData)
	if err != nil {
		return err
	}

	key.Zero()

	return nil
}

// ParsePublicKey decodes a SubjectPublicKeyInfo PEM block holding a secp256k1 key.
func ParsePublicKey(pemData []byte) (*secp256k1.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil || block.Type != blockPublicKey {
		return nil, ErrNoPublicKeyBlock
	}

	var info subjectPublicKeyInfo

	_, err := asn1.Unmarshal(block.Bytes, &info)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	if !info.Algorithm.Algorithm.Equal(oidPublicKeyECDSA) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, info.Algorithm.Algorithm)
	}

	var curve asn1.ObjectIdentifier

	_, err = asn1.Unmarshal(info.Algorithm.Parameters.FullBytes, &curve)
	if err != nil || !curve.Equal(oidSecp256k1) {
		return nil, ErrUnsupportedCurve
	}

	pub, err := secp256k1.ParsePubKey(info.PublicKey.RightAlign())
	if err != nil {
		return nil, fmt.Errorf("parsing public key point: %w", err)
	}

	return pub, nil
}

// GenerateKeyPEM creates a new private key and returns it PEM encoded.
func GenerateKeyPEM() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating private key: %w", err)
	}
	defer key.Zero()

	scalar := key.Serialize()
	defer clear(scalar)

	pub := key.PubKey().SerializeUncompressed()

	der, err := asn1.Marshal(ecPrivateKey{
		Version:       ecPrivateKeyVersion,
		PrivateKey:    scalar,
		NamedCurveOID: oidSecp256k1,
		PublicKey:     asn1.BitString{Bytes: pub, BitLength: len(pub) * 8},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding private key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: blockECPrivateKey, Bytes: der}), nil
}

// PublicKeyPEM derives the PEM encoded public key of a private key.
func PublicKeyPEM(privateKeyPEM []byte) ([]byte, error) {
	key, err := ParsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	return encodePublicKey(key.PubKey())
}

func encodePublicKey(pub *secp256k1.PublicKey) ([]byte, error) {
	params, err := asn1.Marshal(oidSecp256k1)
	if err != nil {
		return nil, fmt.Errorf("encoding curve parameters: %w", err)
	}

	point := pub.SerializeUncompressed()

	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: pkix.AlgorithmIdentifier{
			Algorithm:  oidPublicKeyECDSA,
			Parameters: asn1.RawValue{FullBytes: params},
		},
		PublicKey: asn1.BitString{Bytes: point, BitLength: len(point) * 8},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding public key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: blockPublicKey, Bytes: der}), nil
}
