// Package potcrypto provides the cryptographic primitives the PoT protocol
// is built on: Ed25519 keypairs, detached signing/verification, SHA-256
// hashing, and the leading-zero-bit counting used by the PoS difficulty
// predicates.
package potcrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"math"

	"empower1.com/pot/internal/poterrors"
)

// GenerateKeyPair returns a fresh Ed25519 private/public keypair.
func GenerateKeyPair() (ed25519.PrivateKey, ed25519.PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("potcrypto: generate key pair: %w", err)
	}
	return priv, pub, nil
}

// EncodePublicKey serializes a public key to SubjectPublicKeyInfo DER bytes,
// the Go equivalent of the reference implementation's PEM/SPKI encoding.
func EncodePublicKey(pub ed25519.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("potcrypto: encode public key: %w", err)
	}
	return der, nil
}

// DecodePublicKey parses SubjectPublicKeyInfo DER bytes back into an
// Ed25519 public key.
func DecodePublicKey(der []byte) (ed25519.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", poterrors.ErrInvalidPublicKey, err)
	}
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key", poterrors.ErrInvalidPublicKey)
	}
	return pub, nil
}

// Sign produces a detached Ed25519 signature over message.
func Sign(priv ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(priv, message)
}

// Verify checks a detached Ed25519 signature against the encoded (SPKI DER)
// public key that produced it.
func Verify(encodedPub []byte, message []byte, signature []byte) bool {
	pub, err := DecodePublicKey(encodedPub)
	if err != nil {
		return false
	}
	return ed25519.Verify(pub, message, signature)
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// CountLeadingZeroBits counts the number of leading zero bits in a byte
// string, used by the PoS difficulty predicates.
func CountLeadingZeroBits(data []byte) int {
	count := 0
	for _, b := range data {
		if b == 0 {
			count += 8
			continue
		}
		for mask := byte(0x80); mask > 0; mask >>= 1 {
			if b&mask != 0 {
				return count
			}
			count++
		}
	}
	return count
}

// PosDifficulty computes the leading-zero-bit threshold a PoS message's
// hash must meet given its coinstake: 256 - log2(coinstake). Shared by both
// training declarations and block headers, per the reference implementation.
func PosDifficulty(coinstake float64) int {
	return int(math.Round(256 - math.Log2(coinstake)))
}

// MeetsDifficulty reports whether hash satisfies the leading-zero-bit
// threshold implied by coinstake.
func MeetsDifficulty(hash []byte, coinstake float64) bool {
	return CountLeadingZeroBits(hash) >= PosDifficulty(coinstake)
}
