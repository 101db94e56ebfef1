// Package messages implements the PoT protocol's wire messages: training
// declarations and block headers (PoS), stakeholder signatures and wrapped
// blocks (PoA), and the envelope that makes all of them hashable, signable
// and identifiable the same way.
package messages

import (
	"crypto/ed25519"
	"encoding/hex"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"empower1.com/pot/internal/potcrypto"
)

// Envelope is the common header embedded by every hashable/signable PoT
// message: a reference to the training stage that produced it, the
// claimed signer's encoded public key, a mutable timestamp (mutated by the
// PoS retry loop), and the detached signature once one has been attached.
// The timestamp is carried as a protobuf well-known Timestamp rather than a
// formatted string so every message's clock reading round-trips with
// wire-level precision instead of a truncated display format.
type Envelope struct {
	IDModel   string
	IDStage   string
	PublicKey []byte
	Timestamp *timestamppb.Timestamp
	Signature []byte
}

// NewEnvelope stamps a fresh envelope for the given model identity and
// signer, with the current time and no signature yet.
func NewEnvelope(idModel, idStage string, pub ed25519.PublicKey) (Envelope, error) {
	encoded, err := potcrypto.EncodePublicKey(pub)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		IDModel:   idModel,
		IDStage:   idStage,
		PublicKey: encoded,
		Timestamp: timestamppb.Now(),
	}, nil
}

// SetTimestamp overwrites the envelope's timestamp, used by the PoS retry
// loop to mutate the message until its hash meets difficulty.
func (e *Envelope) SetTimestamp(t time.Time) { e.Timestamp = timestamppb.New(t) }

// Signable is implemented by every concrete PoT message. CanonicalPayload
// must return a deterministic byte encoding of the message's content with
// the signature field excluded, mirroring the reference implementation's
// dumps_without_sig.
type Signable interface {
	CanonicalPayload() []byte
}

// CalculateHash returns the SHA-256 digest of a message's canonical
// payload.
func CalculateHash(m Signable) []byte {
	return potcrypto.SHA256(m.CanonicalPayload())
}

// GetID returns the first 8 hex characters of a message's hash, used
// throughout the protocol as its short identifier (for example id_bh, the
// key of the stakeholder signatures book).
func GetID(m Signable) string {
	return hex.EncodeToString(CalculateHash(m))[:8]
}

// Sign signs a message's canonical payload and returns the detached
// signature; callers are expected to store it on the message's Signature
// field themselves since Signable has no method to set it.
func Sign(priv ed25519.PrivateKey, m Signable) []byte {
	return potcrypto.Sign(priv, m.CanonicalPayload())
}

// VerifySignature checks a detached signature against a message's
// canonical payload using the encoded public key embedded in it.
func VerifySignature(encodedPub []byte, m Signable, signature []byte) bool {
	return potcrypto.Verify(encodedPub, m.CanonicalPayload(), signature)
}

// shortID truncates a hex hash to the 8-character form used in logs.
func shortID(hash []byte) string {
	s := hex.EncodeToString(hash)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
