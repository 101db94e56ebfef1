package messages

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"

	"google.golang.org/protobuf/types/known/timestamppb"

	"empower1.com/pot/internal/potcrypto"
)

// BlockHeader is the PoS message that gates block production: once an
// Employee has gathered enough training declarations for a stage, it
// builds a header binding them to its own freshly-revealed training
// secret, then grinds the header's timestamp until it meets the block
// header's (stricter) difficulty.
type BlockHeader struct {
	Envelope
	Coinstake            float64
	ParentBlockHash      []byte
	BlockIndex           int64
	TrainingSecret       []byte
	TrainingDeclarations []*TrainingDeclaration
}

// NewBlockHeader builds an unsigned block header for the given parent
// chain position, carrying the training declarations collected for this
// stage.
func NewBlockHeader(idModel, idStage string, pub ed25519.PublicKey, coinstake float64, parentHash []byte, blockIndex int64, trainingSecret []byte, declarations []*TrainingDeclaration) (*BlockHeader, error) {
	env, err := NewEnvelope(idModel, idStage, pub)
	if err != nil {
		return nil, err
	}
	return &BlockHeader{
		Envelope:             env,
		Coinstake:            coinstake,
		ParentBlockHash:      parentHash,
		BlockIndex:           blockIndex,
		TrainingSecret:       trainingSecret,
		TrainingDeclarations: declarations,
	}, nil
}

type blockHeaderPayload struct {
	IDModel              string
	IDStage              string
	PublicKey            []byte
	Timestamp            *timestamppb.Timestamp
	Coinstake            float64
	ParentBlockHash      []byte
	BlockIndex           int64
	TrainingSecret       []byte
	TrainingDeclarations [][]byte
}

// CanonicalPayload implements Signable. Nested declarations are folded in
// by their own canonical payloads rather than the declarations themselves,
// so a header's hash changes if and only if the content of what it
// embeds changes.
func (bh *BlockHeader) CanonicalPayload() []byte {
	declPayloads := make([][]byte, len(bh.TrainingDeclarations))
	for i, td := range bh.TrainingDeclarations {
		declPayloads[i] = td.CanonicalPayload()
	}
	payload := blockHeaderPayload{
		IDModel:              bh.IDModel,
		IDStage:              bh.IDStage,
		PublicKey:            bh.PublicKey,
		Timestamp:            bh.Timestamp,
		Coinstake:            bh.Coinstake,
		ParentBlockHash:      bh.ParentBlockHash,
		BlockIndex:           bh.BlockIndex,
		TrainingSecret:       bh.TrainingSecret,
		TrainingDeclarations: declPayloads,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		panic("messages: block header payload must always marshal: " + err.Error())
	}
	return encoded
}

// CalculateHash returns the SHA-256 digest of this header's canonical
// payload.
func (bh *BlockHeader) CalculateHash() []byte { return CalculateHash(bh) }

// GetID returns this header's short identifier, used to key the
// stakeholder signatures book.
func (bh *BlockHeader) GetID() string { return GetID(bh) }

// Sign signs the header's canonical payload and stores the result.
func (bh *BlockHeader) Sign(priv ed25519.PrivateKey) { bh.Signature = Sign(priv, bh) }

// CheckMeetingPosBHDifficulty reports whether this header's hash meets the
// leading-zero-bit threshold implied by its coinstake.
func (bh *BlockHeader) CheckMeetingPosBHDifficulty() bool {
	return potcrypto.MeetsDifficulty(bh.CalculateHash(), bh.Coinstake)
}

// CheckIncludedTrainingDeclarations verifies that every embedded training
// declaration's commitment is a valid signature over this header's own
// training secret, not the declaration's own. This is what proves an
// employee actually revealed the secret it had committed to earlier,
// rather than recycling someone else's commitment.
func (bh *BlockHeader) CheckIncludedTrainingDeclarations() bool {
	for _, td := range bh.TrainingDeclarations {
		if !potcrypto.Verify(td.PublicKey, bh.TrainingSecret, td.TrainingSecretCommitment) {
			return false
		}
	}
	return true
}

// String renders the header as the hex encoding of its full canonical
// payload, the same form a block's hash folds the header in as.
func (bh *BlockHeader) String() string {
	return hex.EncodeToString(bh.CanonicalPayload())
}
