package messages

import (
	"crypto/ed25519"
	"encoding/json"

	"google.golang.org/protobuf/types/known/timestamppb"

	"empower1.com/pot/internal/potcrypto"
)

// TrainingDeclaration is a PoS message an Employee broadcasts once it has
// completed a training batch, committing to the training secret it
// produced without revealing it.
type TrainingDeclaration struct {
	Envelope
	Coinstake                float64
	TrainingSecretCommitment []byte
	ModelHash                string
}

// NewTrainingDeclaration builds an unsigned training declaration. The
// commitment is a signature over the training secret itself, proving later
// (via the block header that embeds it) that this employee produced it
// without disclosing it up front.
func NewTrainingDeclaration(idModel, idStage string, priv ed25519.PrivateKey, pub ed25519.PublicKey, coinstake float64, trainingSecret []byte, modelHash string) (*TrainingDeclaration, error) {
	env, err := NewEnvelope(idModel, idStage, pub)
	if err != nil {
		return nil, err
	}
	return &TrainingDeclaration{
		Envelope:                 env,
		Coinstake:                coinstake,
		TrainingSecretCommitment: potcrypto.Sign(priv, trainingSecret),
		ModelHash:                modelHash,
	}, nil
}

type trainingDeclarationPayload struct {
	IDModel                  string
	IDStage                  string
	PublicKey                []byte
	Timestamp                *timestamppb.Timestamp
	Coinstake                float64
	TrainingSecretCommitment []byte
	ModelHash                string
}

// CanonicalPayload implements Signable.
func (td *TrainingDeclaration) CanonicalPayload() []byte {
	payload := trainingDeclarationPayload{
		IDModel:                  td.IDModel,
		IDStage:                  td.IDStage,
		PublicKey:                td.PublicKey,
		Timestamp:                td.Timestamp,
		Coinstake:                td.Coinstake,
		TrainingSecretCommitment: td.TrainingSecretCommitment,
		ModelHash:                td.ModelHash,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		panic("messages: training declaration payload must always marshal: " + err.Error())
	}
	return encoded
}

// CalculateHash returns the SHA-256 digest of this declaration's canonical
// payload.
func (td *TrainingDeclaration) CalculateHash() []byte { return CalculateHash(td) }

// GetID returns this declaration's short identifier.
func (td *TrainingDeclaration) GetID() string { return GetID(td) }

// Sign signs the declaration's canonical payload and stores the result.
func (td *TrainingDeclaration) Sign(priv ed25519.PrivateKey) { td.Signature = Sign(priv, td) }

// CheckMeetingPosTDDifficulty reports whether this declaration's hash meets
// the leading-zero-bit threshold implied by its coinstake.
func (td *TrainingDeclaration) CheckMeetingPosTDDifficulty() bool {
	return potcrypto.MeetsDifficulty(td.CalculateHash(), td.Coinstake)
}
