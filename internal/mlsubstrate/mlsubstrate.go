// Package mlsubstrate stands in for the training framework an Employee
// node would otherwise embed. The PoT protocol treats training as an
// opaque function from a batch to a training secret; this package
// provides a deterministic stand-in for that function so the consensus
// logic above it never has to know what's underneath.
package mlsubstrate

import (
	"encoding/hex"
	"fmt"

	"empower1.com/pot/internal/potcrypto"
)

// Dataset describes the shape of the data an Employee trains against:
// only the batch size matters to the protocol above.
type Dataset struct {
	BatchSize       int
	SamplesPerEpoch int
}

// NewExampleDataset returns the stand-in dataset every Employee trains
// against in the simulation.
func NewExampleDataset() *Dataset {
	return &Dataset{BatchSize: 32, SamplesPerEpoch: 6000}
}

// Model is the stand-in trainable model. Its only protocol-relevant
// behavior is producing a training secret from a batch and reporting a
// stage identifier that advances every time it does.
type Model struct {
	ID               string
	OwnerName        string
	CurrentIteration int
}

// NewExampleModel returns a stand-in model owned by ownerName.
func NewExampleModel(ownerName string) *Model {
	return &Model{ID: "simple-dnn-mnist", OwnerName: ownerName, CurrentIteration: -1}
}

// IDStage returns this model's current stage identifier: its identity
// combined with the training iteration counter, so every completed
// training round gets a fresh stage id.
func (m *Model) IDStage() string {
	return fmt.Sprintf("%s:%d", m.ID, m.CurrentIteration)
}

// HashedSerialization returns a deterministic hash standing in for a full
// serialization of the model's weights, used as the h_s field embedded in
// training declarations.
func (m *Model) HashedSerialization() string {
	payload := fmt.Sprintf("%s:%s:%d", m.ID, m.OwnerName, m.CurrentIteration)
	return hex.EncodeToString(potcrypto.SHA256([]byte(payload)))
}

// TrainOneBatchWithAcquiringTrainingSecret advances the model by one
// training iteration and returns the training secret it produced. The
// secret is a hash chain over the batch's (stand-in) samples, so two
// employees training the same iteration index never produce the same
// secret unless they own the same model identity and owner name.
func (m *Model) TrainOneBatchWithAcquiringTrainingSecret(dataset *Dataset) []byte {
	m.CurrentIteration++
	secret := potcrypto.SHA256([]byte(fmt.Sprintf("%s:%s:seed", m.ID, m.OwnerName)))
	for sample := 0; sample < dataset.BatchSize; sample++ {
		step := fmt.Sprintf("%s:%d:%d:%x", m.OwnerName, m.CurrentIteration, sample, secret)
		secret = potcrypto.SHA256([]byte(step))
	}
	return secret
}

// SelectStage picks the model and dataset an Employee trains against for
// the simulation's duration. In the reference implementation this is a
// hook over a model registry; with only one stand-in substrate available
// it always returns the same pair, freshly constructed for ownerName.
func SelectStage(ownerName string) (*Model, *Dataset) {
	return NewExampleModel(ownerName), NewExampleDataset()
}
