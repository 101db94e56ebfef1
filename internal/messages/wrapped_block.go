package messages

import (
	"crypto/ed25519"
	"encoding/json"

	"google.golang.org/protobuf/types/known/timestamppb"

	"empower1.com/pot/internal/core"
)

// WrappedBlock is the fully-assembled PoA message a Roy stakeholder
// broadcasts once it has gathered enough committee signatures: the block
// header, the committee's signatures over it, the coinbase reward paid to
// the building employee, and the transactions it is settling.
type WrappedBlock struct {
	Envelope
	BlockHeader            *BlockHeader
	CoinbaseTransaction    *core.Transaction
	Transactions           []*core.Transaction
	StakeholdersSignatures []*StakeholderSignature
}

// NewWrappedBlock assembles an unsigned wrapped block. The coinbase
// transaction is minted here, from a throwaway CoinbaseUser keyed to the
// header's block index, paid to employeeUser.
func NewWrappedBlock(idModel, idStage string, employeeUser *core.EmployeeUser, pub ed25519.PublicKey, transactions []*core.Transaction, sigs []*StakeholderSignature, blockHeader *BlockHeader) (*WrappedBlock, error) {
	env, err := NewEnvelope(idModel, idStage, pub)
	if err != nil {
		return nil, err
	}
	coinbaseUser := core.NewCoinbaseUser(blockHeader.BlockIndex)
	coinbaseTx := coinbaseUser.CreateTransaction(&employeeUser.User)
	return &WrappedBlock{
		Envelope:               env,
		BlockHeader:            blockHeader,
		CoinbaseTransaction:    coinbaseTx,
		Transactions:           transactions,
		StakeholdersSignatures: sigs,
	}, nil
}

type wrappedBlockPayload struct {
	IDModel         string
	IDStage         string
	PublicKey       []byte
	Timestamp       *timestamppb.Timestamp
	BlockHeader     []byte
	CoinbaseTxID    string
	TransactionIDs  []string
	SignatureDigest [][]byte
}

// CanonicalPayload implements Signable.
func (wb *WrappedBlock) CanonicalPayload() []byte {
	txIDs := make([]string, len(wb.Transactions))
	for i, tx := range wb.Transactions {
		txIDs[i] = tx.ID
	}
	sigDigests := make([][]byte, len(wb.StakeholdersSignatures))
	for i, ss := range wb.StakeholdersSignatures {
		sigDigests[i] = ss.Signature
	}
	payload := wrappedBlockPayload{
		IDModel:         wb.IDModel,
		IDStage:         wb.IDStage,
		PublicKey:       wb.PublicKey,
		Timestamp:       wb.Timestamp,
		BlockHeader:     wb.BlockHeader.CanonicalPayload(),
		CoinbaseTxID:    wb.CoinbaseTransaction.ID,
		TransactionIDs:  txIDs,
		SignatureDigest: sigDigests,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		panic("messages: wrapped block payload must always marshal: " + err.Error())
	}
	return encoded
}

// CalculateHash returns the SHA-256 digest of this block's canonical
// payload.
func (wb *WrappedBlock) CalculateHash() []byte { return CalculateHash(wb) }

// GetID returns this wrapped block's short identifier.
func (wb *WrappedBlock) GetID() string { return GetID(wb) }

// Sign signs the wrapped block's canonical payload and stores the result.
func (wb *WrappedBlock) Sign(priv ed25519.PrivateKey) { wb.Signature = Sign(priv, wb) }

// VerifyStakeholderSignatures checks that every committee signature
// carried by this block is a valid signature, by its own claimed public
// key, over the block header's canonical payload.
func (wb *WrappedBlock) VerifyStakeholderSignatures() bool {
	for _, ss := range wb.StakeholdersSignatures {
		if !VerifySignature(ss.PublicKey, wb.BlockHeader, ss.Signature) {
			return false
		}
	}
	return true
}
