package messages

import "encoding/hex"

// StakeholderSignature is a committee member's signature over a block
// header. Unlike the PoS messages it is not itself hashable/signable: it
// carries a signature, it isn't one.
type StakeholderSignature struct {
	BlockHeader   *BlockHeader
	BlockHeaderID string
	PublicKey     []byte
	Signature     []byte
}

// NewStakeholderSignature builds a signature record for blockHeader,
// stamping BlockHeaderID for logging/repr purposes (lookups use the id
// held separately, not this field).
func NewStakeholderSignature(blockHeader *BlockHeader, publicKey, signature []byte) *StakeholderSignature {
	return &StakeholderSignature{
		BlockHeader:   blockHeader,
		BlockHeaderID: blockHeader.GetID(),
		PublicKey:     publicKey,
		Signature:     signature,
	}
}

// String renders a short summary for the block pretty-printer.
func (ss *StakeholderSignature) String() string {
	return "sig:" + hex.EncodeToString(ss.Signature)[:minInt(8, len(hex.EncodeToString(ss.Signature)))]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
