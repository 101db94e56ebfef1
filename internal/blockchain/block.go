// Package blockchain aggregates Blocks into the per-employee Chain each
// node grows independently as it builds and receives wrapped blocks.
package blockchain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/potcrypto"
)

// Block is one entry in a Chain. The genesis block carries no header, no
// coinbase transaction and no stakeholder signatures; every block after
// it does.
type Block struct {
	Index                 int64
	PreviousHash          []byte
	Timestamp             string
	BlockHeader           *messages.BlockHeader
	CoinbaseTransaction   *core.Transaction
	Transactions          []*core.Transaction
	StakeholderSignatures []*messages.StakeholderSignature
	Hash                  []byte
}

func newBlock(index int64, previousHash []byte, timestamp string, header *messages.BlockHeader, coinbase *core.Transaction, transactions []*core.Transaction, sigs []*messages.StakeholderSignature) *Block {
	b := &Block{
		Index:                 index,
		PreviousHash:          previousHash,
		Timestamp:             timestamp,
		BlockHeader:           header,
		CoinbaseTransaction:   coinbase,
		Transactions:          transactions,
		StakeholderSignatures: sigs,
	}
	b.Hash = b.calculateHash()
	return b
}

// calculateHash hashes the block's content deterministically by
// concatenating its fields in a fixed order: index, hex previous hash,
// timestamp, the hex of the header's canonical payload, then the String()
// forms of the coinbase transaction, each transaction and each
// stakeholder signature. A change to those String() formats changes the
// hash.
func (b *Block) calculateHash() []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", b.Index)
	sb.WriteString(hex.EncodeToString(b.PreviousHash))
	sb.WriteString(b.Timestamp)
	if b.BlockHeader != nil {
		sb.WriteString(hex.EncodeToString(b.BlockHeader.CanonicalPayload()))
	}
	if b.CoinbaseTransaction != nil {
		sb.WriteString(b.CoinbaseTransaction.String())
	}
	for _, tx := range b.Transactions {
		sb.WriteString(tx.String())
	}
	for _, ss := range b.StakeholderSignatures {
		sb.WriteString(ss.String())
	}
	return potcrypto.SHA256([]byte(sb.String()))
}

// String renders a block for the chain's pretty-printer.
func (b *Block) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Block #%d | Hash: %s | Previous: %s | Timestamp: %s | Transactions: %d",
		b.Index, hex.EncodeToString(b.Hash)[:8], hex.EncodeToString(b.PreviousHash), b.Timestamp, len(b.Transactions))
	return sb.String()
}
