// Package poterrors collects the sentinel errors shared across the PoT
// node packages, consolidating what the teacher kept split across
// internal/errors and internal/nexuserrors into one block.
package poterrors

import "errors"

var (
	// Crypto / signing
	ErrInvalidPublicKey = errors.New("invalid or malformed public key")
	ErrInvalidSignature = errors.New("invalid signature")

	// Messages (training declarations, block headers, stakeholder signatures, wrapped blocks)
	ErrUnsoundMessage        = errors.New("message failed soundness verification")
	ErrDifficultyNotMet      = errors.New("message does not meet its proof-of-stake difficulty")
	ErrBadTrainingCommitment = errors.New("block header contains an incorrect training secret commitment")
	ErrBadStakeholderSig     = errors.New("wrapped block contains an incorrect stakeholder signature")
	ErrUnsupportedMessage    = errors.New("unsupported protocol message type")

	// Books
	ErrBookClosed = errors.New("book is closed for this stage")

	// Chain
	ErrEmptyChain         = errors.New("chain has no blocks")
	ErrNoStakeholders     = errors.New("no candidate stakeholders available for follow-the-coin")
	ErrGenesisExists      = errors.New("genesis block already appended")
	ErrChainUninitialized = errors.New("chain has not been initialized with a genesis block")

	// Fabric
	ErrUnknownNode = errors.New("node is not connected to the fabric")

	// Node / consensus
	ErrRoundAborted = errors.New("round aborted by restart flag")

	// Mempool
	ErrTxExists = errors.New("transaction already exists in mempool")
)
