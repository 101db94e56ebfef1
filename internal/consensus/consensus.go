// Package consensus implements the Proof-of-Training node: a single
// employee's state machine driving the protocol's three phases each
// round (verifiable training, block header production, stakeholder
// signing and wrapping) against its own chain, books and mempool.
package consensus

import "time"

// Config holds the tunables a Node's round loop is driven by. These are
// passed in rather than hardcoded so the simulation harness owns the
// single source of truth for them.
type Config struct {
	TDCoinstake        float64
	BHCoinstake        float64
	EmployerConfidence int
	StakeholdersNum    int
	TargetChainLength  int
	RoundSettleDelay   time.Duration
	PosRetryInterval   time.Duration
}
