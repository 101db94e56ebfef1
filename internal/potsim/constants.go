// Package potsim wires a complete Proof-of-Training simulation run: a
// fixed roster of employee nodes, the fabric they talk over, and the
// background transaction generator they settle traffic for.
package potsim

import (
	"math"
	"time"
)

// Tunables match the reference implementation's constants.py, kept here
// as plain Go constants rather than flags since a simulation run has no
// outside operator to configure it mid-flight.
const (
	EmployeesNum       = 11
	UsersNum           = 10
	MaxTransactionsNum = 100
	EmployerConfidence = 3
	StakeholdersNum    = 3
	TargetChainLength  = 6
	RoundSettleDelay   = time.Second
	PosRetryInterval   = time.Second
)

// TDCoinstake and BHCoinstake are expressed as powers of two matching the
// reference implementation's chosen difficulties: a training declaration
// needs only 4 leading zero bits, a block header needs 5, so header
// production is strictly harder than declaring training than a round's
// employees can undercut by sandbagging the earlier step.
var (
	TDCoinstake = math.Pow(2, 252) // difficulty 4
	BHCoinstake = math.Pow(2, 251) // difficulty 5
)
