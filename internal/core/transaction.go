package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"empower1.com/pot/internal/potcrypto"
)

// Transaction represents a transfer of coin between two Users, stamped with
// the name of the Employee who eventually builds the block carrying it.
//
// ID is derived only from sender, amount, receiver and timestamp, never from
// EmployeeName: an Employee stamps its own name onto a copy of a pending
// transaction right before wrapping a block, and the set-difference removal
// of served transactions from the pending pool depends on that stamp not
// perturbing the transaction's identity.
type Transaction struct {
	ID           string
	Sender       *User
	Amount       float64
	Receiver     *User
	EmployeeName string
	Timestamp    string
}

// NewTransaction builds a Transaction and computes its ID immediately.
func NewTransaction(sender *User, amount float64, receiver *User, employeeName string) *Transaction {
	tx := &Transaction{
		Sender:       sender,
		Amount:       amount,
		Receiver:     receiver,
		EmployeeName: employeeName,
		Timestamp:    time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	tx.ID = tx.computeID()
	return tx
}

func (tx *Transaction) computeID() string {
	payload := fmt.Sprintf("%s%g%s%s", tx.Sender.Name, tx.Amount, tx.Receiver.Name, tx.Timestamp)
	return hex.EncodeToString(potcrypto.SHA256([]byte(payload)))
}

// SetEmployeeName stamps the transaction with the employee currently
// building a block around it. It deliberately does not recompute ID.
func (tx *Transaction) SetEmployeeName(employeeName string) {
	tx.EmployeeName = employeeName
}

// Clone returns a shallow copy of tx, used when an Employee stamps its own
// name onto a snapshot of the pending pool without mutating the original.
func (tx *Transaction) Clone() *Transaction {
	clone := *tx
	return &clone
}

// String renders a one-line summary, used by the chain's pretty-printer.
func (tx *Transaction) String() string {
	id := tx.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("ID: %s | Sender: %s | Receiver: %s | Amount: %g | Employee Name: %s",
		id, tx.Sender.Name, tx.Receiver.Name, tx.Amount, tx.EmployeeName)
}
