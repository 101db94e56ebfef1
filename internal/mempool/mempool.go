// Package mempool holds the transactions an Employee has received but not
// yet served in a block it built, adapted from the teacher's map-backed
// mempool to the PoT transaction shape and to the stamp-then-remove
// workflow a round's block-building step drives it through.
package mempool

import (
	"fmt"
	"sync"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/poterrors"
)

// Mempool holds transactions waiting to be included in a block, keyed by
// their own ID so a transaction re-stamped with a building employee's
// name is still recognized as the same entry.
type Mempool struct {
	mu           sync.RWMutex
	transactions map[string]*core.Transaction
}

// New creates an empty Mempool.
func New() *Mempool {
	return &Mempool{transactions: make(map[string]*core.Transaction)}
}

// Add inserts tx if its ID isn't already present.
func (mp *Mempool) Add(tx *core.Transaction) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if _, exists := mp.transactions[tx.ID]; exists {
		return fmt.Errorf("%w: %s", poterrors.ErrTxExists, tx.ID)
	}
	mp.transactions[tx.ID] = tx
	return nil
}

// Snapshot returns a clone of every pending transaction, each stamped
// with employeeName, leaving the originals in the pool untouched. This is
// what an Employee calls right before wrapping a block: the clones go
// into the block, the originals stay pending until RemoveServed drops
// them once the wrap succeeds.
func (mp *Mempool) Snapshot(employeeName string) []*core.Transaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	out := make([]*core.Transaction, 0, len(mp.transactions))
	for _, tx := range mp.transactions {
		clone := tx.Clone()
		clone.SetEmployeeName(employeeName)
		out = append(out, clone)
	}
	return out
}

// RemoveServed drops every transaction in served from the pool, matched
// by ID so the removal still works even though served transactions carry
// a different EmployeeName stamp than the originals.
func (mp *Mempool) RemoveServed(served []*core.Transaction) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	for _, tx := range served {
		delete(mp.transactions, tx.ID)
	}
}

// Count returns the number of transactions currently pending.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return len(mp.transactions)
}
