package mempool

import (
	"testing"

	"empower1.com/pot/internal/core"
)

func TestSnapshotStampsWithoutMutatingOriginal(t *testing.T) {
	mp := New()
	alice := core.NewUser("Alice", 10)
	bob := core.NewUser("Bob", 0)
	tx := alice.CreateTransaction(5, bob, "")
	if err := mp.Add(tx); err != nil {
		t.Fatalf("add: %v", err)
	}

	snapshot := mp.Snapshot("emp-1")
	if len(snapshot) != 1 || snapshot[0].EmployeeName != "emp-1" {
		t.Fatalf("expected one stamped transaction, got %+v", snapshot)
	}
	if tx.EmployeeName == "emp-1" {
		t.Errorf("original transaction must not be mutated by Snapshot")
	}
}

func TestRemoveServedMatchesByIDDespiteStampDifference(t *testing.T) {
	mp := New()
	alice := core.NewUser("Alice", 10)
	bob := core.NewUser("Bob", 0)
	tx := alice.CreateTransaction(5, bob, "")
	if err := mp.Add(tx); err != nil {
		t.Fatalf("add: %v", err)
	}

	served := mp.Snapshot("emp-1")
	mp.RemoveServed(served)
	if mp.Count() != 0 {
		t.Errorf("expected the original to be removed via ID match, count = %d", mp.Count())
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	mp := New()
	alice := core.NewUser("Alice", 10)
	bob := core.NewUser("Bob", 0)
	tx := alice.CreateTransaction(5, bob, "")
	if err := mp.Add(tx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := mp.Add(tx); err == nil {
		t.Errorf("expected a duplicate add to fail")
	}
}
