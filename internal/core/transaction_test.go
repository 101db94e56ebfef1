package core

import "testing"

func TestNewTransactionComputesStableID(t *testing.T) {
	alice := NewUser("Alice", 10)
	bob := NewUser("Bob", 0)
	tx := alice.CreateTransaction(5, bob, "")

	if tx.ID == "" {
		t.Fatalf("expected a non-empty transaction ID")
	}
	originalID := tx.ID
	tx.SetEmployeeName("emp-3")
	if tx.ID != originalID {
		t.Errorf("SetEmployeeName must not change the transaction ID, got %s want %s", tx.ID, originalID)
	}
	if tx.EmployeeName != "emp-3" {
		t.Errorf("expected EmployeeName to be stamped, got %q", tx.EmployeeName)
	}
}

func TestCloneDoesNotAliasEmployeeName(t *testing.T) {
	alice := NewUser("Alice", 10)
	bob := NewUser("Bob", 0)
	tx := alice.CreateTransaction(5, bob, "")
	clone := tx.Clone()
	clone.SetEmployeeName("emp-7")

	if tx.EmployeeName == "emp-7" {
		t.Errorf("mutating a clone must not affect the original")
	}
	if clone.ID != tx.ID {
		t.Errorf("clone should share the original's ID")
	}
}

func TestCoinbaseUserCreateTransactionStampsReceiverName(t *testing.T) {
	employee := NewEmployeeUser("emp-1")
	coinbase := NewCoinbaseUser(4)
	tx := coinbase.CreateTransaction(&employee.User)

	if tx.EmployeeName != employee.Name {
		t.Errorf("coinbase transaction should stamp the receiver's name, got %q", tx.EmployeeName)
	}
	want := CoinbaseReward(4)
	if tx.Amount != want {
		t.Errorf("coinbase transaction amount = %g, want %g", tx.Amount, want)
	}
}

func TestEmployeeUserCreateTransactionStampsOwnName(t *testing.T) {
	employee := NewEmployeeUser("emp-2")
	other := NewUser("Someone", 0)
	tx := employee.CreateTransaction(1, other)
	if tx.EmployeeName != "emp-2" {
		t.Errorf("expected employee transaction stamped with its own name, got %q", tx.EmployeeName)
	}
}

func TestCoinbaseRewardApproachesOneAsChainGrows(t *testing.T) {
	early := CoinbaseReward(1)
	late := CoinbaseReward(10000)
	if late >= early {
		t.Errorf("expected reward to shrink as block index grows: early=%g late=%g", early, late)
	}
	if late <= 1 {
		t.Errorf("reward should asymptotically approach but stay above 1, got %g", late)
	}
}
