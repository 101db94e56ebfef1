package blockchain

import (
	"testing"

	"empower1.com/pot/internal/messages"
)

func TestAppendGenesisCreatesOneTransactionPerEmployee(t *testing.T) {
	chain := NewChain("emp-1")
	names := []string{"emp-1", "emp-2", "emp-3"}
	if err := chain.AppendGenesis(names); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	if chain.Length() != 1 {
		t.Fatalf("chain length = %d, want 1", chain.Length())
	}
	latest, err := chain.LatestBlock()
	if err != nil {
		t.Fatalf("latest block: %v", err)
	}
	if len(latest.Transactions) != len(names) {
		t.Errorf("genesis transactions = %d, want %d", len(latest.Transactions), len(names))
	}
}

func TestAppendGenesisTwiceFails(t *testing.T) {
	chain := NewChain("emp-1")
	names := []string{"emp-1"}
	if err := chain.AppendGenesis(names); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	if err := chain.AppendGenesis(names); err == nil {
		t.Errorf("expected a second genesis append to fail")
	}
}

func TestFollowTheCoinIsDeterministicAcrossChains(t *testing.T) {
	names := []string{"emp-1", "emp-2", "emp-3", "emp-4"}
	chainA := NewChain("emp-1")
	chainB := NewChain("emp-2")
	if err := chainA.AppendGenesis(names); err != nil {
		t.Fatalf("append genesis a: %v", err)
	}
	if err := chainB.AppendGenesis(names); err != nil {
		t.Fatalf("append genesis b: %v", err)
	}

	randSource := []byte("round-1-block-header-hash")
	stakeholdersA, err := chainA.FollowTheCoin(randSource, 3)
	if err != nil {
		t.Fatalf("follow the coin a: %v", err)
	}
	stakeholdersB, err := chainB.FollowTheCoin(randSource, 3)
	if err != nil {
		t.Fatalf("follow the coin b: %v", err)
	}
	if len(stakeholdersA) != len(stakeholdersB) {
		t.Fatalf("committee size mismatch: %d vs %d", len(stakeholdersA), len(stakeholdersB))
	}
	for i := range stakeholdersA {
		if stakeholdersA[i] != stakeholdersB[i] {
			t.Errorf("committee diverged at %d: %s vs %s", i, stakeholdersA[i], stakeholdersB[i])
		}
	}
}

func TestFollowTheCoinFailsWithoutEnoughCandidates(t *testing.T) {
	chain := NewChain("emp-1")
	if err := chain.AppendGenesis([]string{"emp-1"}); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	if _, err := chain.FollowTheCoin([]byte("seed"), 5); err == nil {
		t.Errorf("expected an error when fewer candidates than requested stakeholders exist")
	}
}

func TestAppendFittedWrappedBlockExtendsChain(t *testing.T) {
	chain := NewChain("emp-1")
	if err := chain.AppendGenesis([]string{"emp-1"}); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	latest, _ := chain.LatestBlock()

	bh := &messages.BlockHeader{BlockIndex: 1}
	bh.ParentBlockHash = latest.Hash
	wb := &messages.WrappedBlock{BlockHeader: bh}

	if err := chain.AppendFittedWrappedBlock(wb); err != nil {
		t.Fatalf("append wrapped block: %v", err)
	}
	if chain.Length() != 2 {
		t.Errorf("chain length = %d, want 2", chain.Length())
	}
}

func TestAppendFittedWrappedBlockWarnsOnForkButStillAppends(t *testing.T) {
	chain := NewChain("emp-1")
	if err := chain.AppendGenesis([]string{"emp-1"}); err != nil {
		t.Fatalf("append genesis: %v", err)
	}

	bh := &messages.BlockHeader{BlockIndex: 1, Envelope: messages.Envelope{}}
	bh.ParentBlockHash = []byte("not-the-real-parent-hash")
	wb := &messages.WrappedBlock{BlockHeader: bh}

	if err := chain.AppendFittedWrappedBlock(wb); err != nil {
		t.Fatalf("append wrapped block: %v", err)
	}
	if chain.Length() != 2 {
		t.Errorf("chain length = %d, want 2 even on a parent-hash mismatch", chain.Length())
	}
}
