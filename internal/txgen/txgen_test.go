package txgen

import (
	"testing"

	"empower1.com/pot/internal/fabric"
)

func TestRunSendsExactlyMaxTransactions(t *testing.T) {
	fb := fabric.New([]string{"emp-1", "emp-2"})
	gen := New(fb, "txgen", 5, 3, 42)
	gen.Run()

	emp1, _ := fb.LinkFor("emp-1")
	received := 0
	for emp1.Poll() {
		emp1.Recv()
		received++
	}
	if received != 3 {
		t.Errorf("received %d transactions, want 3", received)
	}
}

func TestRunNoopsWithFewerThanTwoUsers(t *testing.T) {
	fb := fabric.New([]string{"emp-1"})
	gen := New(fb, "txgen", 1, 5, 1)
	gen.Run() // should return immediately without panicking
}
