package books

import (
	"testing"

	"empower1.com/pot/internal/messages"
)

func TestTrainingDeclarationsBookDropsAfterClose(t *testing.T) {
	book := NewTrainingDeclarationsBook()
	td1 := &messages.TrainingDeclaration{Envelope: messages.Envelope{IDStage: "stage-1"}}
	book.Add(td1)
	if got := book.Count("stage-1"); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
	book.Close("stage-1")
	td2 := &messages.TrainingDeclaration{Envelope: messages.Envelope{IDStage: "stage-1"}}
	book.Add(td2)
	if got := book.Count("stage-1"); got != 1 {
		t.Errorf("count after close = %d, want still 1", got)
	}
}

func TestTrainingDeclarationsBookUnknownStageIsEmpty(t *testing.T) {
	book := NewTrainingDeclarationsBook()
	if got := book.Count("never-seen"); got != 0 {
		t.Errorf("count for unknown stage = %d, want 0", got)
	}
	if got := book.Get("never-seen"); got != nil {
		t.Errorf("get for unknown stage = %v, want nil", got)
	}
}

func TestStakeholderSignaturesBookNestsByStageAndHeader(t *testing.T) {
	book := NewStakeholderSignaturesBook()
	bh := &messages.BlockHeader{}
	ss := messages.NewStakeholderSignature(bh, []byte("pub"), []byte("sig"))
	roy := true
	book.Add("stage-1", ss, &roy)

	if got := book.Count("stage-1", bh.GetID()); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
	if !book.IsOpen("stage-1") {
		t.Errorf("expected stage to still be open")
	}
	book.Close("stage-1")
	if book.IsOpen("stage-1") {
		t.Errorf("expected stage to be closed")
	}

	ss2 := messages.NewStakeholderSignature(bh, []byte("pub2"), []byte("sig2"))
	book.Add("stage-1", ss2, nil)
	if got := book.Count("stage-1", bh.GetID()); got != 1 {
		t.Errorf("count after close = %d, want still 1", got)
	}
}

func TestStakeholderSignaturesBookUnknownStageIsOpen(t *testing.T) {
	book := NewStakeholderSignaturesBook()
	if !book.IsOpen("never-seen") {
		t.Errorf("expected an unseen stage to be reported open")
	}
	if got := book.Count("never-seen", "never-seen-header"); got != 0 {
		t.Errorf("count for unknown stage = %d, want 0", got)
	}
}
