package fabric

import (
	"testing"
	"time"

	"empower1.com/pot/internal/messages"
)

func TestBroadcastExcludesSender(t *testing.T) {
	f := New([]string{"emp-1", "emp-2", "emp-3"})
	sender, err := f.LinkFor("emp-1")
	if err != nil {
		t.Fatalf("link for emp-1: %v", err)
	}
	sender.Send(messages.NewMessage(messages.MessageTrainingDeclaration, "emp-1", "payload"))

	if sender.Poll() {
		t.Errorf("sender should not receive its own broadcast")
	}
	for _, name := range []string{"emp-2", "emp-3"} {
		link, err := f.LinkFor(name)
		if err != nil {
			t.Fatalf("link for %s: %v", name, err)
		}
		if !link.Poll() {
			t.Fatalf("expected %s to have received the broadcast", name)
		}
		if got := link.Recv(); got.Content != "payload" {
			t.Errorf("%s received %v, want payload", name, got.Content)
		}
	}
}

func TestExternalLinkReachesEveryEmployee(t *testing.T) {
	f := New([]string{"emp-1", "emp-2"})
	generator := f.ExternalLink("txgen")
	generator.Send(messages.NewMessage(messages.MessageTransaction, "txgen", "tx"))

	for _, name := range []string{"emp-1", "emp-2"} {
		link, _ := f.LinkFor(name)
		if !link.Poll() {
			t.Fatalf("expected %s to receive the externally-sourced broadcast", name)
		}
	}
}

func TestEmployeeFinishedTracksCompletionWithoutBroadcasting(t *testing.T) {
	f := New([]string{"emp-1", "emp-2"})
	emp1, _ := f.LinkFor("emp-1")
	emp2, _ := f.LinkFor("emp-2")

	emp1.Send(messages.NewMessage(messages.MessageEmployeeFinished, "emp-1", nil))
	if emp2.Poll() {
		t.Errorf("EMPLOYEE_FINISHED must not be broadcast to other employees")
	}
	if f.AllFinished() {
		t.Errorf("only one of two employees has finished")
	}
	emp2.Send(messages.NewMessage(messages.MessageEmployeeFinished, "emp-2", nil))
	if !f.AllFinished() {
		t.Errorf("expected both employees to be recognized as finished")
	}
}

func TestResultLocalBlockchainForwardedOnce(t *testing.T) {
	f := New([]string{"emp-1"})
	emp1, _ := f.LinkFor("emp-1")
	emp1.Send(messages.NewMessage(messages.MessageResultLocalBlockchain, "emp-1", "chain-snapshot"))
	emp1.Send(messages.NewMessage(messages.MessageResultLocalBlockchain, "emp-1", "chain-snapshot-again"))

	select {
	case result := <-f.Results():
		if result.Content != "chain-snapshot" {
			t.Errorf("expected the first result, got %v", result.Content)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a result on the sink channel")
	}
	select {
	case result := <-f.Results():
		t.Fatalf("expected only one result to be forwarded, got a second: %v", result.Content)
	default:
	}
}
