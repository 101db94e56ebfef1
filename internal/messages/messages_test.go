package messages

import (
	"crypto/ed25519"
	"testing"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/potcrypto"
)

func TestTrainingDeclarationSignAndVerify(t *testing.T) {
	priv, pub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	secret := potcrypto.SHA256([]byte("a training secret"))
	td, err := NewTrainingDeclaration("model-1", "model-1:0", priv, pub, 1, secret, "hashed-model")
	if err != nil {
		t.Fatalf("new training declaration: %v", err)
	}
	td.Sign(priv)
	if !VerifySignature(td.PublicKey, td, td.Signature) {
		t.Errorf("expected the declaration's own signature to verify")
	}
	if len(td.GetID()) != 8 {
		t.Errorf("expected an 8-character ID, got %q", td.GetID())
	}
}

func TestBlockHeaderChecksIncludedDeclarationsAgainstItsOwnSecret(t *testing.T) {
	priv, pub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	headerSecret := potcrypto.SHA256([]byte("this round's secret"))

	// A declaration whose commitment is over the header's own secret: sound.
	goodCommitment := potcrypto.Sign(priv, headerSecret)
	goodTD := &TrainingDeclaration{
		Envelope:                 Envelope{PublicKey: mustEncode(t, pub)},
		TrainingSecretCommitment: goodCommitment,
	}

	// A declaration whose commitment is over a different secret: unsound.
	staleCommitment := potcrypto.Sign(priv, potcrypto.SHA256([]byte("a stale secret")))
	staleTD := &TrainingDeclaration{
		Envelope:                 Envelope{PublicKey: mustEncode(t, pub)},
		TrainingSecretCommitment: staleCommitment,
	}

	bh := &BlockHeader{TrainingSecret: headerSecret, TrainingDeclarations: []*TrainingDeclaration{goodTD}}
	if !bh.CheckIncludedTrainingDeclarations() {
		t.Errorf("expected a header embedding only matching declarations to pass")
	}

	bhWithStale := &BlockHeader{TrainingSecret: headerSecret, TrainingDeclarations: []*TrainingDeclaration{goodTD, staleTD}}
	if bhWithStale.CheckIncludedTrainingDeclarations() {
		t.Errorf("expected a header embedding a mismatched commitment to fail")
	}
}

func TestWrappedBlockVerifyStakeholderSignatures(t *testing.T) {
	_, headerPub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	bh, err := NewBlockHeader("model-1", "model-1:0", headerPub, 1, nil, 1, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("new block header: %v", err)
	}

	sigPriv, sigPub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	encodedSigPub := mustEncode(t, sigPub)
	signature := Sign(sigPriv, bh)
	ss := NewStakeholderSignature(bh, encodedSigPub, signature)

	_, wrapperPub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	employeeUser := core.NewEmployeeUser("emp-1")
	wb, err := NewWrappedBlock("model-1", "model-1:0", employeeUser, wrapperPub, nil, []*StakeholderSignature{ss}, bh)
	if err != nil {
		t.Fatalf("new wrapped block: %v", err)
	}
	if !wb.VerifyStakeholderSignatures() {
		t.Errorf("expected a wrapped block with a genuine stakeholder signature to verify")
	}

	wb.StakeholdersSignatures[0].Signature = []byte("tampered")
	if wb.VerifyStakeholderSignatures() {
		t.Errorf("expected a tampered stakeholder signature to fail verification")
	}
}

func TestMessageTypeString(t *testing.T) {
	if MessageWrappedBlock.String() != "WRAPPED_BLOCK" {
		t.Errorf("got %q", MessageWrappedBlock.String())
	}
}

func mustEncode(t *testing.T, pub ed25519.PublicKey) []byte {
	t.Helper()
	encoded, err := potcrypto.EncodePublicKey(pub)
	if err != nil {
		t.Fatalf("encode public key: %v", err)
	}
	return encoded
}
