package books

import (
	"sync"

	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

type ssHeaderEntry struct {
	signatures []*messages.StakeholderSignature
	roy        *bool
}

type ssStage struct {
	open    bool
	headers map[string]*ssHeaderEntry
}

// StakeholderSignaturesBook accumulates committee signatures over block
// headers, nested by stage id and then by block header id: a stage can
// see competing headers from different employees racing to build the
// same round, each accumulating its own signature set.
type StakeholderSignaturesBook struct {
	mu     sync.Mutex
	stages map[string]*ssStage
}

// NewStakeholderSignaturesBook returns an empty book.
func NewStakeholderSignaturesBook() *StakeholderSignaturesBook {
	return &StakeholderSignaturesBook{stages: make(map[string]*ssStage)}
}

// Add appends a signature under its block header's stage and id, opening
// the stage on first use. The roy flag records whether the signer is this
// round's Roy stakeholder, used later to decide when enough signatures
// have accumulated to let Roy wrap the block. A signature arriving for an
// already-closed stage still creates the per-header entry (so counts stay
// queryable) but the signature itself is not appended, and Add reports
// poterrors.ErrBookClosed.
func (b *StakeholderSignaturesBook) Add(idStage string, ss *messages.StakeholderSignature, roy *bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		stage = &ssStage{open: true, headers: make(map[string]*ssHeaderEntry)}
		b.stages[idStage] = stage
	}
	idBH := ss.BlockHeader.GetID()
	entry, ok := stage.headers[idBH]
	if !ok {
		entry = &ssHeaderEntry{}
		stage.headers[idBH] = entry
	}
	if roy != nil {
		entry.roy = roy
	}
	if !stage.open {
		return poterrors.ErrBookClosed
	}
	entry.signatures = append(entry.signatures, ss)
	return nil
}

// SignaturesFor returns the signatures collected so far for the block
// header idBH within stage idStage.
func (b *StakeholderSignaturesBook) SignaturesFor(idStage, idBH string) []*messages.StakeholderSignature {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return nil
	}
	entry, ok := stage.headers[idBH]
	if !ok {
		return nil
	}
	out := make([]*messages.StakeholderSignature, len(entry.signatures))
	copy(out, entry.signatures)
	return out
}

// Count returns the number of signatures collected so far for the block
// header idBH within stage idStage.
func (b *StakeholderSignaturesBook) Count(idStage, idBH string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return 0
	}
	entry, ok := stage.headers[idBH]
	if !ok {
		return 0
	}
	return len(entry.signatures)
}

// Close stops idStage from accepting further signatures. A no-op if the
// stage was never seen.
func (b *StakeholderSignaturesBook) Close(idStage string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return
	}
	stage.open = false
}

// IsOpen reports whether idStage is still accepting signatures. A stage
// that has never been seen is considered open.
func (b *StakeholderSignaturesBook) IsOpen(idStage string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return true
	}
	return stage.open
}
