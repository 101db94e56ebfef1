// Package books holds the per-employee bookkeeping state that accumulates
// across a training stage: the training declarations gathered before a
// block header is built, and the stakeholder signatures gathered before a
// block is wrapped. Both are stage-scoped and can be closed to stop
// accepting further entries once the employee has snapshotted them.
package books

import (
	"sync"

	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

type tdStage struct {
	open         bool
	declarations []*messages.TrainingDeclaration
}

// TrainingDeclarationsBook accumulates training declarations by stage id
// for a single employee, independent of every other employee's book.
type TrainingDeclarationsBook struct {
	mu     sync.Mutex
	stages map[string]*tdStage
}

// NewTrainingDeclarationsBook returns an empty book.
func NewTrainingDeclarationsBook() *TrainingDeclarationsBook {
	return &TrainingDeclarationsBook{stages: make(map[string]*tdStage)}
}

// Add appends a training declaration to its stage's entry, opening the
// stage on first use. A declaration arriving for an already-closed stage
// is dropped and reports poterrors.ErrBookClosed: the employee has already
// built its block header for that stage and moved on.
func (b *TrainingDeclarationsBook) Add(td *messages.TrainingDeclaration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[td.IDStage]
	if !ok {
		stage = &tdStage{open: true}
		b.stages[td.IDStage] = stage
	}
	if !stage.open {
		return poterrors.ErrBookClosed
	}
	stage.declarations = append(stage.declarations, td)
	return nil
}

// Get returns the declarations collected so far for idStage.
func (b *TrainingDeclarationsBook) Get(idStage string) []*messages.TrainingDeclaration {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return nil
	}
	out := make([]*messages.TrainingDeclaration, len(stage.declarations))
	copy(out, stage.declarations)
	return out
}

// Count returns the number of declarations collected so far for idStage.
func (b *TrainingDeclarationsBook) Count(idStage string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		return 0
	}
	return len(stage.declarations)
}

// Close stops idStage from accepting further declarations. Closing an
// unseen stage creates it already closed, so a stray declaration arriving
// after the close is dropped rather than silently starting a fresh open
// entry.
func (b *TrainingDeclarationsBook) Close(idStage string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stage, ok := b.stages[idStage]
	if !ok {
		b.stages[idStage] = &tdStage{open: false}
		return
	}
	stage.open = false
}
