package consensus

import (
	"fmt"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

// collectMessages drains whatever has arrived on this node's link since
// it last checked, dispatching each by message type. It never blocks: a
// node only calls it between retry attempts or while busy-waiting inside
// a phase, so the round loop stays responsive to a wrapped block arriving
// mid-phase from someone else.
func (n *Node) collectMessages() {
	for n.link.Poll() {
		msg := n.link.Recv()
		switch msg.Type {
		case messages.MessageTransaction:
			tx, ok := msg.Content.(*core.Transaction)
			if !ok {
				n.logger.Fatalf("malformed TRANSACTION payload from %s", msg.Sender)
			}
			if err := n.pool.Add(tx); err != nil {
				n.logger.Printf("dropping duplicate transaction %s", tx.ID)
			}

		case messages.MessageTrainingDeclaration:
			td, ok := msg.Content.(*messages.TrainingDeclaration)
			if !ok {
				n.logger.Fatalf("malformed TRAINING_DECLARATION payload from %s", msg.Sender)
			}
			if err := n.verifySoundTrainingDeclaration(td); err != nil {
				n.logger.Printf("rejecting training declaration from %s: %v", msg.Sender, err)
			} else if err := n.tdBook.Add(td); err != nil {
				n.logger.Printf("dropping training declaration from %s: %v", msg.Sender, err)
			}

		case messages.MessageBlockHeader:
			bh, ok := msg.Content.(*messages.BlockHeader)
			if !ok {
				n.logger.Fatalf("malformed BLOCK_HEADER payload from %s", msg.Sender)
			}
			if err := n.verifySoundBlockHeader(bh); err != nil {
				n.logger.Printf("rejecting block header from %s: %v", msg.Sender, err)
			} else {
				n.checkTypeOfStakeholder(bh)
			}

		case messages.MessageStakeholderSignature:
			ss, ok := msg.Content.(*messages.StakeholderSignature)
			if !ok {
				n.logger.Fatalf("malformed STAKEHOLDER_SIGNATURE payload from %s", msg.Sender)
			}
			n.handleStakeholderSignature(ss)

		case messages.MessageWrappedBlock:
			wb, ok := msg.Content.(*messages.WrappedBlock)
			if !ok {
				n.logger.Fatalf("malformed WRAPPED_BLOCK payload from %s", msg.Sender)
			}
			n.handleWrappedBlock(wb)

		case messages.MessageEmployeeAlive:
			n.logger.Printf("%s is alive", msg.Sender)

		default:
			n.logger.Fatalf("%v: %s from %s", poterrors.ErrUnsupportedMessage, msg.Type, msg.Sender)
		}
	}
}

// verifySoundTrainingDeclaration checks a training declaration's
// signature and that it actually meets its declared difficulty, the two
// things that make an alien declaration trustworthy enough to bank. A
// non-nil error always wraps poterrors.ErrUnsoundMessage alongside the
// specific cause.
func (n *Node) verifySoundTrainingDeclaration(td *messages.TrainingDeclaration) error {
	if !messages.VerifySignature(td.PublicKey, td, td.Signature) {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrInvalidSignature)
	}
	if !td.CheckMeetingPosTDDifficulty() {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrDifficultyNotMet)
	}
	return nil
}

// verifySoundBlockHeader checks a block header's signature, its
// difficulty, and that every training declaration it embeds actually
// commits to this header's own training secret.
func (n *Node) verifySoundBlockHeader(bh *messages.BlockHeader) error {
	if !messages.VerifySignature(bh.PublicKey, bh, bh.Signature) {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrInvalidSignature)
	}
	if !bh.CheckMeetingPosBHDifficulty() {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrDifficultyNotMet)
	}
	if !bh.CheckIncludedTrainingDeclarations() {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrBadTrainingCommitment)
	}
	return nil
}

// verifySoundWrappedBlock checks a wrapped block's signature and that
// every stakeholder signature it carries is genuine.
func (n *Node) verifySoundWrappedBlock(wb *messages.WrappedBlock) error {
	if !messages.VerifySignature(wb.PublicKey, wb, wb.Signature) {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrInvalidSignature)
	}
	if !wb.VerifyStakeholderSignatures() {
		return fmt.Errorf("%w: %w", poterrors.ErrUnsoundMessage, poterrors.ErrBadStakeholderSig)
	}
	return nil
}

func (n *Node) handleStakeholderSignature(ss *messages.StakeholderSignature) {
	idStage := ss.BlockHeader.IDStage
	idBH := ss.BlockHeader.GetID()
	isRoy := n.amIRoyStakeholder(ss.BlockHeader)
	if err := n.ssBook.Add(idStage, ss, &isRoy); err != nil {
		n.logger.Printf("dropping stakeholder signature for %s: %v", idBH, err)
	}
	if !isRoy {
		return
	}
	if n.ssBook.Count(idStage, idBH) >= n.cfg.StakeholdersNum-1 {
		n.performRoyStakeholderProcedure(ss.BlockHeader)
	}
}

func (n *Node) handleWrappedBlock(wb *messages.WrappedBlock) {
	latest, err := n.chain.LatestBlock()
	if err != nil {
		n.logger.Fatalf("no local chain to compare a wrapped block against: %v", err)
	}
	if wb.BlockHeader.BlockIndex <= latest.Index {
		return
	}
	if err := n.verifySoundWrappedBlock(wb); err != nil {
		n.logger.Printf("rejecting wrapped block from %s: %v", wb.BlockHeader.IDStage, err)
		return
	}
	n.logger.Printf("%v: accepted wrapped block for header %s", poterrors.ErrRoundAborted, wb.BlockHeader.GetID())
	n.restartFlag = true
	n.ssBook.Close(wb.BlockHeader.IDStage)
	if err := n.chain.AppendFittedWrappedBlock(wb); err != nil {
		n.logger.Fatalf("appending accepted wrapped block: %v", err)
	}
	n.pool.RemoveServed(wb.Transactions)
}
