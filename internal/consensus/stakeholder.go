package consensus

import (
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

// checkTypeOfStakeholder determines this node's role in bh's committee
// and acts on it: a normal stakeholder signs and broadcasts immediately;
// Roy's actual work is triggered later, once enough signatures have
// accumulated in handleStakeholderSignature.
func (n *Node) checkTypeOfStakeholder(bh *messages.BlockHeader) {
	stakeholders, err := n.chain.FollowTheCoin(bh.CalculateHash(), n.cfg.StakeholdersNum)
	if err != nil {
		n.logger.Printf("follow the coin: %v", err)
		return
	}
	normals, roy := stakeholders[:len(stakeholders)-1], stakeholders[len(stakeholders)-1]
	switch {
	case contains(normals, n.name):
		n.performNormalStakeholderProcedure(bh)
	case roy == n.name:
		n.logger.Printf("drawn as Roy for header %s, waiting on committee signatures", bh.GetID())
	}
}

// amIRoyStakeholder reports whether this node is bh's round's Roy
// stakeholder.
func (n *Node) amIRoyStakeholder(bh *messages.BlockHeader) bool {
	stakeholders, err := n.chain.FollowTheCoin(bh.CalculateHash(), n.cfg.StakeholdersNum)
	if err != nil {
		return false
	}
	return stakeholders[len(stakeholders)-1] == n.name
}

// performNormalStakeholderProcedure signs bh, banks the signature in this
// node's own book, and broadcasts it so Roy can eventually collect it.
func (n *Node) performNormalStakeholderProcedure(bh *messages.BlockHeader) {
	signature := messages.Sign(n.priv, bh)
	ss := messages.NewStakeholderSignature(bh, n.encodedPub, signature)
	isRoy := n.amIRoyStakeholder(bh)
	if err := n.ssBook.Add(bh.IDStage, ss, &isRoy); err != nil {
		n.logger.Printf("%v: banking own stakeholder signature for %s", poterrors.ErrBookClosed, bh.GetID())
	}
	n.link.Send(messages.NewMessage(messages.MessageStakeholderSignature, n.name, ss))
}

// performRoyStakeholderProcedure wraps bh with the committee's signatures
// and this node's pending transactions, broadcasts the result, and
// appends it to this node's own chain without waiting to receive its own
// broadcast back.
//
// wrappedHeaders guards against wrapping the same header twice: once the
// signature threshold is crossed, every further STAKEHOLDER_SIGNATURE for
// the same header would otherwise retrigger this procedure.
func (n *Node) performRoyStakeholderProcedure(bh *messages.BlockHeader) {
	idBH := bh.GetID()
	if n.wrappedHeaders[idBH] {
		return
	}
	n.wrappedHeaders[idBH] = true

	wb := n.createWrappedBlock(bh)
	wb.Sign(n.priv)
	n.link.Send(messages.NewMessage(messages.MessageWrappedBlock, n.name, wb))
	if err := n.chain.AppendFittedWrappedBlock(wb); err != nil {
		n.logger.Fatalf("appending self-wrapped block: %v", err)
	}
	n.pool.RemoveServed(wb.Transactions)
	n.logger.Printf("%v: wrapped and broadcast header %s as Roy", poterrors.ErrRoundAborted, idBH)
	n.restartFlag = true
}

func (n *Node) createWrappedBlock(bh *messages.BlockHeader) *messages.WrappedBlock {
	served := n.pool.Snapshot(n.name)
	sigs := n.ssBook.SignaturesFor(bh.IDStage, bh.GetID())
	wb, err := messages.NewWrappedBlock(n.model.ID, bh.IDStage, n.employeeUser, n.pub, served, sigs, bh)
	if err != nil {
		n.logger.Fatalf("building wrapped block: %v", err)
	}
	return wb
}

func contains(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}
