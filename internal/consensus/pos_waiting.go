package consensus

import (
	"time"

	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

// performPosWaitingMechanismTD grinds td's timestamp at roughly one
// attempt per second until its hash meets the training-declaration
// difficulty, signs it and records it in this node's own book, or gives
// up early if a message arriving mid-grind sets the restart flag.
func (n *Node) performPosWaitingMechanismTD(td *messages.TrainingDeclaration) {
	for {
		n.collectMessages()
		if n.restartFlag {
			return
		}
		attemptStart := time.Now()
		if td.CheckMeetingPosTDDifficulty() {
			td.Sign(n.priv)
			if err := n.tdBook.Add(td); err != nil {
				n.logger.Printf("%v: banking own training declaration for stage %s", poterrors.ErrBookClosed, td.IDStage)
			}
			return
		}
		td.SetTimestamp(time.Now())
		n.pacedSleep(attemptStart)
	}
}

// performPosWaitingMechanismBH is the same retry loop against the
// (stricter) block header difficulty. A header isn't tracked in any book:
// once it meets difficulty and is signed, it's simply handed back to the
// caller to broadcast.
func (n *Node) performPosWaitingMechanismBH(bh *messages.BlockHeader) {
	for {
		n.collectMessages()
		if n.restartFlag {
			return
		}
		attemptStart := time.Now()
		if bh.CheckMeetingPosBHDifficulty() {
			bh.Sign(n.priv)
			return
		}
		bh.SetTimestamp(time.Now())
		n.pacedSleep(attemptStart)
	}
}

// pacedSleep rounds an attempt out to roughly the node's PoS retry
// interval, so the hash-grinding loop doesn't spin the CPU pointlessly
// fast on an attempt that resolved quickly.
func (n *Node) pacedSleep(attemptStart time.Time) {
	elapsed := time.Since(attemptStart)
	remaining := n.cfg.PosRetryInterval - elapsed
	if remaining > 0 {
		time.Sleep(remaining)
	}
}
