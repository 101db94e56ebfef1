package consensus

import (
	"crypto/ed25519"
	"fmt"
	"log"
	"time"

	"empower1.com/pot/internal/blockchain"
	"empower1.com/pot/internal/books"
	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/fabric"
	"empower1.com/pot/internal/mempool"
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/mlsubstrate"
	"empower1.com/pot/internal/potcrypto"
)

// Node is one employee's view of the network: its own keys, its own
// chain, its own books, and the link it talks to every other node
// through. Nothing here is shared with any other Node.
type Node struct {
	name       string
	priv       ed25519.PrivateKey
	pub        ed25519.PublicKey
	encodedPub []byte

	cfg  Config
	link *fabric.Link

	chain   *blockchain.Chain
	tdBook  *books.TrainingDeclarationsBook
	ssBook  *books.StakeholderSignaturesBook
	pool    *mempool.Mempool
	model   *mlsubstrate.Model
	dataset *mlsubstrate.Dataset

	employeeUser *core.EmployeeUser

	trainingSecret []byte
	blockHeader    *messages.BlockHeader
	restartFlag    bool
	wrappedHeaders map[string]bool

	logger *log.Logger
}

// NewNode builds a Node named name, with its chain already genesis-seeded
// against the full employee roster. employeeNames must be the same list,
// in whatever order, on every Node built for a single simulation run: the
// chain needs it to size Genesis A's balance and stamp one genesis
// transaction per name, but never reaches back out to any shared registry
// to get it.
func NewNode(name string, employeeNames []string, link *fabric.Link, cfg Config) (*Node, error) {
	priv, pub, err := potcrypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("consensus: new node %s: %w", name, err)
	}
	encodedPub, err := potcrypto.EncodePublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("consensus: new node %s: %w", name, err)
	}

	chain := blockchain.NewChain(name)
	if err := chain.AppendGenesis(employeeNames); err != nil {
		return nil, fmt.Errorf("consensus: new node %s: %w", name, err)
	}

	model, dataset := mlsubstrate.SelectStage(name)

	return &Node{
		name:           name,
		priv:           priv,
		pub:            pub,
		encodedPub:     encodedPub,
		cfg:            cfg,
		link:           link,
		chain:          chain,
		tdBook:         books.NewTrainingDeclarationsBook(),
		ssBook:         books.NewStakeholderSignaturesBook(),
		pool:           mempool.New(),
		model:          model,
		dataset:        dataset,
		employeeUser:   core.NewEmployeeUser(name),
		wrappedHeaders: make(map[string]bool),
		logger:         log.New(log.Writer(), fmt.Sprintf("NODE[%s]: ", name), log.LstdFlags),
	}, nil
}

// Chain exposes this node's chain, read by the harness once the run ends.
func (n *Node) Chain() *blockchain.Chain { return n.chain }

// Run drives the node through rounds until its chain reaches the target
// length, then reports its final chain and signs off. It blocks the
// calling goroutine for the whole run; callers typically invoke it in its
// own goroutine, one per employee.
func (n *Node) Run() {
	n.link.Send(messages.NewMessage(messages.MessageEmployeeAlive, n.name, nil))

	for n.chain.Length() < n.cfg.TargetChainLength {
		time.Sleep(n.cfg.RoundSettleDelay)
		n.restartFlag = false

		n.performTraining()
		if n.restartFlag {
			continue
		}

		td := n.createTrainingDeclaration()
		n.performPosWaitingMechanismTD(td)
		if n.restartFlag {
			continue
		}
		n.link.Send(messages.NewMessage(messages.MessageTrainingDeclaration, n.name, td))

		n.waitForTrainingDeclarations(td.IDStage)
		if n.restartFlag {
			continue
		}

		bh := n.createBlockHeader(td.IDStage)
		n.performPosWaitingMechanismBH(bh)
		if n.restartFlag {
			continue
		}
		n.blockHeader = bh
		n.link.Send(messages.NewMessage(messages.MessageBlockHeader, n.name, bh))

		n.checkTypeOfStakeholder(bh)

		for !n.restartFlag {
			n.collectMessages()
			time.Sleep(10 * time.Millisecond)
		}
	}

	n.link.Send(messages.NewMessage(messages.MessageResultLocalBlockchain, n.name, n.chain))
	n.link.Send(messages.NewMessage(messages.MessageEmployeeFinished, n.name, nil))
}

func (n *Node) performTraining() {
	n.collectMessages()
	if n.restartFlag {
		return
	}
	n.trainingSecret = n.model.TrainOneBatchWithAcquiringTrainingSecret(n.dataset)
}

func (n *Node) createTrainingDeclaration() *messages.TrainingDeclaration {
	td, err := messages.NewTrainingDeclaration(n.model.ID, n.model.IDStage(), n.priv, n.pub, n.cfg.TDCoinstake, n.trainingSecret, n.model.HashedSerialization())
	if err != nil {
		n.logger.Fatalf("building training declaration: %v", err)
	}
	return td
}

func (n *Node) createBlockHeader(idStage string) *messages.BlockHeader {
	declarations := n.tdBook.Get(idStage)
	parent, err := n.chain.LatestBlock()
	if err != nil {
		n.logger.Fatalf("no parent block to build a header against: %v", err)
	}
	bh, err := messages.NewBlockHeader(n.model.ID, idStage, n.pub, n.cfg.BHCoinstake, parent.Hash, parent.Index+1, n.trainingSecret, declarations)
	if err != nil {
		n.logger.Fatalf("building block header: %v", err)
	}
	// Snapshot taken, no more declarations for this stage will be accepted.
	n.tdBook.Close(idStage)
	return bh
}

func (n *Node) waitForTrainingDeclarations(idStage string) {
	for n.tdBook.Count(idStage) < n.cfg.EmployerConfidence {
		time.Sleep(500 * time.Millisecond)
		n.collectMessages()
		if n.restartFlag {
			return
		}
	}
}
