package blockchain

import (
	"encoding/binary"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

// genesisTimestamp is fixed to the reference implementation's chosen
// moment; its value is inert, it only needs to be identical across every
// employee's genesis block so the hash-chain start is reproducible.
const genesisTimestamp = "1969-07-20 20:17:40"

// Chain is the append-only ledger a single employee grows as rounds
// complete. Every employee owns its own Chain; there is no single shared
// chain object.
type Chain struct {
	mu              sync.RWMutex
	ownerName       string
	logger          *log.Logger
	blocks          []*Block
	allTransactions []*core.Transaction
}

// NewChain returns an empty chain owned by ownerName. Call AppendGenesis
// before using it for anything else.
func NewChain(ownerName string) *Chain {
	return &Chain{
		ownerName: ownerName,
		logger:    log.New(log.Writer(), fmt.Sprintf("CHAIN[%s]: ", ownerName), log.LstdFlags),
	}
}

// AppendGenesis builds and appends the genesis block: a single transfer
// of one coin from a "Genesis A" bootstrap account to a "Genesis B"
// account for every employee name in the round, each stamped with that
// employee's name, so every employee is a follow-the-coin candidate from
// the first round. employeeNames is passed explicitly rather than pulled from a
// shared registry, so a Chain never depends on anything beyond its own
// state.
func (c *Chain) AppendGenesis(employeeNames []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.blocks) != 0 {
		return poterrors.ErrGenesisExists
	}

	genesisA := core.NewUser("Genesis A", float64(len(employeeNames)))
	genesisB := core.NewUser("Genesis B", 0)

	transactions := make([]*core.Transaction, 0, len(employeeNames))
	for _, name := range employeeNames {
		tx := genesisA.CreateTransaction(1, genesisB, name)
		transactions = append(transactions, tx)
	}

	block := newBlock(0, []byte("0"), genesisTimestamp, nil, nil, transactions, nil)
	c.appendBlockLocked(block)
	return nil
}

func (c *Chain) appendBlockLocked(block *Block) {
	c.blocks = append(c.blocks, block)
	c.allTransactions = append(c.allTransactions, block.Transactions...)
}

// Length returns the number of blocks in the chain.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// LatestBlock returns the most recently appended block.
func (c *Chain) LatestBlock() (*Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return nil, poterrors.ErrEmptyChain
	}
	return c.blocks[len(c.blocks)-1], nil
}

// AppendFittedWrappedBlock turns a received or self-built wrapped block
// into a chain entry and appends it. A parent-hash mismatch against the
// chain's current tip is logged as a fork warning but does not block the
// append: the employee simply keeps growing its own view of the chain
// from whatever it was told is next.
func (c *Chain) AppendFittedWrappedBlock(wb *messages.WrappedBlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.blocks) == 0 {
		return poterrors.ErrChainUninitialized
	}
	latest := c.blocks[len(c.blocks)-1]
	if string(wb.BlockHeader.ParentBlockHash) != string(latest.Hash) {
		c.logger.Printf("warning: wrapped block for header %s parent hash does not match local tip, possible fork", wb.BlockHeader.GetID())
	}

	transactions := append([]*core.Transaction{}, wb.Transactions...)
	block := newBlock(wb.BlockHeader.BlockIndex, latest.Hash, time.Now().UTC().Format("2006-01-02 15:04:05"),
		wb.BlockHeader, wb.CoinbaseTransaction, transactions, wb.StakeholdersSignatures)
	c.appendBlockLocked(block)
	return nil
}

// FollowTheCoin deterministically samples the stakeholder committee for a
// round from the set of distinct employee names stamped on any transaction
// recorded on this chain, seeded by randSource (in practice
// the round's block header hash, so every employee computes the same
// committee for the same header). The last name in the returned slice is
// this round's Roy stakeholder; the rest are normal committee members.
func (c *Chain) FollowTheCoin(randSource []byte, stakeholdersNum int) ([]string, error) {
	c.mu.RLock()
	seen := make(map[string]struct{})
	for _, tx := range c.allTransactions {
		if tx.EmployeeName != "" {
			seen[tx.EmployeeName] = struct{}{}
		}
	}
	c.mu.RUnlock()

	candidates := make([]string, 0, len(seen))
	for name := range seen {
		candidates = append(candidates, name)
	}
	// Map iteration order is randomized; candidates must be sorted before
	// sampling so the same randSource always yields the same committee
	// regardless of which employee is computing it.
	sort.Strings(candidates)

	if len(candidates) < stakeholdersNum {
		return nil, poterrors.ErrNoStakeholders
	}

	seed := seedFromBytes(randSource)
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(candidates))

	stakeholders := make([]string, stakeholdersNum)
	for i := 0; i < stakeholdersNum; i++ {
		stakeholders[i] = candidates[perm[i]]
	}
	return stakeholders, nil
}

func seedFromBytes(b []byte) int64 {
	var padded [8]byte
	copy(padded[:], b)
	return int64(binary.BigEndian.Uint64(padded[:]))
}

// TotalTransferred sums the amount moved by every transaction ever
// recorded on this chain, including genesis and coinbase transactions.
func (c *Chain) TotalTransferred() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total float64
	for _, tx := range c.allTransactions {
		total += tx.Amount
	}
	for _, b := range c.blocks {
		if b.CoinbaseTransaction != nil {
			total += b.CoinbaseTransaction.Amount
		}
	}
	return total
}

// String renders the full chain for the end-of-run summary.
func (c *Chain) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := fmt.Sprintf("Blockchain (owner: %s, %d blocks)\n", c.ownerName, len(c.blocks))
	for _, b := range c.blocks {
		out += "  " + b.String() + "\n"
	}
	return out
}
