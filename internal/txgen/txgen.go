// Package txgen generates the background transaction traffic the PoT
// network settles, standing in for the reference implementation's users
// puppeteer process.
package txgen

import (
	"log"
	"math/rand"
	"strconv"
	"time"

	"empower1.com/pot/internal/core"
	"empower1.com/pot/internal/fabric"
	"empower1.com/pot/internal/messages"
)

const (
	minUserBalance = 10.0
	maxUserBalance = 100.0
	minTxAmount    = 1.0
	maxTxAmount    = 10.0
)

// Generator owns a pool of ordinary users and drives random transfers
// between them onto the fabric until it has produced maxTransactions.
type Generator struct {
	name            string
	link            *fabric.Link
	users           []*core.User
	maxTransactions int
	rng             *rand.Rand
	logger          *log.Logger
}

// New builds a Generator with userCount users seeded with random starting
// balances, wired onto fb under the given name so its broadcasts reach
// every employee unfiltered.
func New(fb *fabric.Fabric, name string, userCount, maxTransactions int, seed int64) *Generator {
	rng := rand.New(rand.NewSource(seed))
	users := make([]*core.User, userCount)
	for i := range users {
		balance := minUserBalance + rng.Float64()*(maxUserBalance-minUserBalance)
		users[i] = core.NewUser(randomUserName(rng, i), balance)
	}
	return &Generator{
		name:            name,
		link:            fb.ExternalLink(name),
		users:           users,
		maxTransactions: maxTransactions,
		rng:             rng,
		logger:          log.New(log.Writer(), "TXGEN: ", log.LstdFlags),
	}
}

// Run sends random transactions between distinct users, pacing itself
// with a sub-second random delay between each, until maxTransactions have
// been sent.
func (g *Generator) Run() {
	if len(g.users) < 2 {
		g.logger.Printf("need at least two users to generate traffic, have %d", len(g.users))
		return
	}
	for sent := 0; sent < g.maxTransactions; sent++ {
		time.Sleep(time.Duration(g.rng.Float64() * float64(time.Second)))
		sender, receiver := g.pickTwoDistinctUsers()
		amount := minTxAmount + g.rng.Float64()*(maxTxAmount-minTxAmount)
		tx := sender.CreateTransaction(amount, receiver, "")
		g.link.Send(messages.NewMessage(messages.MessageTransaction, g.name, tx))
	}
	g.logger.Printf("done, sent %d transactions", g.maxTransactions)
}

func (g *Generator) pickTwoDistinctUsers() (*core.User, *core.User) {
	i := g.rng.Intn(len(g.users))
	j := g.rng.Intn(len(g.users))
	for j == i {
		j = g.rng.Intn(len(g.users))
	}
	return g.users[i], g.users[j]
}

func randomUserName(rng *rand.Rand, index int) string {
	adjectives := []string{"Swift", "Quiet", "Bold", "Lucky", "Calm", "Bright"}
	return adjectives[rng.Intn(len(adjectives))] + "User" + strconv.Itoa(index)
}
