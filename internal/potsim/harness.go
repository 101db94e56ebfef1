package potsim

import (
	"fmt"
	"log"
	"sync"
	"time"

	"empower1.com/pot/internal/blockchain"
	"empower1.com/pot/internal/consensus"
	"empower1.com/pot/internal/fabric"
	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/txgen"
)

// Harness owns everything one simulation run needs: the employee roster,
// the fabric they're wired to, and the traffic generator feeding them
// transactions. It never reaches for a shared singleton; every piece is
// constructed here and threaded through explicitly.
type Harness struct {
	employeeNames []string
	fabric        *fabric.Fabric
	nodes         []*consensus.Node
	generator     *txgen.Generator
	logger        *log.Logger
}

// New builds a Harness for the given employee names, wiring one Node per
// name against a shared Fabric and a transaction generator that settles
// traffic for all of them.
func New(employeeNames []string, cfg consensus.Config) (*Harness, error) {
	logger := log.New(log.Writer(), "POTSIM: ", log.LstdFlags)
	logger.Printf("wiring fabric for %d employees", len(employeeNames))
	fb := fabric.New(employeeNames)

	nodes := make([]*consensus.Node, 0, len(employeeNames))
	for _, name := range employeeNames {
		link, err := fb.LinkFor(name)
		if err != nil {
			return nil, fmt.Errorf("potsim: wiring %s: %w", name, err)
		}
		node, err := consensus.NewNode(name, employeeNames, link, cfg)
		if err != nil {
			return nil, fmt.Errorf("potsim: building node %s: %w", name, err)
		}
		nodes = append(nodes, node)
		logger.Printf("node %s ready, genesis block appended", name)
	}

	generator := txgen.New(fb, "txgen", UsersNum, MaxTransactionsNum, 1)
	logger.Println("transaction generator ready")

	return &Harness{
		employeeNames: employeeNames,
		fabric:        fb,
		nodes:         nodes,
		generator:     generator,
		logger:        logger,
	}, nil
}

// Result is the one chain snapshot the fabric ever forwards to the sink:
// whichever employee happens to finish first and send
// RESULT_LOCAL_BLOCKCHAIN, since the fabric only relays that message type
// once, ever (fabric.Fabric's resultSent guard).
type Result struct {
	EmployeeName string
	Chain        *blockchain.Chain
}

// Run starts every node and the transaction generator and blocks until
// every employee has sent EMPLOYEE_FINISHED (fabric.AllFinished), the
// simulation's actual completion signal. It returns the single chain
// snapshot forwarded to the fabric's sink, if one arrived, rather than one
// per employee: the fabric deliberately forwards RESULT_LOCAL_BLOCKCHAIN
// only once.
func (h *Harness) Run() []Result {
	h.logger.Println("starting nodes")
	var wg sync.WaitGroup
	for _, node := range h.nodes {
		wg.Add(1)
		go func(n *consensus.Node) {
			defer wg.Done()
			n.Run()
		}(node)
	}

	h.logger.Println("starting transaction generator")
	go h.generator.Run()

	var result *Result
	for !h.fabric.AllFinished() {
		select {
		case msg := <-h.fabric.Results():
			if msg.Type != messages.MessageResultLocalBlockchain {
				continue
			}
			chain, ok := msg.Content.(*blockchain.Chain)
			if !ok {
				h.logger.Printf("malformed result from %s, ignoring", msg.Sender)
				continue
			}
			result = &Result{EmployeeName: msg.Sender, Chain: chain}
			h.logger.Printf("received final chain snapshot from %s", msg.Sender)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	// Every node sends its snapshot before EMPLOYEE_FINISHED, so one that
	// landed after the last poll is already waiting in the sink.
	if result == nil {
		select {
		case msg := <-h.fabric.Results():
			if chain, ok := msg.Content.(*blockchain.Chain); ok {
				result = &Result{EmployeeName: msg.Sender, Chain: chain}
			}
		default:
		}
	}

	wg.Wait()
	h.logger.Println("all nodes finished")

	if result == nil {
		return nil
	}
	return []Result{*result}
}

// Summarize renders the one chain snapshot the fabric forwarded, block by
// block, followed by its block count and coins transferred, or notes that
// none arrived.
func Summarize(results []Result) string {
	if len(results) == 0 {
		return "Simulation complete: no chain snapshot was received\n"
	}
	out := "Simulation complete\n"
	for _, r := range results {
		out += r.Chain.String()
		out += fmt.Sprintf("  %s: %d blocks, %.2f coins transferred\n", r.EmployeeName, r.Chain.Length(), r.Chain.TotalTransferred())
	}
	return out
}
