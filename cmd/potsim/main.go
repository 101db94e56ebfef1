// Command potsim runs a self-contained Proof-of-Training simulation: a
// fixed roster of employee nodes trains, declares, builds headers, signs
// as a stakeholder committee, and wraps blocks until every employee's
// chain reaches the configured target length, then prints a summary.
package main

import (
	"fmt"
	"log"

	"empower1.com/pot/internal/consensus"
	"empower1.com/pot/internal/potsim"
)

func employeeNames() []string {
	names := make([]string, potsim.EmployeesNum)
	for i := range names {
		names[i] = fmt.Sprintf("employee-%d", i+1)
	}
	return names
}

func main() {
	log.Println("Starting Proof-of-Training simulation...")

	cfg := consensus.Config{
		TDCoinstake:        potsim.TDCoinstake,
		BHCoinstake:        potsim.BHCoinstake,
		EmployerConfidence: potsim.EmployerConfidence,
		StakeholdersNum:    potsim.StakeholdersNum,
		TargetChainLength:  potsim.TargetChainLength,
		RoundSettleDelay:   potsim.RoundSettleDelay,
		PosRetryInterval:   potsim.PosRetryInterval,
	}

	harness, err := potsim.New(employeeNames(), cfg)
	if err != nil {
		log.Fatalf("failed to wire simulation: %v", err)
	}

	log.Println("Running simulation to target chain length", potsim.TargetChainLength)
	results := harness.Run()

	fmt.Println(potsim.Summarize(results))
}
