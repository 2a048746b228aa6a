package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness"
	"github.com/maidsafe/stableset/internal/ledger"
)

var scenarioMaxSteps int

var scenarioCmd = &cobra.Command{
	Use:   "scenario [name]",
	Short: "Run one of spec §8's named scenarios (s1..s6), or list them",
	Long: `Run a named scenario to quiescence and report whether its properties
held: membership convergence, value conservation, and no double-spend.
With no arguments, lists the available scenario names.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScenario,
}

func init() {
	scenarioCmd.Flags().IntVar(&scenarioMaxSteps, "max-steps", 100_000, "scheduler event budget before giving up")
	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		listScenarios()
		return
	}

	name := strings.ToLower(args[0])
	s, ok := harness.ScenarioByName(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q; run `section scenario` to list names\n", name)
		os.Exit(1)
	}

	logger.Infof("running scenario %s (%s): %d servers, %d elders", s.Name, s.Doc, s.ServerCount, s.ElderCount)

	sim := harness.NewSim(s.ServerCount, s.ElderCount, s.Seed, 0, s.DuplicateProbability, s.MinDelay, s.MaxDelay)
	genesis := make([]fakecrypto.Id, len(s.Genesis))
	for i, id := range s.Genesis {
		genesis[i] = fakecrypto.Id(id)
	}

	if err := sim.Start(genesis); err != nil {
		logger.Errorf("start failed: %v", err)
		os.Exit(1)
	}

	// s3 exercises a join followed by a leave: let the join settle first,
	// then ask the highest-numbered node to leave before draining again.
	if name == "s3" {
		if _, quiesced := sim.RunToQuiescence(scenarioMaxSteps); !quiesced {
			logger.Errorf("did not quiesce after join phase")
			os.Exit(1)
		}
		sim.RequestLeave(fakecrypto.Id(s.ServerCount))
	}
	if name == "s4" || name == "s5" {
		if _, quiesced := sim.RunToQuiescence(scenarioMaxSteps); !quiesced {
			logger.Errorf("did not quiesce before reissue phase")
			os.Exit(1)
		}
		// s4 spends the genesis DBC once; s5 has a second node race a
		// conflicting spend of the same DBC.
		sim.Reissue(2, []ledger.Dbc{ledger.GenesisDbc}, []uint64{40, 60})
		if name == "s5" {
			sim.Reissue(3, []ledger.Dbc{ledger.GenesisDbc}, []uint64{50, 50})
		}
	}

	steps, quiesced := sim.RunToQuiescence(scenarioMaxSteps)
	logger.Infof("processed %d events, quiesced=%v, now=%v", steps, quiesced, sim.Now())

	if !quiesced {
		logger.Errorf("scenario %s did not quiesce within %d steps", name, scenarioMaxSteps)
		os.Exit(1)
	}

	ok = sim.Conservation()
	logger.Infof("conservation holds: %v", ok)
	ok = ok && sim.MembershipConverged()
	logger.Infof("membership converged: %v", sim.MembershipConverged())
	ok = ok && sim.NoDoubleSpend()
	logger.Infof("no double spend: %v", sim.NoDoubleSpend())
	if !quiet {
		sim.PrintStatus()
	}

	if !ok {
		os.Exit(1)
	}
}

func listScenarios() {
	byName := make(map[string]string, len(harness.Scenarios))
	names := make([]string, 0, len(harness.Scenarios))
	for _, s := range harness.Scenarios {
		byName[s.Name] = s.Doc
		names = append(names, s.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, byName[name])
	}
}
