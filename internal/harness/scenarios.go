package harness

import "time"

// Scenario names the six concrete runs spec §8 describes, each a fixed
// (server_count, elder_count, genesis, network) tuple the model checker
// exercises by name. Exported so both the test suite and the section CLI
// build the exact same Sim for a given name.
type Scenario struct {
	Name                 string
	Doc                  string
	ServerCount          int
	ElderCount           int
	Genesis              []int
	Seed                 int64
	DuplicateProbability float64
	MinDelay             SimDuration
	MaxDelay             SimDuration
}

// Scenarios lists every named scenario, in the order spec §8 introduces
// them.
var Scenarios = []Scenario{
	{
		Name: "s1", Doc: "single join, one elder",
		ServerCount: 2, ElderCount: 1, Genesis: []int{1},
		Seed: 1, DuplicateProbability: 0.2,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
	{
		Name: "s2", Doc: "concurrent joins against two elders",
		ServerCount: 4, ElderCount: 2, Genesis: []int{1, 2},
		Seed: 2, DuplicateProbability: 0.2,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
	{
		Name: "s3", Doc: "join then leave",
		ServerCount: 4, ElderCount: 1, Genesis: []int{1},
		Seed: 3, DuplicateProbability: 0.1,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
	{
		Name: "s4", Doc: "reissue with no churn",
		ServerCount: 2, ElderCount: 1, Genesis: []int{1},
		Seed: 4, DuplicateProbability: 0.1,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
	{
		Name: "s5", Doc: "double-spend attempt",
		ServerCount: 3, ElderCount: 1, Genesis: []int{1},
		Seed: 5, DuplicateProbability: 0.1,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
	{
		Name: "s6", Doc: "delayed elder",
		ServerCount: 3, ElderCount: 3, Genesis: []int{1, 2, 3},
		Seed: 6, DuplicateProbability: 0.3,
		MinDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond,
	},
}

// ScenarioByName returns the named scenario, or false if name doesn't
// match any of Scenarios.
func ScenarioByName(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
