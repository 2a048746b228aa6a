// Command section runs the stableset model scenarios: a CRDT-style
// witness-quorum membership set and a DBC ledger, simulated in-process
// over a discrete-event network rather than real peers.
package main

import "github.com/maidsafe/stableset/internal/cli"

func main() {
	cli.Execute()
}
