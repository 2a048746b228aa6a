package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maidsafe/stableset/internal/config"
	"github.com/maidsafe/stableset/internal/log"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
	quiet      bool

	// cfg is populated by initConfig before any command's Run executes.
	cfg *config.Config
	// logger is the root logger, scoped per-command as needed.
	logger *log.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "section",
	Short: "section — a stableset/fake-crypto membership and ledger simulator",
	Long: `section drives the model scenarios for a single stableset section:
a CRDT-style witness-quorum membership set plus a DBC ledger, run against
an in-process discrete-event network simulation rather than real peers.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and runs it. This is
// called once by cmd/section's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "scenario configuration file path (TOML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (info-level) logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all but warnings and errors")
}

// initConfig loads the scenario configuration from --conf (or the
// built-in defaults) and sets up the root logger's level from the
// debug/verbose/quiet flags, in that priority order.
func initConfig() {
	loaded, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	level := log.ParseLevel(cfg.Log.Level)
	switch {
	case debug:
		level = log.LevelDebug
	case verbose:
		level = log.LevelInfo
	case quiet:
		level = log.LevelWarn
	}
	logger = log.New(os.Stderr, "section", level)
}
