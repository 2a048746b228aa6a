package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	grpcserver "github.com/maidsafe/stableset/internal/grpc"

	"github.com/maidsafe/stableset/internal/debugrpc"
	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a scenario and expose it over a debug gRPC service",
	Long: `Serve builds and starts a Sim the same way run does, then keeps it
listening on --addr so an external model checker or operator can query
per-node status and section-wide properties over debugrpc instead of
reading PrintStatus output once at exit.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:50051", "address for the debug gRPC service to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	sec, net := cfg.Section, cfg.Network
	sim := harness.NewSim(
		sec.ServerCount, sec.ElderCount, net.Seed,
		net.DropProbability, net.DuplicateProbability,
		time.Duration(net.MinDelayMS)*time.Millisecond,
		time.Duration(net.MaxDelayMS)*time.Millisecond,
	)

	genesis := make([]fakecrypto.Id, len(sec.Genesis))
	for i, id := range sec.Genesis {
		genesis[i] = fakecrypto.Id(id)
	}
	if err := sim.Start(genesis); err != nil {
		logger.Errorf("start failed: %v", err)
		os.Exit(1)
	}
	sim.RunToQuiescence(net.MaxSteps)

	grpcCfg := grpcserver.DefaultServerConfig()
	grpcCfg.Address = serveAddr
	srv, err := grpcserver.NewServer(grpcCfg)
	if err != nil {
		logger.Errorf("building gRPC server: %v", err)
		os.Exit(1)
	}
	debugrpc.Register(srv.GetGRPCServer(), debugrpc.NewService(sim))

	if err := srv.StartAsync(func(err error) {
		logger.Errorf("gRPC server stopped: %v", err)
	}); err != nil {
		logger.Errorf("starting gRPC server: %v", err)
		os.Exit(1)
	}
	logger.Infof("debugrpc listening on %s", srv.Address())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof("shutting down")
	srv.Stop()
}
