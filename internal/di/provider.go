package di

import (
	"os"
	"time"

	"github.com/maidsafe/stableset/internal/config"
	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness"
	"github.com/maidsafe/stableset/internal/log"
)

// Provider wires a loaded Config into a ready-to-start harness.Sim, the
// same way internal/cli's commands do by hand — this is the reusable form
// for callers that want container-managed lifecycle instead. The container
// builds the Sim once and returns that same instance on every later Get.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider over cfg.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{container: container, config: cfg}
}

// RegisterAll registers the config, a root logger, and a Sim builder.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)
	p.container.Register(ServiceLogger, log.New(os.Stderr, "section", log.ParseLevel(p.config.Log.Level)))

	p.container.RegisterBuilder(ServiceSim, func(c *Container) (interface{}, error) {
		cfg := c.MustGet(ServiceConfig).(*config.Config)
		sec, net := cfg.Section, cfg.Network

		sim := harness.NewSim(
			sec.ServerCount, sec.ElderCount, net.Seed,
			net.DropProbability, net.DuplicateProbability,
			time.Duration(net.MinDelayMS)*time.Millisecond,
			time.Duration(net.MaxDelayMS)*time.Millisecond,
		)
		return sim, nil
	})

	return nil
}

// GetSim builds (or returns the already-built) Sim for this provider's
// config. The caller still owns calling Sim.Start with the configured
// genesis ids.
func (p *Provider) GetSim() (*harness.Sim, error) {
	sim, err := p.container.Get(ServiceSim)
	if err != nil {
		return nil, err
	}
	return sim.(*harness.Sim), nil
}

// Genesis converts the config's genesis id list to fakecrypto.Id, for
// passing straight to Sim.Start.
func (p *Provider) Genesis() []fakecrypto.Id {
	ids := make([]fakecrypto.Id, len(p.config.Section.Genesis))
	for i, id := range p.config.Section.Genesis {
		ids[i] = fakecrypto.Id(id)
	}
	return ids
}

// GetConfig returns the configuration this provider was built from.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
