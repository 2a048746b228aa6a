package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfigIsValid(t *testing.T) {
	cfg, err := LoadDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 2, cfg.Section.ServerCount)
	require.Equal(t, 1, cfg.Section.ElderCount)
	require.Equal(t, []uint64{1}, cfg.Section.Genesis)
}

func TestLoadConfigFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.toml")
	contents := `
[section]
server_count = 4
elder_count = 2
genesis = [1, 2]

[network]
seed = 42
duplicate_probability = 0.3
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Section.ServerCount)
	require.Equal(t, 2, cfg.Section.ElderCount)
	require.Equal(t, []uint64{1, 2}, cfg.Section.Genesis)
	require.Equal(t, int64(42), cfg.Network.Seed)
	require.Equal(t, 0.3, cfg.Network.DuplicateProbability)
	// Untouched defaults survive the partial override.
	require.Equal(t, 0.0, cfg.Network.DropProbability)
	require.Equal(t, path, cfg.GetConfigPath())
}

func TestValidateRejectsElderCountExceedingServerCount(t *testing.T) {
	cfg := &Config{
		Section: SectionConfig{ServerCount: 2, ElderCount: 3, Genesis: []uint64{1}},
		Network: NetworkConfig{MaxDelayMS: 10, MaxSteps: 1},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyGenesis(t *testing.T) {
	cfg := &Config{
		Section: SectionConfig{ServerCount: 2, ElderCount: 1},
		Network: NetworkConfig{MaxDelayMS: 10, MaxSteps: 1},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsDuplicateGenesisId(t *testing.T) {
	cfg := &Config{
		Section: SectionConfig{ServerCount: 2, ElderCount: 1, Genesis: []uint64{1, 1}},
		Network: NetworkConfig{MaxDelayMS: 10, MaxSteps: 1},
	}
	require.Error(t, cfg.Validate())
}

func TestNetworkConfigValidateRejectsBadProbabilities(t *testing.T) {
	n := NetworkConfig{DropProbability: 1.5, MaxDelayMS: 10, MaxSteps: 1}
	require.Error(t, n.Validate())

	n = NetworkConfig{DuplicateProbability: -0.1, MaxDelayMS: 10, MaxSteps: 1}
	require.Error(t, n.Validate())
}

func TestNetworkConfigValidateRejectsInvertedDelayBounds(t *testing.T) {
	n := NetworkConfig{MinDelayMS: 100, MaxDelayMS: 10, MaxSteps: 1}
	require.Error(t, n.Validate())
}
