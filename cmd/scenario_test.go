package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/jasonksu/CS4632-BankTellerSim/sim"
)

func writeTempScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_YAML(t *testing.T) {
	path := writeTempScenario(t, "scenario.yaml", `
arrival_rate: 10
service_rate: 12
tellers: 3
stopping_condition:
  type: time_horizon
  value: 8
replications: 5
base_seed: 99
arrival_segments:
  - start_min: 120
    rate_per_hour: 25
`)

	cfg, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.ArrivalRatePerHour)
	assert.Equal(t, 12.0, cfg.ServiceRatePerHour)
	assert.Equal(t, 3, cfg.Tellers)
	assert.Equal(t, sim.StopTimeHorizon, cfg.Stopping.Type)
	assert.Equal(t, 8.0, cfg.Stopping.Value)
	assert.Equal(t, 5, cfg.Replications)
	assert.Equal(t, int64(99), cfg.BaseSeed)
	require.Len(t, cfg.ArrivalSegments, 1)
	assert.Equal(t, 25.0, cfg.ArrivalSegments[0].RatePerHour)
}

func TestLoadScenario_JSON(t *testing.T) {
	// JSON is a YAML subset, so .json scenarios parse through the same path.
	path := writeTempScenario(t, "scenario.json", `{
  "arrival_rate": 10,
  "service_rate": 12,
  "tellers": 1,
  "stopping_condition": {"type": "customer_count", "value": 1000},
  "replications": 3,
  "base_seed": 42
}`)

	cfg, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, sim.StopCustomerCount, cfg.Stopping.Type)
	assert.Equal(t, 1000, cfg.CustomerTarget())
}

func TestLoadScenario_InvalidConfigSurfaces(t *testing.T) {
	path := writeTempScenario(t, "bad.yaml", `
arrival_rate: -5
service_rate: 12
tellers: 1
stopping_condition: {type: time_horizon, value: 8}
replications: 1
`)

	_, err := LoadScenario(path)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeTempScenario(t, "garbage.yaml", "{{{ not yaml")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}
