package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/jasonksu/CS4632-BankTellerSim/sim"
)

// LoadScenario reads an experiment configuration from a YAML file.
// JSON scenario files parse through the same path, JSON being a YAML
// subset. The configuration is validated before being returned.
func LoadScenario(path string) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var cfg sim.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return sim.Config{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return cfg, nil
}
